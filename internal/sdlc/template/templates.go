// Package template holds the fixed, versioned phase tables used when
// AI-derived data is unusable or unavailable. Tables are static data;
// the duration reconciler gives them the same exactness guarantees as
// AI-derived breakdowns.
package template

import "github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"

// TableVersion identifies the phase-table data set. Bump when a table
// changes so stored breakdowns can be traced to their template.
const TableVersion = "2024.1"

// PhaseTemplate is one row of a methodology table. Weight is the
// typical percentage share before adjustment and reconciliation.
type PhaseTemplate struct {
	Name         string
	Weight       float64
	Description  string
	Deliverables []string
	Activities   []string
	TeamFocus    string
	// Coordination marks phases whose share grows with team size.
	Coordination bool
}

var agileTable = []PhaseTemplate{
	{
		Name:         "Project Initiation & Planning",
		Weight:       10,
		Description:  "Initial project setup, team formation, and high-level planning",
		Deliverables: []string{"Project charter", "Team setup", "Initial backlog"},
		Activities:   []string{"Stakeholder alignment", "Team formation", "Tool setup"},
		TeamFocus:    "Project management",
		Coordination: true,
	},
	{
		Name:         "Requirements & User Stories",
		Weight:       15,
		Description:  "Detailed requirements gathering and user story creation",
		Deliverables: []string{"User stories", "Acceptance criteria", "Product backlog"},
		Activities:   []string{"User story writing", "Story mapping", "Backlog grooming"},
		TeamFocus:    "Product and business analysis",
	},
	{
		Name:         "Sprint Planning & Design",
		Weight:       10,
		Description:  "Sprint planning, architecture design, and UI/UX design",
		Deliverables: []string{"Sprint plans", "Architecture design", "UI mockups"},
		Activities:   []string{"Sprint planning", "Architecture design", "Design reviews"},
		TeamFocus:    "Architects and designers",
	},
	{
		Name:         "Development Sprints",
		Weight:       50,
		Description:  "Iterative development with regular sprints and reviews",
		Deliverables: []string{"Working software increments", "Sprint reviews", "Updated backlog"},
		Activities:   []string{"Coding", "Daily standups", "Sprint reviews", "Retrospectives"},
		TeamFocus:    "Development team",
	},
	{
		Name:         "Testing & Integration",
		Weight:       10,
		Description:  "Continuous testing, integration, and quality assurance",
		Deliverables: []string{"Test reports", "Bug fixes", "Integration tests"},
		Activities:   []string{"Automated testing", "Manual testing", "Bug fixing"},
		TeamFocus:    "QA and testing team",
	},
	{
		Name:         "Deployment & Release",
		Weight:       5,
		Description:  "Production deployment and go-live activities",
		Deliverables: []string{"Production release", "Deployment documentation", "User training"},
		Activities:   []string{"Production deployment", "User training", "Go-live support"},
		TeamFocus:    "DevOps and support team",
	},
}

var waterfallTable = []PhaseTemplate{
	{
		Name:         "Requirements Analysis",
		Weight:       15,
		Description:  "Comprehensive requirements gathering and analysis",
		Deliverables: []string{"Requirements specification", "Feasibility study", "Project plan"},
		Activities:   []string{"Requirements gathering", "Stakeholder interviews", "Documentation"},
		TeamFocus:    "Business analysis",
		Coordination: true,
	},
	{
		Name:         "System Design",
		Weight:       20,
		Description:  "Detailed system and architectural design",
		Deliverables: []string{"System design document", "Database design", "UI/UX design"},
		Activities:   []string{"Architecture design", "Database design", "Interface design"},
		TeamFocus:    "System architects",
	},
	{
		Name:         "Implementation",
		Weight:       35,
		Description:  "Code development and module implementation",
		Deliverables: []string{"Source code", "Code documentation", "Unit tests"},
		Activities:   []string{"Coding", "Code reviews", "Unit testing"},
		TeamFocus:    "Development team",
	},
	{
		Name:         "Testing",
		Weight:       20,
		Description:  "Comprehensive system testing and quality assurance",
		Deliverables: []string{"Test plans", "Test results", "Bug reports"},
		Activities:   []string{"System testing", "Integration testing", "User acceptance testing"},
		TeamFocus:    "QA and testing team",
	},
	{
		Name:         "Deployment",
		Weight:       5,
		Description:  "System deployment and production release",
		Deliverables: []string{"Production system", "Deployment guide", "User documentation"},
		Activities:   []string{"Production deployment", "System configuration", "User training"},
		TeamFocus:    "DevOps and support team",
	},
	{
		Name:         "Maintenance",
		Weight:       5,
		Description:  "Ongoing maintenance and support planning",
		Deliverables: []string{"Maintenance plan", "Support documentation", "Handover"},
		Activities:   []string{"Support planning", "Documentation handover", "Team transition"},
		TeamFocus:    "Support team",
	},
}

var devOpsTable = []PhaseTemplate{
	{
		Name:         "Planning & Infrastructure Setup",
		Weight:       15,
		Description:  "Project planning with emphasis on CI/CD pipeline setup",
		Deliverables: []string{"Project plan", "CI/CD pipeline", "Infrastructure as code"},
		Activities:   []string{"Pipeline setup", "Infrastructure planning", "Tool configuration"},
		TeamFocus:    "Platform engineering",
		Coordination: true,
	},
	{
		Name:         "Development & Continuous Integration",
		Weight:       40,
		Description:  "Development with continuous integration and automated testing",
		Deliverables: []string{"Working features", "Automated tests", "Code quality reports"},
		Activities:   []string{"Feature development", "Automated testing", "Code integration"},
		TeamFocus:    "Development team",
	},
	{
		Name:         "Testing & Quality Assurance",
		Weight:       20,
		Description:  "Comprehensive testing with automation focus",
		Deliverables: []string{"Test automation suite", "Quality reports", "Performance tests"},
		Activities:   []string{"Test automation", "Performance testing", "Security testing"},
		TeamFocus:    "QA and testing team",
	},
	{
		Name:         "Continuous Deployment",
		Weight:       15,
		Description:  "Automated deployment and release management",
		Deliverables: []string{"Deployment scripts", "Release pipeline", "Monitoring setup"},
		Activities:   []string{"Deployment automation", "Release management", "Monitoring setup"},
		TeamFocus:    "DevOps team",
	},
	{
		Name:         "Monitoring & Operations",
		Weight:       10,
		Description:  "Production monitoring and operational support",
		Deliverables: []string{"Monitoring dashboards", "Alerting system", "Operations runbook"},
		Activities:   []string{"Monitoring setup", "Alerting configuration", "Operations planning"},
		TeamFocus:    "Operations team",
	},
}

var hybridTable = []PhaseTemplate{
	{
		Name:         "Requirements & Planning",
		Weight:       15,
		Description:  "Up-front requirements baseline combined with an adaptive delivery plan",
		Deliverables: []string{"Requirements baseline", "Release plan", "Product backlog"},
		Activities:   []string{"Requirements gathering", "Release planning", "Backlog creation"},
		TeamFocus:    "Business analysis and planning",
		Coordination: true,
	},
	{
		Name:         "System Design",
		Weight:       15,
		Description:  "Architectural design fixed early, detailed design evolving per iteration",
		Deliverables: []string{"Architecture document", "Interface contracts", "Design guidelines"},
		Activities:   []string{"Architecture design", "Interface definition", "Design reviews"},
		TeamFocus:    "System architects",
	},
	{
		Name:         "Iterative Development",
		Weight:       40,
		Description:  "Feature delivery in timeboxed iterations within the fixed architecture",
		Deliverables: []string{"Working increments", "Iteration reviews", "Updated backlog"},
		Activities:   []string{"Coding", "Iteration planning", "Demo sessions"},
		TeamFocus:    "Development team",
	},
	{
		Name:         "Testing & Integration",
		Weight:       15,
		Description:  "Per-iteration testing plus a consolidated system test pass",
		Deliverables: []string{"Test reports", "Integration results", "Bug fixes"},
		Activities:   []string{"Regression testing", "Integration testing", "Defect triage"},
		TeamFocus:    "QA and testing team",
	},
	{
		Name:         "Deployment",
		Weight:       10,
		Description:  "Staged rollout and production release",
		Deliverables: []string{"Production release", "Deployment guide", "Training materials"},
		Activities:   []string{"Staged deployment", "User training", "Go-live support"},
		TeamFocus:    "DevOps and support team",
	},
	{
		Name:         "Stabilization & Handover",
		Weight:       5,
		Description:  "Post-release stabilization and support handover",
		Deliverables: []string{"Stabilization report", "Support documentation", "Handover"},
		Activities:   []string{"Hypercare support", "Documentation handover", "Retrospective"},
		TeamFocus:    "Support team",
	},
}

// genericTable is the five-phase Waterfall-style table used for any
// methodology without a dedicated table.
var genericTable = []PhaseTemplate{
	{
		Name:         "Requirements Analysis & Planning",
		Weight:       15,
		Description:  "Gather requirements, analyze feasibility, and create project plan",
		Deliverables: []string{"Requirements document", "Project plan", "Technical specifications"},
		Activities:   []string{"Stakeholder interviews", "Requirements gathering", "Risk assessment"},
		TeamFocus:    "Business analysis and planning",
		Coordination: true,
	},
	{
		Name:         "System Design & Architecture",
		Weight:       20,
		Description:  "Design system architecture, database schema, and technical specifications",
		Deliverables: []string{"System architecture document", "Database design", "UI/UX mockups"},
		Activities:   []string{"System design", "Architecture planning", "Technology selection"},
		TeamFocus:    "System architects and designers",
	},
	{
		Name:         "Development & Implementation",
		Weight:       40,
		Description:  "Code development, feature implementation, and integration",
		Deliverables: []string{"Working software modules", "Code documentation", "Unit tests"},
		Activities:   []string{"Coding", "Code reviews", "Module integration"},
		TeamFocus:    "Development team",
	},
	{
		Name:         "Testing & Quality Assurance",
		Weight:       20,
		Description:  "Comprehensive testing including unit, integration, and user acceptance testing",
		Deliverables: []string{"Test results", "Bug reports", "Test documentation"},
		Activities:   []string{"Test execution", "Bug fixing", "Performance testing"},
		TeamFocus:    "QA and testing team",
	},
	{
		Name:         "Deployment & Launch",
		Weight:       5,
		Description:  "Production deployment, user training, and go-live activities",
		Deliverables: []string{"Production system", "User documentation", "Training materials"},
		Activities:   []string{"Production deployment", "User training", "Go-live support"},
		TeamFocus:    "DevOps and support team",
	},
}

// Table returns the phase table for a methodology. Unknown
// methodologies get the generic table.
func Table(m domain.Methodology) []PhaseTemplate {
	switch m {
	case domain.MethodologyAgile:
		return agileTable
	case domain.MethodologyWaterfall:
		return waterfallTable
	case domain.MethodologyDevOps:
		return devOpsTable
	case domain.MethodologyHybrid:
		return hybridTable
	}
	return genericTable
}
