package llm

import (
	"fmt"
	"strings"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

const systemPrompt = "You are an expert software project manager and SDLC consultant " +
	"with deep knowledge of software development methodologies, project planning, and time estimation. " +
	"You provide detailed, structured, and practical SDLC breakdowns."

// BuildPrompt renders the instruction text for one generation request.
// The pipeline treats the model as an opaque string producer; the only
// contract that matters downstream is the JSON response format and the
// exact-total requirement stated here.
func BuildPrompt(req domain.Request) string {
	var sb strings.Builder

	sb.WriteString(systemPrompt)
	sb.WriteString("\n\nAnalyze the following project and create a detailed Software Development Lifecycle (SDLC) breakdown:\n\n")

	fmt.Fprintf(&sb, "PROJECT DETAILS:\n")
	fmt.Fprintf(&sb, "- Project Name: %s\n", req.ProjectName)
	fmt.Fprintf(&sb, "- Description: %s\n", req.Description)
	fmt.Fprintf(&sb, "- Total Duration: %d %s\n", req.TotalDurationUnits, req.DurationUnitLabel)
	fmt.Fprintf(&sb, "- Team Size: %s\n", req.TeamSize)
	fmt.Fprintf(&sb, "- Project Type: %s\n", req.ProjectType)
	fmt.Fprintf(&sb, "- Methodology: %s\n\n", req.Methodology)

	fmt.Fprintf(&sb, "REQUIREMENTS:\n")
	fmt.Fprintf(&sb, "1. Break down the project into appropriate SDLC phases based on the methodology\n")
	fmt.Fprintf(&sb, "2. Allocate time (in %s and percentages) for each phase\n", req.DurationUnitLabel)
	fmt.Fprintf(&sb, "3. Ensure the total time equals exactly %d %s\n", req.TotalDurationUnits, req.DurationUnitLabel)
	fmt.Fprintf(&sb, "4. Consider the project complexity, team size, and project type\n")
	fmt.Fprintf(&sb, "5. Provide realistic time distributions based on industry best practices\n\n")

	sb.WriteString(`RESPONSE FORMAT (JSON):
{
    "project_summary": {
        "name": "project name",
        "total_duration_units": number,
        "methodology": "methodology name"
    },
    "phases": [
        {
            "name": "Phase Name",
            "duration_units": number,
            "percentage": percentage_of_total,
            "description": "What happens in this phase",
            "deliverables": ["key", "deliverables"],
            "activities": ["main", "activities"],
            "team_focus": "Primary team focus area"
        }
    ]
}

GUIDELINES:
- For Agile: include sprint planning, development sprints, testing, and deployment phases
- For Waterfall: include requirements, design, implementation, testing, deployment, maintenance
- For Hybrid: combine elements appropriately
- For DevOps: emphasize pipeline setup, continuous integration, and operations
- Adjust phase durations based on team size and project type

Please provide ONLY the JSON response, no additional text or formatting.
`)

	return sb.String()
}
