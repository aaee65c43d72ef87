package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	sdlc "github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/export"
	pipeline "github.com/smartsdlc/go-sdlc-backend/internal/sdlc/service"
)

// requestFile is the YAML request descriptor the generate subcommand
// reads. Field names match the HTTP API body.
type requestFile struct {
	ProjectName        string `yaml:"project_name"`
	Description        string `yaml:"description"`
	ProjectType        string `yaml:"project_type"`
	TeamSize           string `yaml:"team_size"`
	Methodology        string `yaml:"methodology"`
	TotalDurationUnits int    `yaml:"total_duration_units"`
	DurationUnitLabel  string `yaml:"duration_unit_label"`
}

// RunGenerate builds a breakdown offline, without the API or any
// storage: read a request descriptor, optionally a saved AI response,
// run the pipeline, write export files. With no response file the run
// is fully deterministic (fallback templates).
func RunGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	responsePath := fs.String("response", "", "path to a saved AI response text file")
	outDir := fs.String("out", "out", "output directory for export files")
	format := fs.String("format", "all", "export format: all, json, csv, or markdown")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	if fs.NArg() < 1 {
		log.Fatal("usage: worker generate <request.yaml> [-response file] [-out dir] [-format all|json|csv|markdown]")
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("read request file: %v", err)
	}
	var rf requestFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		log.Fatalf("parse request file: %v", err)
	}

	req := sdlc.Request{
		ProjectName:        rf.ProjectName,
		Description:        rf.Description,
		ProjectType:        rf.ProjectType,
		TeamSize:           rf.TeamSize,
		Methodology:        sdlc.ParseMethodology(rf.Methodology),
		TotalDurationUnits: rf.TotalDurationUnits,
		DurationUnitLabel:  rf.DurationUnitLabel,
	}
	if req.DurationUnitLabel == "" {
		req.DurationUnitLabel = "weeks"
	}

	aiText := ""
	if *responsePath != "" {
		body, err := os.ReadFile(*responsePath)
		if err != nil {
			log.Fatalf("read response file: %v", err)
		}
		aiText = string(body)
	}

	result, err := pipeline.BuildBreakdown(req, aiText)
	if err != nil {
		log.Fatalf("build breakdown: %v", err)
	}
	for _, warning := range result.Warnings {
		log.Printf("[warn] %s", warning)
	}

	formats := []export.Format{export.FormatJSON, export.FormatCSV, export.FormatMarkdown}
	if *format != "all" {
		f, err := export.ParseFormat(*format)
		if err != nil {
			log.Fatalf("%v", err)
		}
		formats = []export.Format{f}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	extensions := map[export.Format]string{
		export.FormatJSON:     "json",
		export.FormatCSV:      "csv",
		export.FormatMarkdown: "md",
	}
	for _, f := range formats {
		body, err := export.Serialize(result.Breakdown, f)
		if err != nil {
			log.Fatalf("serialize %s: %v", f, err)
		}
		path := filepath.Join(*outDir, "breakdown."+extensions[f])
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("[info] wrote %s", path)
	}

	fmt.Print(export.Summary(result.Breakdown))
}
