// Package service orchestrates the normalization pipeline: raw AI
// text in, canonical breakdown out. Extraction and validation
// failures are recovered locally through the fallback templates, so
// a valid request always yields a breakdown.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/extract"
	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/reconcile"
	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/template"
	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/validate"
)

// Result carries the produced breakdown plus non-blocking warnings
// collected along the way (dropped records, fallback reasons).
type Result struct {
	Breakdown *domain.Breakdown
	Warnings  []string
}

// BuildBreakdown runs the full pipeline for one request. aiText is
// the raw model response; an empty string is the explicit
// "unavailable" signal and routes straight to the fallback templates.
// Only an invalid request descriptor surfaces as an error.
func BuildBreakdown(req domain.Request, aiText string) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(aiText) == "" {
		return fallback(req, "no AI response available")
	}

	payload, err := extract.Payload(aiText)
	if err != nil {
		if errors.Is(err, domain.ErrNoStructuredPayload) {
			return fallback(req, "response contained no structured payload")
		}
		return nil, err
	}

	draft, err := validate.Draft(payload)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return fallback(req, verr.Reason)
		}
		return nil, err
	}

	b, err := reconcile.Breakdown(draft, req, domain.SourceAIGenerated)
	if err != nil {
		// Validation guarantees a non-empty draft; reaching this is a
		// defect in the pipeline, not a user condition.
		return nil, fmt.Errorf("reconcile validated draft: %w", err)
	}
	return &Result{Breakdown: b, Warnings: draft.Warnings}, nil
}

// fallback builds a breakdown from the methodology templates. The
// template generator cannot fail for a validated request, so neither
// can this path.
func fallback(req domain.Request, reason string) (*Result, error) {
	draft := template.Draft(req)
	b, err := reconcile.Breakdown(draft, req, domain.SourceFallback)
	if err != nil {
		return nil, fmt.Errorf("reconcile fallback template: %w", err)
	}
	return &Result{
		Breakdown: b,
		Warnings:  []string{"using fallback template: " + reason},
	}, nil
}
