// Package ai drafts the narrative fields of a day plan with a generative
// model, either as one structured JSON draft or as free text per field.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not configured")
	ErrParse         = errors.New("model response is not valid JSON")
	ErrValidation    = errors.New("model response does not match the draft schema")
)

// Model is one text-in, text-out generative model.
type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Generator owns the models for both drafting modes. A nil model means the
// API key was not configured.
type Generator struct {
	structured Model
	legacy     Model
}

func NewGenerator(structured, legacy Model) *Generator {
	return &Generator{structured: structured, legacy: legacy}
}

// Upper bounds on request sizes; every label and name ends up in the prompt.
const (
	MaxStaff      = 20
	MaxChildren   = 100
	MaxActivities = 20
)

// DraftRequest is the input of a structured draft. The tag limits mirror
// MaxStaff, MaxChildren and MaxActivities.
type DraftRequest struct {
	ActivityNames []string `json:"activityNames" validate:"required,min=1,max=20,dive,required"`
	Domain        string   `json:"domain" validate:"required"`
	ChildCount    int      `json:"childCount" validate:"lte=100"`
	StaffCount    int      `json:"staffCount" validate:"lte=20"`
}

// GenerateDailyPlanDraft issues one model call and returns the validated
// draft. Parse and schema failures are not retried.
func (g *Generator) GenerateDailyPlanDraft(ctx context.Context, req DraftRequest) (*Draft, error) {
	if g == nil || g.structured == nil {
		return nil, ErrMissingAPIKey
	}
	if err := validate.Struct(req); err != nil {
		return nil, requestError(err)
	}
	if req.ChildCount <= 0 {
		req.ChildCount = 1
	}
	if req.StaffCount <= 0 {
		req.StaffCount = 1
	}

	raw, err := g.structured.GenerateText(ctx, draftPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generate draft: %w", err)
	}
	return ParseDraft(raw)
}

// Field names the legacy per-field generation types.
type Field string

const (
	FieldPurpose      Field = "purpose"
	FieldFlow         Field = "flow"
	FieldStaffActions Field = "staffActions"
	FieldPreparations Field = "preparations"
)

func (f Field) Valid() bool {
	switch f {
	case FieldPurpose, FieldFlow, FieldStaffActions, FieldPreparations:
		return true
	}
	return false
}

func (g *Generator) GeneratePurpose(ctx context.Context, activityName, domain string) (string, error) {
	return g.generateLegacy(ctx, purposePrompt(activityName, domain))
}

func (g *Generator) GenerateFlow(ctx context.Context, activityName, domain string) (string, error) {
	return g.generateLegacy(ctx, flowPrompt(activityName, domain))
}

// GenerateStaffActions describes the roles of staffCount staff; zero means two.
func (g *Generator) GenerateStaffActions(ctx context.Context, activityName, domain string, staffCount int) (string, error) {
	if staffCount <= 0 {
		staffCount = 2
	}
	if staffCount > MaxStaff {
		return "", &RequestError{Message: tooMany, Err: fmt.Errorf("staffCount %d exceeds %d", staffCount, MaxStaff)}
	}
	return g.generateLegacy(ctx, staffActionsPrompt(activityName, domain, staffCount))
}

func (g *Generator) GeneratePreparations(ctx context.Context, activityName, domain string) (string, error) {
	return g.generateLegacy(ctx, preparationsPrompt(activityName, domain))
}

// GenerateField dispatches one legacy generation by type.
func (g *Generator) GenerateField(ctx context.Context, f Field, activityName, domain string, staffCount int) (string, error) {
	switch f {
	case FieldPurpose:
		return g.GeneratePurpose(ctx, activityName, domain)
	case FieldFlow:
		return g.GenerateFlow(ctx, activityName, domain)
	case FieldStaffActions:
		return g.GenerateStaffActions(ctx, activityName, domain, staffCount)
	case FieldPreparations:
		return g.GeneratePreparations(ctx, activityName, domain)
	}
	return "", fmt.Errorf("unknown generation type %q", f)
}

func (g *Generator) generateLegacy(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.legacy == nil {
		return "", ErrMissingAPIKey
	}
	return g.legacy.GenerateText(ctx, prompt)
}

// RequestError rejects a draft request before any model call.
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string { return e.Message + ": " + e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

const tooMany = "人数または活動数が上限を超えています"

func requestError(err error) *RequestError {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		for _, fe := range ves {
			if fe.Tag() == "lte" || fe.Tag() == "max" {
				return &RequestError{Message: tooMany, Err: err}
			}
		}
	}
	return &RequestError{Message: "活動と領域を指定してください", Err: err}
}
