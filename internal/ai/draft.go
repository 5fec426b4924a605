package ai

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SchemaVersion tags the draft shape on the wire. Schedule items carry a
// HH:MM time. detail and notes must be present but may be empty.
const SchemaVersion = "daily-plan-draft/v1"

type ScheduleItem struct {
	Time   string  `json:"time" validate:"hhmm"`
	Title  string  `json:"title" validate:"required"`
	Detail *string `json:"detail" validate:"required"`
}

type StaffPlanItem struct {
	StaffLabel string  `json:"staffLabel" validate:"required"`
	Assignment string  `json:"assignment" validate:"required"`
	Notes      *string `json:"notes" validate:"required"`
}

// Draft is the structured four-field plan returned by the model.
type Draft struct {
	PurposeAim   string          `json:"purposeAim" validate:"required"`
	Schedule     []ScheduleItem  `json:"schedule" validate:"required,min=1,dive"`
	StaffPlan    []StaffPlanItem `json:"staffPlan" validate:"required,min=1,dive"`
	Preparations []string        `json:"preparations" validate:"required,min=1,dive,required"`
}

var (
	hhmm     = regexp.MustCompile(`^\d{2}:\d{2}$`)
	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmm.MatchString(fl.Field().String())
	})
	return v
}

// ExtractJSON returns the span from the first '{' to the last '}'.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("%w: JSONブロックが見つかりませんでした", ErrParse)
	}
	return text[start : end+1], nil
}

// ParseDraft extracts, decodes and validates a raw model response.
func ParseDraft(raw string) (*Draft, error) {
	span, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(span)) {
		return nil, fmt.Errorf("%w: JSONの解析に失敗しました", ErrParse)
	}
	var d Draft
	if err := json.Unmarshal([]byte(span), &d); err != nil {
		// valid JSON of the wrong types, e.g. a string where an array belongs
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}
	return &d, nil
}

func describe(err error) string {
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		ns := fe.Namespace()
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		parts = append(parts, ns+" "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
