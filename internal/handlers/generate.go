package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hokago/nichian/internal/ai"
	"github.com/hokago/nichian/internal/apierr"
	"github.com/hokago/nichian/internal/logger"
	"github.com/hokago/nichian/internal/metrics"
)

const typeAll = "all"

type generateRequest struct {
	Type string `json:"type"`

	// legacy per-field
	ActivityName string `json:"activityName"`
	Domain       string `json:"domain"`
	StaffCount   int    `json:"staffCount"`

	// structured
	ActivityNames []string `json:"activityNames"`
	ChildCount    int      `json:"childCount"`
}

type draftResponse struct {
	SchemaVersion string `json:"schemaVersion"`
	*ai.Draft
}

type resultResponse struct {
	Result string `json:"result"`
}

// POST /generate
// type "all" returns a structured draft, the other types one text field.
func Generate(g *ai.Generator, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		if req.Type == typeAll {
			draft, err := g.GenerateDailyPlanDraft(r.Context(), ai.DraftRequest{
				ActivityNames: req.ActivityNames,
				Domain:        req.Domain,
				ChildCount:    req.ChildCount,
				StaffCount:    req.StaffCount,
			})
			m.ObserveAI("structured", outcome(err))
			if err != nil {
				writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, draftResponse{SchemaVersion: ai.SchemaVersion, Draft: draft})
			return
		}

		field := ai.Field(req.Type)
		if !field.Valid() {
			writeError(w, r, apierr.BadRequest(msg("invalid_type"), nil))
			return
		}
		text, err := g.GenerateField(r.Context(), field, req.ActivityName, req.Domain, req.StaffCount)
		m.ObserveAI("legacy", outcome(err))
		var re *ai.RequestError
		if errors.As(err, &re) {
			writeError(w, r, err)
			return
		}
		if err != nil {
			// legacy clients only ever show the one generic message
			logger.FromContext(r.Context()).Error("generation failed",
				zap.String("type", req.Type), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msg("ai_failed")})
			return
		}
		writeJSON(w, http.StatusOK, resultResponse{Result: text})
	}
}

func outcome(err error) string {
	var re *ai.RequestError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ai.ErrMissingAPIKey):
		return "missing_key"
	case errors.As(err, &re):
		return "rejected"
	case errors.Is(err, ai.ErrParse):
		return "parse_error"
	case errors.Is(err, ai.ErrValidation):
		return "schema_error"
	}
	return "error"
}
