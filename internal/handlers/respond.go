package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/hokago/nichian/internal/ai"
	"github.com/hokago/nichian/internal/apierr"
	"github.com/hokago/nichian/internal/logger"
	svc "github.com/hokago/nichian/internal/services"
)

const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// decodeJSON reads the body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apierr.BadRequest(msg("bad_json"), err)
}

// toAPIError maps service and generator errors onto a status and message.
func toAPIError(err error) *apierr.Error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}
	var ve *svc.ValidationError
	if errors.As(err, &ve) {
		return apierr.BadRequest(ve.Message, err)
	}
	var re *ai.RequestError
	if errors.As(err, &re) {
		return apierr.BadRequest(re.Message, err)
	}
	switch {
	case errors.Is(err, svc.ErrConflict):
		return apierr.BadRequest(msg("login_taken"), err)
	case errors.Is(err, svc.ErrInvalidCredentials):
		return apierr.New(http.StatusUnauthorized, msg("bad_credentials"), err)
	case errors.Is(err, svc.ErrNotFound):
		return apierr.NotFound(msg("not_found"))
	case errors.Is(err, ai.ErrMissingAPIKey):
		return apierr.Internal(msg("missing_api_key"), err)
	case errors.Is(err, ai.ErrParse):
		return apierr.Internal(msg("ai_parse"), err)
	case errors.Is(err, ai.ErrValidation):
		return apierr.Internal(msg("ai_schema"), err)
	}
	return apierr.Internal(msg("internal"), err)
}

// writeError logs server-side failures and writes {error: message}.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ae := toAPIError(err)
	l := logger.FromContext(r.Context())
	if ae.Status >= http.StatusInternalServerError {
		l.Error("request failed", zap.Int("status", ae.Status), zap.Error(err))
	} else {
		l.Debug("request rejected", zap.Int("status", ae.Status), zap.Error(err))
	}
	writeJSON(w, ae.Status, map[string]string{"error": ae.Message})
}
