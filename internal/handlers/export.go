package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hokago/nichian/internal/apierr"
	"github.com/hokago/nichian/internal/export"
	svc "github.com/hokago/nichian/internal/services"
)

// POST /export
// Renders an unsaved plan; the body has the same shape as POST /daily-plans.
func Export(w http.ResponseWriter, r *http.Request) {
	var in svc.PlanInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	writeWorkbook(w, r, svc.NormalizePlan(in))
}

func writeWorkbook(w http.ResponseWriter, r *http.Request, p svc.PlanInput) {
	var buf bytes.Buffer
	if err := export.Write(&buf, p); err != nil {
		writeError(w, r, apierr.Internal(msg("export_failed"), err))
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(p.Date)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
