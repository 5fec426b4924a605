package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/hokago/nichian/internal/db"
	svc "github.com/hokago/nichian/internal/services"
)

// GET /daily-plans/{id}/qr.png
// Encodes the plan's export URL so a printed plan can be downloaded again.
func DailyPlanQR(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := svc.GetDailyPlan(db.Conn(), currentStore(r).StoreID, id); err != nil {
		writeError(w, r, err)
		return
	}

	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	url := scheme + "://" + r.Host + "/daily-plans/" + id + "/export"

	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
