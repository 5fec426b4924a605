package handlers

import (
	"fmt"
	"net/http"

	"github.com/hokago/nichian/internal/db"
	svc "github.com/hokago/nichian/internal/services"
)

type activityRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

type idRequest struct {
	ID string `json:"id"`
}

// GET /activities?domain=health
func ListActivities(w http.ResponseWriter, r *http.Request) {
	list, err := svc.ListActivities(db.Conn(), currentStore(r).StoreID, r.URL.Query().Get("domain"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// POST /activities
func CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := svc.CreateActivity(db.Conn(), currentStore(r).StoreID, req.Name, req.Domain)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// DELETE /activities  {id}
// Defaults are hidden, customs deleted; unknown ids still answer ok.
func DeleteActivity(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := svc.DeleteActivity(db.Conn(), currentStore(r).StoreID, req.ID); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}

type seedResponse struct {
	Restored int64  `json:"restored"`
	Message  string `json:"message"`
}

// POST /activities/seed
func SeedActivities(w http.ResponseWriter, r *http.Request) {
	n, err := svc.RestoreHiddenDefaults(db.Conn(), currentStore(r).StoreID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	text := okText["nothing"]
	if n > 0 {
		text = fmt.Sprintf(okText["restored"], n)
	}
	writeJSON(w, http.StatusOK, seedResponse{Restored: n, Message: text})
}
