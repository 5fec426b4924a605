package handlers

import (
	"net/http"

	"github.com/hokago/nichian/internal/db"
	svc "github.com/hokago/nichian/internal/services"
)

type nameRequest struct {
	Name string `json:"name"`
}

// GET /staff, GET /children
func RosterList(ro svc.Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := ro.List(db.Conn(), currentStore(r).StoreID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// POST /staff, POST /children
func RosterAdd(ro svc.Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		m, err := ro.Add(db.Conn(), currentStore(r).StoreID, req.Name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// DELETE /staff, DELETE /children  {id}
func RosterRemove(ro svc.Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req idRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if err := ro.Remove(db.Conn(), currentStore(r).StoreID, req.ID); err != nil {
			writeError(w, r, err)
			return
		}
		writeOK(w)
	}
}
