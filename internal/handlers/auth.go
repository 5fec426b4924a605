package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hokago/nichian/internal/auth"
	"github.com/hokago/nichian/internal/db"
	"github.com/hokago/nichian/internal/logger"
	"github.com/hokago/nichian/internal/models"
	svc "github.com/hokago/nichian/internal/services"
)

type registerRequest struct {
	Name     string `json:"name"`
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type storeResponse struct {
	StoreName string `json:"storeName"`
}

// POST /auth/register
func Register(s *auth.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		store, err := svc.RegisterStore(db.Conn(), req.Name, req.LoginID, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}
		logger.FromContext(r.Context()).Info("store registered",
			zap.String("store_id", store.ID), zap.String("login_id", store.LoginID))
		startSession(w, r, s, store)
	}
}

// POST /auth/login
func Login(s *auth.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		store, err := svc.AuthenticateStore(db.Conn(), req.LoginID, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}
		startSession(w, r, s, store)
	}
}

func startSession(w http.ResponseWriter, r *http.Request, s *auth.Sessions, store *models.Store) {
	if err := s.SetCookie(w, auth.Session{StoreID: store.ID, StoreName: store.Name}); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, storeResponse{StoreName: store.Name})
}

// POST /auth/logout
func Logout(s *auth.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearCookie(w)
		writeOK(w)
	}
}

type meResponse struct {
	StoreID       string `json:"storeId"`
	StoreName     string `json:"storeName"`
	ActivityCount int    `json:"activityCount"`
}

// GET /auth/me
func Me(w http.ResponseWriter, r *http.Request) {
	sess := currentStore(r)
	n, err := svc.CountActivities(db.Conn(), sess.StoreID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{StoreID: sess.StoreID, StoreName: sess.StoreName, ActivityCount: n})
}
