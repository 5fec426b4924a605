package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hokago/nichian/internal/db"
	"github.com/hokago/nichian/internal/logger"
	svc "github.com/hokago/nichian/internal/services"
)

// POST /daily-plans
func CreateDailyPlan(w http.ResponseWriter, r *http.Request) {
	var in svc.PlanInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := svc.CreateDailyPlan(db.Conn(), currentStore(r).StoreID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("daily plan saved",
		zap.String("plan_id", p.ID), zap.String("date", p.Date))
	writeJSON(w, http.StatusOK, p)
}

// GET /daily-plans
func ListDailyPlans(w http.ResponseWriter, r *http.Request) {
	list, err := svc.ListDailyPlans(db.Conn(), currentStore(r).StoreID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /daily-plans/{id}
func GetDailyPlan(w http.ResponseWriter, r *http.Request) {
	p, err := svc.GetDailyPlan(db.Conn(), currentStore(r).StoreID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GET /daily-plans/{id}/export
func ExportDailyPlan(w http.ResponseWriter, r *http.Request) {
	p, err := svc.GetDailyPlan(db.Conn(), currentStore(r).StoreID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeWorkbook(w, r, p.PlanInput)
}
