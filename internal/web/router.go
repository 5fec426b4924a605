package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hokago/nichian/internal/ai"
	"github.com/hokago/nichian/internal/auth"
	"github.com/hokago/nichian/internal/handlers"
	"github.com/hokago/nichian/internal/logger"
	"github.com/hokago/nichian/internal/metrics"
	svc "github.com/hokago/nichian/internal/services"
)

// Deps are the long-lived collaborators the handlers need besides the
// database, which they reach through db.Conn().
type Deps struct {
	Sessions  *auth.Sessions
	Generator *ai.Generator
	Metrics   *metrics.HTTPMetrics
}

func Router(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.Recoverer)

	// Public
	r.Get("/healthz", handlers.Health)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", handlers.Register(d.Sessions))
		ar.Post("/login", handlers.Login(d.Sessions))
		ar.Post("/logout", handlers.Logout(d.Sessions))
		ar.With(handlers.RequireStore(d.Sessions)).Get("/me", handlers.Me)
	})

	// Store-scoped
	r.Group(func(sr chi.Router) {
		sr.Use(handlers.RequireStore(d.Sessions))

		// Activity catalog
		sr.Get("/activities", handlers.ListActivities)
		sr.Post("/activities", handlers.CreateActivity)
		sr.Delete("/activities", handlers.DeleteActivity)
		sr.Post("/activities/seed", handlers.SeedActivities)

		// Rosters
		sr.Get("/staff", handlers.RosterList(svc.StaffRoster))
		sr.Post("/staff", handlers.RosterAdd(svc.StaffRoster))
		sr.Delete("/staff", handlers.RosterRemove(svc.StaffRoster))
		sr.Get("/children", handlers.RosterList(svc.ChildRoster))
		sr.Post("/children", handlers.RosterAdd(svc.ChildRoster))
		sr.Delete("/children", handlers.RosterRemove(svc.ChildRoster))

		// Day plans
		sr.Post("/daily-plans", handlers.CreateDailyPlan)
		sr.Get("/daily-plans", handlers.ListDailyPlans)
		sr.Get("/daily-plans/{id}", handlers.GetDailyPlan)
		sr.Get("/daily-plans/{id}/export", handlers.ExportDailyPlan)
		sr.Get("/daily-plans/{id}/qr.png", handlers.DailyPlanQR)

		// Drafting and export of the plan being edited
		sr.Post("/generate", handlers.Generate(d.Generator, d.Metrics))
		sr.Post("/export", handlers.Export)
	})

	return r
}
