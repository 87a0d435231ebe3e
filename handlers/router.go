// handlers/router.go
package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/ltp-analytics/dashboard/config"
	"github.com/ltp-analytics/dashboard/datafiles"
	"github.com/ltp-analytics/dashboard/metrics"
	"github.com/ltp-analytics/dashboard/services"
)

// API holds what the HTTP handlers depend on.
type API struct {
	Config    config.Config
	Dashboard *services.DashboardService
	Updates   *services.DataUpdateService
	Files     *datafiles.Manager
	DBPing    func(ctx context.Context) error // nil unless a database is connected
}

// NewRouter mounts every endpoint of the API.
func NewRouter(a *API) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(zapLogFormatter{}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.Config.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/ping", a.Ping)
		r.Get("/health", a.Health)
		r.Get("/ltp-hub", a.LTPHubData)
		r.Get("/afe-data", a.AFEData)
		r.Get("/file-info", a.FileInfo)
		r.Get("/dashboard", a.GetDashboard)
		r.Post("/dashboard/compute", a.ComputeDashboard)
		r.Post("/upload/{kind}", a.UploadRegister)
		r.Post("/backup", a.BackupRegisters)
	})
	return r
}
