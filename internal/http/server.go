// Package http serves the RecordBook pages: server-rendered templates with
// htmx partial updates, all data fetched from the backend API per request.
package http

import (
	"context"
	"encoding/json"
	"html/template"
	"io/fs"
	stdhttp "net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recordbook-web/internal/log"
	"recordbook-web/internal/recordbook"
	"recordbook-web/internal/wizard"
	appweb "recordbook-web/web"
)

type Server struct {
	stdhttp.Server
	templates *template.Template
	api       *recordbook.Client
	wizards   *wizard.Store
	log       *log.Logger

	rateLimiter *rateLimiter

	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, api *recordbook.Client, wizards *wizard.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}

	s := &Server{
		api:         api,
		wizards:     wizards,
		log:         logger,
		rateLimiter: newRateLimiter(),
		stopCleanup: make(chan struct{}),
	}

	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	r := chi.NewRouter()
	r.Use(s.withRequestLog)
	r.Use(s.withSecurityHeaders)
	r.Use(withMetrics)

	// Static assets from the embedded FS.
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.FS(sub)))
		r.Handle("/static/*", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, req)
		}))
	} else {
		logger.Warn("failed to mount embedded static FS", log.FieldError, err)
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", s.handleAbout)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/", s.handleDashboard)
		r.Get("/sales", s.handleSalesTable)
		r.Post("/sales", s.handleCreateSale)
		r.Get("/sales/{id}/edit", s.handleEditSaleRow)
		r.Put("/sales/{id}", s.handleUpdateSale)
		r.Delete("/sales/{id}", s.handleDeleteSale)

		r.Get("/operations", s.handleOperations)
		r.Post("/operations/customers", s.handleAddCustomer)
		r.Post("/operations/salesmen", s.handleAddSalesman)

		r.Route("/operations/sales", func(r chi.Router) {
			r.Get("/", s.handleWizardPage)
			r.Post("/input", s.handleWizardInput)
			r.Post("/advance", s.handleWizardAdvance)
			r.Post("/back", s.handleWizardBack)
			r.Post("/cancel", s.handleWizardCancel)
			r.Post("/route", s.handleWizardSelectRoute)
			r.Post("/village", s.handleWizardSelectVillage)
			r.Post("/salesman", s.handleWizardSelectSalesman)
			r.Post("/routes", s.handleWizardAddRoute)
			r.Post("/villages", s.handleWizardAddVillage)
			r.Post("/salesmen", s.handleWizardAddSalesman)
			r.Post("/confirm", s.handleWizardConfirm)
		})
	})

	r.Route("/daily-sales", func(r chi.Router) {
		r.Get("/", s.handleDailySalesDump)
		r.Post("/submit", s.handleDailySalesSubmit)
		r.Get("/summary", s.handleDailySalesSummary)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/summary", s.handleProductSummary)
		r.Post("/summary/submit", s.handleSummarySubmit)

		r.Get("/costs", s.handleProductCosts)
		r.Post("/costs", s.handleAddProductCost)
		r.Put("/costs/{id}", s.handleUpdateProductCost)
		r.Delete("/costs/{id}", s.handleDeleteProductCost)
		r.Get("/costs/search", s.handleSearchProductCost)
	})

	r.Get("/report", s.handleReport)
	r.Get("/summary/report", s.handleSummaryReport)

	s.Server = stdhttp.Server{
		Addr:    addr,
		Handler: r,
	}

	go s.startSessionCleanup()

	return s
}

// startSessionCleanup periodically drops expired sales-entry sessions.
func (s *Server) startSessionCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.wizards.CleanExpired(); removed > 0 {
				s.log.Debug("session cleanup completed", log.FieldRecordCount, removed)
			}
		case <-s.stopCleanup:
			return
		}
	}
}

// Shutdown stops the server and its background cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCleanup)
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleHealth(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(stdhttp.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := stdhttp.StatusOK
	checks := map[string]string{"templates": "ok"}

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = stdhttp.StatusServiceUnavailable
	}

	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]any{
		"status": status,
		"checks": checks,
	})
}

// render executes a named template into the response. Failures surface as a
// plain 500 since at that point part of the page may already be written.
func (s *Server) render(w stdhttp.ResponseWriter, r *stdhttp.Request, name string, data any) {
	if s.templates == nil {
		stdhttp.Error(w, "templates unavailable", stdhttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.log.ErrorContext(r.Context(), "template render failed",
			log.FieldPath, r.URL.Path,
			log.FieldError, err)
	}
}
