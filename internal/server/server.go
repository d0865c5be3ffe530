// Package server exposes the lead pipeline over HTTP for local
// frontends and scripting.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jfb-hart/lead-command/internal/enrich"
	"github.com/jfb-hart/lead-command/internal/model"
	"github.com/jfb-hart/lead-command/internal/scrape"
	"github.com/jfb-hart/lead-command/internal/search"
)

// Searcher runs the multi-phrase lead search for a city.
type Searcher interface {
	Search(ctx context.Context, city string, opts search.Options) ([]model.Lead, error)
}

// EmailLookup resolves generic contact emails for a set of domains.
type EmailLookup interface {
	LookupDomains(ctx context.Context, domains []string) map[string]enrich.EmailHit
}

// ContactScraper crawls websites for emails and owner names.
type ContactScraper interface {
	ScrapeBatch(ctx context.Context, websites []string) map[string]scrape.Result
}

// Server wires the pipeline components behind a chi router.
type Server struct {
	searcher     Searcher
	emails       EmailLookup
	scraper      ContactScraper
	filterChains bool
	log          *zap.Logger
}

// New creates a Server. Any dependency may be nil when its API key is
// not configured; the affected endpoints then report an error.
func New(searcher Searcher, emails EmailLookup, scraper ContactScraper, filterChains bool) *Server {
	return &Server{
		searcher:     searcher,
		emails:       emails,
		scraper:      scraper,
		filterChains: filterChains,
		log:          zap.L(),
	}
}

// Router builds the HTTP routes with permissive CORS for local use.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/api/search-leads", s.handleSearchLeads)
	r.Post("/api/find-emails-batch", s.handleFindEmailsBatch)
	r.Post("/api/scrape-contact", s.handleScrapeContact)

	return r
}

// ListenAndServe blocks until ctx is canceled, then drains in-flight
// requests.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server: listening", zap.Int("port", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server: shutdown")
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server: listen")
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearchLeads(w http.ResponseWriter, r *http.Request) {
	if s.searcher == nil {
		writeError(w, http.StatusInternalServerError, "search API key is not configured")
		return
	}

	city := r.URL.Query().Get("city")
	if city == "" {
		writeError(w, http.StatusBadRequest, "city query parameter is required")
		return
	}

	filterChains := s.filterChains
	if v := r.URL.Query().Get("filterChains"); v != "" {
		filterChains = v != "false"
	}

	leads, err := s.searcher.Search(r.Context(), city, search.Options{FilterChains: filterChains})
	if err != nil {
		s.log.Error("server: search failed", zap.String("city", city), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"city":  city,
		"count": len(leads),
		"leads": leads,
	})
}

type findEmailsRequest struct {
	Domains []string `json:"domains"`
}

func (s *Server) handleFindEmailsBatch(w http.ResponseWriter, r *http.Request) {
	if s.emails == nil {
		writeError(w, http.StatusInternalServerError, "email lookup API key is not configured")
		return
	}

	var req findEmailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Domains) == 0 {
		writeError(w, http.StatusBadRequest, "domains is required")
		return
	}

	results := s.emails.LookupDomains(r.Context(), req.Domains)
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

type scrapeContactRequest struct {
	Websites []string `json:"websites"`
}

func (s *Server) handleScrapeContact(w http.ResponseWriter, r *http.Request) {
	if s.scraper == nil {
		writeError(w, http.StatusInternalServerError, "scraping is not configured")
		return
	}

	var req scrapeContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Websites) == 0 {
		writeError(w, http.StatusBadRequest, "websites is required")
		return
	}

	results := s.scraper.ScrapeBatch(r.Context(), req.Websites)
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("server: write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
