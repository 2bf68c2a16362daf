package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// GalleryConfig holds server configuration.
type GalleryConfig struct {
	Bind string
	Port int
}

// Gallery is a Sink that keeps artifacts in memory and serves them over HTTP.
type Gallery struct {
	cfg    GalleryConfig
	logger *log.Logger
	router *chi.Mux

	mu        sync.RWMutex
	artifacts []Artifact
	byID      map[string]int
}

// NewGallery returns a gallery with its routes registered. A nil logger uses
// log.Default().
func NewGallery(cfg GalleryConfig, logger *log.Logger) *Gallery {
	if logger == nil {
		logger = log.Default()
	}
	g := &Gallery{cfg: cfg, logger: logger, byID: make(map[string]int)}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(g.accessLog)
	r.Get("/", g.index)
	r.Get("/artifacts/{id}", g.artifact)
	r.Get("/api/artifacts", g.list)
	g.router = r
	return g
}

// Display stores a, replacing an earlier artifact with the same id.
func (g *Gallery) Display(_ context.Context, a Artifact) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i, ok := g.byID[a.ID]; ok {
		g.artifacts[i] = a
		return nil
	}
	g.byID[a.ID] = len(g.artifacts)
	g.artifacts = append(g.artifacts, a)
	return nil
}

// Get returns the artifact with id.
func (g *Gallery) Get(id string) (Artifact, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i, ok := g.byID[id]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return g.artifacts[i], nil
}

// List returns the stored artifacts in display order.
func (g *Gallery) List() []Artifact {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Artifact, len(g.artifacts))
	copy(out, g.artifacts)
	return out
}

// Router returns the underlying router, useful for tests.
func (g *Gallery) Router() http.Handler { return g.router }

// Addr returns the listening address.
func (g *Gallery) Addr() string {
	return net.JoinHostPort(g.cfg.Bind, fmt.Sprint(g.cfg.Port))
}

// ListenAndServe serves until ctx is canceled.
func (g *Gallery) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: g.Addr(), Handler: g.router, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (g *Gallery) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "gallery", g.List()); err != nil {
		g.logger.Error("gallery index", "err", err)
	}
}

func (g *Gallery) artifact(w http.ResponseWriter, r *http.Request) {
	a, err := g.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if a.Kind == FormatHTML {
		// fragments need the loader page around them
		w.Header().Set("Content-Type", a.ContentType())
		fmt.Fprintf(w, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><script src=%q></script></head><body>%s</body></html>", DefaultAssets.RequireJS, a.Body)
		return
	}
	w.Header().Set("Content-Type", a.ContentType())
	w.Write(a.Body)
}

func (g *Gallery) list(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(g.List())
}

func (g *Gallery) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		g.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start).Round(time.Microsecond))
	})
}
