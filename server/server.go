// Package server exposes the model catalog over HTTP in the shape of a
// Gazebo model database: an index, per-model model.config and model.sdf
// documents, and composed world files. Read-only; it serves descriptions,
// it does not simulate.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const xmlContentType = "text/xml; charset=utf-8"

// Server serves the built-in catalog on Addr.
type Server struct {
	Addr string
}

// New returns a server bound to addr.
func New(addr string) *Server {
	return &Server{Addr: addr}
}

// Handler builds the route tree. Exposed separately from Serve so tests can
// drive it through httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", handleHealth)
	r.Get("/models", handleIndex)
	r.Get("/models/{model}/model.config", handleModelConfig)
	r.Get("/models/{model}/model.sdf", handleModelSDF)
	r.Get("/worlds/{world}", handleWorld)
	return r
}

// Serve blocks until the context is cancelled or the listener fails, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	logrus.Infof("model database listening on %s", s.Addr)

	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logrus.Debug("shutting down model database server")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": ww.Status(),
			"bytes":  ww.BytesWritten(),
			"took":   time.Since(start),
		}).Debug("request")
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}
