package api

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/harrylevesque/freqgraphs/internal/site"
	"github.com/harrylevesque/freqgraphs/internal/utils"
)

// Handler serves the test site pages.
type Handler struct {
	site   *site.Site
	assets fs.FS
	logger *zap.Logger
}

// NewHandler builds a Handler. assets must contain index.html at its root.
func NewHandler(s *site.Site, assets fs.FS, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{site: s, assets: assets, logger: logger}
}

// IndexHandler loads a new page session and serves the page.
func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(h.assets, "index.html")
	if err != nil {
		h.logger.Error("index page missing", zap.Error(err))
		utils.WriteError(w, err)
		return
	}
	p := h.site.Load()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Session-ID", p.SessionID)
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

// HealthHandler reports liveness.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK\n"))
}

// NotifierHandler returns the current page's notifier state as JSON.
func (h *Handler) NotifierHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := h.site.Current()
	if !ok {
		utils.WriteError(w, utils.New(http.StatusNotFound, "no page loaded yet"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p.Snapshot())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs one line per request.
func (h *Handler) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
