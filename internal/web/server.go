package web

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/mwhitby/unitcheck/internal/domain"
	"github.com/mwhitby/unitcheck/internal/service"
)

type Server struct {
	service   *service.InspectionService
	templates embed.FS
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	logger    *slog.Logger
}

func NewServer(svc *service.InspectionService, tmpl embed.FS, logger *slog.Logger) *Server {
	s := &Server{
		service:   svc,
		templates: tmpl,
		mux:       http.NewServeMux(),
		logger:    logger,
		tmplFuncs: template.FuncMap{
			"inc": func(i int) int { return i + 1 },
			"seq": func(n int) []int {
				out := make([]int, n)
				for i := range out {
					out[i] = i
				}
				return out
			},
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /", s.handleSetup)
	s.mux.HandleFunc("POST /inspections", s.handleStartInspection)
	s.mux.HandleFunc("POST /reset", s.handleReset)

	s.mux.HandleFunc("GET /checklist", s.handleChecklist)
	s.mux.HandleFunc("POST /items/{category}/{index}/skip", s.handleToggleSkip)

	s.mux.HandleFunc("GET /capture/{category}/{index}", s.handleOpenCapture)
	s.mux.HandleFunc("POST /capture/frame", s.handleCaptureFrame)
	s.mux.HandleFunc("POST /capture/close", s.handleCloseCapture)

	s.mux.HandleFunc("GET /photos/{category}/{index}/{photo}", s.handleGetPhoto)
	s.mux.HandleFunc("POST /photos/{category}/{index}/{photo}/delete", s.handleDeletePhoto)

	s.mux.HandleFunc("GET /review", s.handleReview)
	s.mux.HandleFunc("GET /export", s.handleExport)

	s.mux.HandleFunc("GET /customize", s.handleCustomize)
	s.mux.HandleFunc("POST /customize", s.handleSaveCustomize)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline'; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data: blob:; "+
				"media-src 'self' blob:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	files = append([]string{"layout.html"}, files...)
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error("template execution failed", "error", err)
		return err
	}
	return nil
}

// httpStatus maps core errors to response codes. Collaborator and policy
// failures are retryable; session misuse is a conflict the UI resolves by
// reloading; everything else is a server error.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoInspection):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSessionOpen), errors.Is(err, domain.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPhotoIndex):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyExport):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCaptureUnavailable), errors.Is(err, domain.ErrArchive):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
