package preview

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/metrics"
	"git.home.luguber.info/inful/aepsite/internal/sample"
)

// Server serves the output tree, the sample endpoint, and build status.
type Server struct {
	Addr       string
	root       string
	router     *chi.Mux
	server     *http.Server
	status     *buildStatus
	registry   *prom.Registry
	sampleRoot func() (string, error)
	errors     *errors.HTTPErrorAdapter
}

// NewServer creates a server for the output tree at root. sampleRoot
// resolves the directory sample paths are relative to.
func NewServer(addr, root string, status *buildStatus, reg *prom.Registry, sampleRoot func() (string, error)) *Server {
	s := &Server{
		Addr:       addr,
		root:       root,
		router:     chi.NewRouter(),
		status:     status,
		registry:   reg,
		sampleRoot: sampleRoot,
		errors:     errors.NewHTTPErrorAdapter(nil),
	}
	s.setupRoutes()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/status", s.handleStatus)
	s.router.Get("/api/sample", s.handleSample)
	s.router.Handle("/metrics", metrics.HTTPHandler(s.registry))
	s.router.Handle("/*", s.files())
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until Shutdown. It returns http.ErrServerClosed after a
// clean shutdown.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if !s.status.good() {
		status = "no_successful_build"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": status})
}

// StatusResponse describes the latest build.
type StatusResponse struct {
	Builds    int    `json:"builds"`
	BuildID   string `json:"build_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Documents int    `json:"documents"`
	Skipped   int    `json:"skipped"`
	Warnings  int    `json:"warnings"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	report, builds, err := s.status.snapshot()
	resp := StatusResponse{Builds: builds}
	if report != nil {
		resp.BuildID = report.BuildID
		resp.Status = string(report.Status)
		resp.Documents = report.Documents()
		resp.Skipped = len(report.Skipped)
		resp.Warnings = len(report.Warnings)
	}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// SampleResponse is the payload of /api/sample.
type SampleResponse struct {
	Path     string `json:"path"`
	Type     string `json:"type"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// handleSample extracts a snippet: ?path=&type=&token1=&token2=. The type
// defaults to the one implied by the file extension.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rel := q.Get("path")
	if rel == "" {
		s.errors.WriteErrorResponse(w, r, errors.ValidationError("path is required").Build())
		return
	}
	local := filepath.FromSlash(rel)
	if !filepath.IsLocal(local) {
		s.errors.WriteErrorResponse(w, r, errors.ValidationError("path must be relative to the AEP source").
			WithContext("path", rel).Build())
		return
	}
	typ := sample.Type(q.Get("type"))
	if typ == "" {
		t, ok := sample.TypeForFile(rel)
		if !ok {
			s.errors.WriteErrorResponse(w, r, errors.ValidationError("type is required for this file").
				WithContext("path", rel).Build())
			return
		}
		typ = t
	}

	root, err := s.sampleRoot()
	if err != nil {
		s.errors.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryNotFound, "AEP source not available").Build())
		return
	}
	code, err := sample.ExtractFile(filepath.Join(root, local), typ, q.Get("token1"), q.Get("token2"))
	if err != nil {
		s.errors.WriteErrorResponse(w, r, classifySample(err, rel))
		return
	}
	writeJSON(w, http.StatusOK, SampleResponse{Path: rel, Type: string(typ), Language: typ.Language(), Code: code})
}

func classifySample(err error, rel string) error {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.WrapError(err, errors.CategoryNotFound, "sample file not found").WithContext("path", rel).Build()
	case stderrors.Is(err, sample.ErrUnsupportedType):
		return errors.WrapError(err, errors.CategoryValidation, "unsupported sample type").WithContext("path", rel).Build()
	default:
		return errors.WrapError(err, errors.CategorySample, "sample extraction failed").WithContext("path", rel).Build()
	}
}

// files serves the output tree. Dot-prefixed entries, such as the build
// state directory, are hidden.
func (s *Server) files() http.Handler {
	fileServer := http.FileServer(http.Dir(s.root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, seg := range strings.Split(r.URL.Path, "/") {
			if strings.HasPrefix(seg, ".") {
				http.NotFound(w, r)
				return
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}
