// Package api implements the Treeline HTTP service: a thin transport
// layer over the layout pipeline. Endpoints accept a tree document and
// return the computed layout or a rendered artifact; all heavy lifting
// and caching lives in pkg/pipeline.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/treelinehq/treeline/pkg/buildinfo"
	"github.com/treelinehq/treeline/pkg/cache"
	"github.com/treelinehq/treeline/pkg/errors"
	"github.com/treelinehq/treeline/pkg/pipeline"
	"github.com/treelinehq/treeline/pkg/render"
	"github.com/treelinehq/treeline/pkg/treefile"
)

// Server handles HTTP requests against a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewHandler creates the HTTP handler for the service.
func NewHandler(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(cors)
	r.Use(s.logRequests)
	r.Use(recoverPanics(logger))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.layout)
		r.Post("/render", s.renderArtifact)
		r.Get("/formats", s.formats)
	})
	return r
}

// LayoutRequest is the body of POST /v1/layout and POST /v1/render.
type LayoutRequest struct {
	Tree    treefile.TreeFile `json:"tree"`
	Format  string            `json:"format,omitempty"`  // render only
	Refresh bool              `json:"refresh,omitempty"` // bypass caches
}

// LayoutResponse is the body of a successful POST /v1/layout.
type LayoutResponse struct {
	TreeHash string          `json:"tree_hash"`
	Layout   treefile.Layout `json:"layout"`
	Cached   bool            `json:"cached"`
}

// ErrorResponse is the body of any failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) formats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"formats": render.Formats()})
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	_, opts, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	t, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	canonical, err := treefile.MarshalTree(t)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "serialize tree"))
		return
	}
	treeHash := cache.Hash(canonical)

	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), t, treeHash, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LayoutResponse{
		TreeHash: treeHash,
		Layout:   l,
		Cached:   hit,
	})
}

func (s *Server) renderArtifact(w http.ResponseWriter, r *http.Request) {
	req, opts, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	format := req.Format
	if format == "" {
		format = pipeline.DefaultFormat
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// decodeRequest parses the shared request body and converts it to
// pipeline options. On failure it writes the error response itself.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (LayoutRequest, pipeline.Options, bool) {
	var req LayoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, pipeline.MaxInputBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return req, pipeline.Options{}, false
	}
	if len(req.Tree.Nodes) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "tree must contain nodes"))
		return req, pipeline.Options{}, false
	}

	input, err := json.Marshal(req.Tree)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode tree"))
		return req, pipeline.Options{}, false
	}
	return req, pipeline.Options{
		Input:   input,
		Refresh: req.Refresh,
		Logger:  s.logger,
	}, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), ErrorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTree,
		errors.ErrCodeInvalidNodeID, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func contentTypeFor(format string) string {
	switch format {
	case treefile.FormatSVG:
		return "image/svg+xml"
	case treefile.FormatText:
		return "text/plain; charset=utf-8"
	case treefile.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/json"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
