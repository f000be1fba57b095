package server

import (
	"encoding/json"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/rdom/internal/errors"
	"github.com/vango-dev/rdom/pkg/dom"
	"github.com/vango-dev/rdom/pkg/vdom"
)

// DiffRequest is the body of POST /diff. Both trees use the YAML/JSON tree
// document format; Old may be omitted to trace a first mount.
type DiffRequest struct {
	Old json.RawMessage `json:"old,omitempty"`
	New json.RawMessage `json:"new"`
}

// DiffResponse is the reply to POST /diff.
type DiffResponse struct {
	dom.Trace
	Lines []string `json:"lines"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "server.Diff")
	defer span.End()

	var req DiffRequest
	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeServerBadRequest).WithDetail(err.Error()))
		return
	}
	if len(req.New) == 0 {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeServerBadRequest).WithDetail(`"new" is required`))
		return
	}

	var old *vdom.VNode
	if len(req.Old) > 0 && string(req.Old) != "null" {
		v, err := vdom.DecodeTree(req.Old)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		old = v
	}
	next, err := vdom.DecodeTree(req.New)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	trace := dom.Diff(old, next,
		vdom.WithHooks(s.metrics),
		vdom.WithLogger(s.logger),
		vdom.WithTracer(s.tracer),
	)
	span.SetAttributes(attribute.Int("rdom.ops", len(trace.Ops)))

	lines := make([]string, len(trace.Ops))
	for i, op := range trace.Ops {
		lines[i] = op.String()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(DiffResponse{Trace: trace, Lines: lines}); err != nil {
		s.logger.ErrorContext(ctx, "encode diff response", "error", err)
	}
}
