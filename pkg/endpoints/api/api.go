// Package api provides the pace calculator and the pace set collection as
// JSON over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mpapenbr/triathlon-pacer/log"
	"github.com/mpapenbr/triathlon-pacer/pkg/model"
	"github.com/mpapenbr/triathlon-pacer/pkg/pace"
	"github.com/mpapenbr/triathlon-pacer/pkg/paceset"
)

const maxBodySize = 1 << 20

type (
	Option func(*Server)
	Server struct {
		svc         *paceset.Service
		paceOptions []pace.Option
		log         *log.Logger
	}

	endpointHandler struct {
		pattern string
		handler http.HandlerFunc
	}

	SaveRequest struct {
		Name      string         `json:"name"`
		Form      model.RaceForm `json:"form"`
		Overwrite bool           `json:"overwrite"`
	}
	// SaveResponse is the saved pace set together with the solver messages of
	// the submitted form
	SaveResponse struct {
		model.PaceSet
		Errors      []string       `json:"errors,omitempty"`
		SolverAlert *paceset.Alert `json:"solverAlert,omitempty"`
	}
	ErrorResponse struct {
		Error    string         `json:"error"`
		Alert    *paceset.Alert `json:"alert,omitempty"`
		Existing *model.PaceSet `json:"existing,omitempty"`
		// solver messages of the submitted form, if any
		Errors []string `json:"errors,omitempty"`
	}
)

func WithPaceOptions(opts ...pace.Option) Option {
	return func(s *Server) {
		s.paceOptions = opts
	}
}

func NewServer(svc *paceset.Service, opts ...Option) *Server {
	ret := &Server{svc: svc, log: log.Default().Named("api")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Handler returns the routes of the API wrapped by the request id middleware
func (s *Server) Handler() http.Handler {
	endpoints := []endpointHandler{
		{pattern: "POST /api/v1/calculate", handler: s.calculate},
		{pattern: "GET /api/v1/pacesets", handler: s.listPaceSets},
		{pattern: "GET /api/v1/pacesets/{id}", handler: s.getPaceSet},
		{pattern: "POST /api/v1/pacesets", handler: s.savePaceSet},
		{pattern: "DELETE /api/v1/pacesets/{id}", handler: s.deletePaceSet},
	}
	mux := http.NewServeMux()
	for _, e := range endpoints {
		mux.Handle(e.pattern, e.handler)
	}
	return withRequestID(s.log, mux)
}

func (s *Server) calculate(w http.ResponseWriter, r *http.Request) {
	var form model.RaceForm
	if !s.decode(w, r, &form) {
		return
	}
	writeJSON(w, http.StatusOK, pace.Calculate(form, s.paceOptions...))
}

func (s *Server) listPaceSets(w http.ResponseWriter, r *http.Request) {
	sets, err := s.svc.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "load")
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

func (s *Server) getPaceSet(w http.ResponseWriter, r *http.Request) {
	ps, err := s.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err, "load")
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (s *Server) savePaceSet(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if !s.decode(w, r, &req) {
		return
	}
	calc := pace.Calculate(req.Form, s.paceOptions...)
	rec, err := paceset.FromCalculation(req.Name, calc)
	if err != nil {
		s.writeErrorWith(w, r, err, "save", calc.Errors)
		return
	}
	saved, err := s.svc.Save(r.Context(), rec, req.Overwrite)
	if err != nil {
		s.writeErrorWith(w, r, err, "save", calc.Errors)
		return
	}
	resp := SaveResponse{PaceSet: *saved, Errors: calc.Errors}
	if len(calc.Errors) > 0 {
		alert := paceset.SolverAlert(calc.Errors)
		resp.SolverAlert = &alert
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) deletePaceSet(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err, "delete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		log.GetFromContext(r.Context()).Debug("invalid request body", log.ErrorField(err))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	s.writeErrorWith(w, r, err, operation, nil)
}

//nolint:whitespace // can't make both editor and linter happy
func (s *Server) writeErrorWith(
	w http.ResponseWriter, r *http.Request, err error, operation string,
	solverErrors []string,
) {
	resp := ErrorResponse{Error: err.Error(), Errors: solverErrors}
	if alert, ok := paceset.AlertFor(err, operation); ok {
		resp.Alert = &alert
	}
	var conflict *paceset.ConflictError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &conflict):
		status = http.StatusConflict
		resp.Existing = &conflict.Existing
	case errors.Is(err, paceset.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, paceset.ErrEmptyName), errors.Is(err, paceset.ErrNothingToSave):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, paceset.ErrStorageFailure):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		log.GetFromContext(r.Context()).Error("request failed", log.ErrorField(err))
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("could not write response", log.ErrorField(err))
	}
}
