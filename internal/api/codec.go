package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// decode reads a JSON body into dst, rejecting unknown fields and bodies
// larger than the configured limit.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if limit := s.cfg.Server.MaxBodyBytes; limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error onto a status code and a JSON error body
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	resp := errorResponse{
		Error:     err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	}

	var planErr *domain.PlanError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.As(err, &planErr):
		status = http.StatusUnprocessableEntity
		resp.Field = planErr.Field
	case errors.Is(err, domain.ErrNoPurchaseYear), errors.Is(err, domain.ErrPurchaseYearOutOfRange):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errUnprocessable):
		status = http.StatusUnprocessableEntity
	}

	s.log.Debug("request rejected",
		zap.String("request_id", resp.RequestID),
		zap.Int("status", status),
		zap.Error(err),
	)
	writeJSON(w, status, resp)
}

// errUnprocessable marks well-formed requests the engine cannot act on
var errUnprocessable = errors.New("unprocessable request")

func unprocessable(err error) error {
	return fmt.Errorf("%w: %w", errUnprocessable, err)
}
