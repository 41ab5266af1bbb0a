package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AbdulWasayUl/graphql-countries/internal/logger"
	"github.com/AbdulWasayUl/graphql-countries/internal/schema"
	"github.com/graphql-go/graphql"
)

const maxBodyBytes = 1 << 20

//go:embed static/index.html
var indexHTML []byte

var errMissingOperation = errors.New("request body must contain a query or mutation")

// PingFunc reports whether the backing store is reachable.
type PingFunc func(ctx context.Context) error

type graphQLRequest struct {
	Query     *string                `json:"query"`
	Mutation  *string                `json:"mutation"`
	Variables map[string]interface{} `json:"variables"`
}

func (req graphQLRequest) operation() (string, error) {
	if req.Query != nil {
		return *req.Query, nil
	}
	if req.Mutation != nil {
		return *req.Mutation, nil
	}
	return "", errMissingOperation
}

type errorMessage struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Errors []errorMessage `json:"errors"`
}

type dataResponse struct {
	Data interface{} `json:"data"`
}

type handler struct {
	schema  graphql.Schema
	timeout time.Duration
	ping    PingFunc
}

func (h *handler) graphQL(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body: "+err.Error())
		return
	}
	op, err := req.operation()
	if err != nil {
		writeError(w, err.Error())
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res := schema.Execute(ctx, h.schema, op, req.Variables)
	if res.HasErrors() {
		writeError(w, res.Errors[0].Message)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: res.Data})
}

func (h *handler) home(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			logger.Warn("Health check failed: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Errors: []errorMessage{{Message: message}}})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to write response: %v", err)
	}
}
