package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/teemow/mailvault/internal/archive"
	"github.com/teemow/mailvault/internal/config"
	"github.com/teemow/mailvault/internal/logging"
)

// ArchiveRunner runs one archive invocation. Satisfied by *archive.Service;
// tests inject fakes.
type ArchiveRunner interface {
	Run(ctx context.Context, req archive.Request) (archive.Result, error)
}

// ArchiveHandler serves archive invocations over HTTP.
type ArchiveHandler struct {
	cfg    config.Config
	runner ArchiveRunner
	log    *slog.Logger
}

// NewArchiveHandler creates the HTTP handler for archive invocations.
func NewArchiveHandler(cfg config.Config, runner ArchiveRunner, log *slog.Logger) *ArchiveHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ArchiveHandler{
		cfg:    cfg,
		runner: runner,
		log:    logging.WithService(log, "http"),
	}
}

// successBody is the response body of a completed invocation.
type successBody struct {
	Message   string `json:"message"`
	Processed int    `json:"processed_messages"`
	Failed    int    `json:"failed_messages"`
}

// errorBody is the response body of a rejected or failed invocation.
type errorBody struct {
	Error string `json:"error"`
}

func (h *ArchiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	var req archive.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	// Incomplete auth configuration is a deployment error; reject before
	// any processing is attempted.
	if err := h.cfg.ValidateAuth(); err != nil {
		h.log.ErrorContext(r.Context(), "configuration error", logging.Err(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "configuration error: " + err.Error()})
		return
	}

	result, err := h.runner.Run(r.Context(), req)
	if err != nil {
		h.log.ErrorContext(r.Context(), "invocation failed",
			logging.Query(req.Query), logging.Folder(req.FolderID), logging.Err(err))
		writeJSON(w, archive.HTTPStatus(err), errorBody{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, successBody{
		Message:   result.Summary,
		Processed: result.Processed,
		Failed:    result.Failed,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// NewMux assembles the application mux: the archive endpoint plus health
// probes.
func NewMux(h *ArchiveHandler, health *HealthChecker) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/v1/archive", h)
	health.RegisterHealthEndpoints(mux)
	return mux
}
