package api

import (
	"encoding/json"
	"net/http"
	"os"

	"log/slog"
)

// package-level logger used by middleware and handlers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, errorResponse{Error: msg}, status)
}

// serverError logs the cause and hides it behind a generic 500 body.
func serverError(w http.ResponseWriter, r *http.Request, action string, err error) {
	logger.Error(action,
		slog.Any("err", err),
		slog.String("request_id", requestID(r.Context())),
	)
	writeError(w, "Internal server error", http.StatusInternalServerError)
}
