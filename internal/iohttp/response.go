package iohttp

import (
	"log/slog"
	"net/http"

	"github.com/gnames/gnfish/pkg/errcode"
	"github.com/gnames/gnfish/pkg/species"
	"github.com/gnames/gnfmt"
)

type errorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := gnfmt.GNjson{}.Encode(v)
	if err != nil {
		slog.Error("Cannot encode response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "bad_request",
		Message: msg,
	})
}

// writeError maps resolver errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch species.ErrCode(err) {
	case errcode.InvalidQueryError:
		writeBadRequest(w, "name must not be empty")
	case errcode.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:      "not_found",
			Message:    "Species not found in GBIF database",
			Suggestion: species.NotFoundSuggestion,
		})
	default:
		slog.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "internal_error",
			Message: "Internal error",
		})
	}
}
