package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modorder/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// writeErr maps err to a status via its error code. Uncoded errors are
// reported as internal without leaking their text.
func writeErr(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(err)

	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	writeError(w, status, string(code), msg)
}

func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
