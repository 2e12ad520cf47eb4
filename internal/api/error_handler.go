package api

import (
	"net/http"

	"github.com/vytor/mathsprint/internal/errors"
	"github.com/vytor/mathsprint/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}
	status := appErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	if status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	writeJSON(w, r, status, errorBody{Error: errorDetail{Code: appErr.Code, Message: appErr.Message}})
}
