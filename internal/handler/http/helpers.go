package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/wiczolek/react-backend/internal/user"
)

// The fixed elaboration attached to every Not-Found response.
const notFoundReason = "The user was not found"

// ErrorResponse is the body of every failed operation.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
}

// respondWithError sends an ErrorResponse without a reason.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Message: message, Code: code})
}

// respondWithNotFound sends an ErrorResponse carrying the fixed reason string.
func respondWithNotFound(w http.ResponseWriter, message string) {
	respondWithJSON(w, http.StatusNotFound, ErrorResponse{
		Message: message,
		Code:    http.StatusNotFound,
		Reason:  notFoundReason,
	})
}

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Interface("payload", payload).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Failed to marshal JSON response","code":500}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrLoginExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func formatValidationErrors(validationErrors validator.ValidationErrors) string {
	details := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("Field '%s' is required", fieldError.Field()))
		default:
			details = append(details, fmt.Sprintf("Field '%s' is invalid", fieldError.Field()))
		}
	}

	return strings.Join(details, "; ")
}
