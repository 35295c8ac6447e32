package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mateusmacedo/train-booking/pkg/application"
)

var ErrInvalidBody = application.NewError(application.KindInvalidFormat, "Invalid request body")

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteError renders err as {"error": msg} or, for multi-field validation
// failures, {"errors": [...]}, with a status derived from its kind.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *application.AppError
	if !errors.As(err, &appErr) {
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	status := StatusFor(appErr.Kind)
	if len(appErr.Fields) > 0 {
		WriteJSON(w, status, map[string]interface{}{"errors": appErr.Fields})
		return
	}
	WriteJSON(w, status, map[string]string{"error": appErr.Message})
}

func StatusFor(kind application.ErrorKind) int {
	switch kind {
	case application.KindMissingField, application.KindInvalidFormat, application.KindBusinessRuleViolation:
		return http.StatusBadRequest
	case application.KindNotFound:
		return http.StatusNotFound
	case application.KindAuthenticationFailure:
		return http.StatusUnauthorized
	case application.KindForbidden:
		return http.StatusForbidden
	case application.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ErrInvalidBody
	}
	return nil
}
