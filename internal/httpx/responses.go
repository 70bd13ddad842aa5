package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrInvalidBody is returned by DecodeJSON when the body is not a JSON object.
var ErrInvalidBody = errors.New("invalid request body")

type ErrorResponse struct {
	Error     string        `json:"error"`
	Details   []ErrorDetail `json:"details,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, message string, details []ErrorDetail) {
	JSON(w, statusCode, ErrorResponse{
		Error:     message,
		Details:   details,
		RequestID: RequestIDFrom(r),
	})
}

// DecodeJSON decodes the request body into dst. Oversized bodies keep their
// *http.MaxBytesError so callers can answer 413.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}
