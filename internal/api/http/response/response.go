// Package response writes the JSON envelope shared by every HTTP endpoint.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/logger"
)

// Envelope is the body of every response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
}

// JSON writes env with status.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a successful envelope.
func OK(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Error writes a failure envelope for err. Unclassified errors are reported
// as internal and their details go to the log only.
func Error(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Internal("internal server error", err)
	}

	switch appErr.Kind {
	case apperror.KindInternal, apperror.KindUnavailable:
		log.Error("HTTP: request failed", "kind", appErr.Kind.String(), "error", err.Error())
	}

	code := appErr.Kind.String()
	if appErr.Reason != "" {
		code = string(appErr.Reason)
	}

	if appErr.Kind == apperror.KindAuthentication && appErr.Reason != "" {
		w.Header().Set("WWW-Authenticate", bearerChallenge(appErr))
	}
	if appErr.Retryable() {
		w.Header().Set("Retry-After", "1")
	}

	message := appErr.Message
	if appErr.Kind == apperror.KindInternal {
		message = "internal server error"
	}

	JSON(w, appErr.HTTPStatus(), Envelope{Success: false, Message: message, Code: code})
}

func bearerChallenge(e *apperror.Error) string {
	errCode := "invalid_token"
	if e.Reason == apperror.ReasonTokenMissing {
		return `Bearer realm="studypartner"`
	}
	if e.Reason == apperror.ReasonTokenMalformed {
		errCode = "invalid_request"
	}
	return fmt.Sprintf(`Bearer realm="studypartner", error=%q, error_description=%q`, errCode, e.Message)
}

// Decode reads a JSON body into dst. Unknown fields and trailing data are
// rejected.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperror.Validation("request body too large")
		case errors.Is(err, io.EOF):
			return apperror.Validation("request body required")
		default:
			return apperror.Validation("invalid request body")
		}
	}
	if dec.More() {
		return apperror.Validation("invalid request body")
	}
	return nil
}
