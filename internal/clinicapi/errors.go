package clinicapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound matches API rejections with a 404 status via errors.Is.
var ErrNotFound = errors.New("clinicapi: not found")

// TransportError indicates the request never produced an HTTP response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("clinicapi: transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserMessage returns the generic connectivity notice shown to the user.
func (e *TransportError) UserMessage() string {
	return "Falha na comunicação com o servidor."
}

// FieldError is one entry of a Bean Validation style error body.
type FieldError struct {
	Campo    string `json:"campo"`
	Mensagem string `json:"mensagem"`
}

// APIError is a non-2xx response. The body is decoded into either a single
// message, a list of field errors, or kept as raw text.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []FieldError
	Raw        string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("clinicapi: validation rejected (status=%d): %s", e.StatusCode, e.UserMessage())
	}
	if e.Message != "" {
		return fmt.Sprintf("clinicapi: %s (status=%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("clinicapi: http status %d", e.StatusCode)
}

// Is lets callers write errors.Is(err, ErrNotFound).
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// UserMessage renders the error for a single user-visible notice. Field
// errors become one line per field.
func (e *APIError) UserMessage() string {
	if len(e.Fields) > 0 {
		lines := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			campo := f.Campo
			if campo == "" {
				campo = "Erro"
			}
			lines = append(lines, fmt.Sprintf("%s: %s", campo, f.Mensagem))
		}
		return strings.Join(lines, "\n")
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Raw != "" {
		return e.Raw
	}
	return fmt.Sprintf("Ocorreu um erro na requisição (status %d).", e.StatusCode)
}

// decodeAPIError interprets a non-2xx body. Order matters: the backend
// sends field error arrays for validation failures, an object with a
// message for business rejections, and occasionally plain text.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return apiErr
	}

	var fields []FieldError
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		apiErr.Fields = fields
		return apiErr
	}

	var single struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &single); err == nil && single.Message != "" {
		apiErr.Message = single.Message
		return apiErr
	}

	apiErr.Raw = trimmed
	return apiErr
}

// UserMessage extracts the user-facing notice from any error produced by
// this package. Unknown errors fall back to a generic request failure.
func UserMessage(err error) string {
	var transport *TransportError
	if errors.As(err, &transport) {
		return transport.UserMessage()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return "Ocorreu um erro na requisição."
}
