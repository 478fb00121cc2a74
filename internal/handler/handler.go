package handler

import (
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"

	"cafeteria-dash/internal/middleware"
	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/render"

	"github.com/rs/zerolog"
)

// PanelRenderer is the part of the render pipeline used by the handlers.
type PanelRenderer interface {
	Page(w io.Writer, views render.Views, opts render.Options) error
	Panel(id string, opts render.Options) (template.HTML, error)
	Refresh(ids []string, opts render.Options) (map[string]string, error)
	RebuildCharts() map[string]*render.Chart
}

// mutationResponse is returned by every JSON mutation: the stored result and
// the re-rendered panels named by the mutation.
type mutationResponse struct {
	Result  any               `json:"result"`
	Refresh map[string]string `json:"refresh"`
}

// writeJSON writes a JSON response with the given status code. Encoding
// errors are dropped because the status line has already been sent.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	logger.Error().
		Str("error", message).
		Str("code", code).
		Int("status", status).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.RequestIDFromContext(r.Context()),
	})
}

// writeDomainError maps a service error to an HTTP error response.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	status, code, message := classify(err)
	writeError(w, r, status, code, message, logger)
}

// classify maps errors to status, code and user-facing message.
// Rejected mutations are 422, malformed input 400, anything else 500.
func classify(err error) (int, string, string) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error"
	}
	if model.IsValidation(err) {
		return http.StatusUnprocessableEntity, de.Code, de.Message
	}
	return http.StatusBadRequest, de.Code, de.Message
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
