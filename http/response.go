package http

import (
	"encoding/json"
	"net/http"

	"github.com/knoxlab/bindery/http/validation"
)

// Response wraps http.ResponseWriter with JSON envelope helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

type envelope map[string]any

// ── JSON responses ───────────────────────────────────────────────────────────

// JSON sends a JSON response.
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Created sends 201 JSON: {"data": v}
func (res *Response) Created(v any) {
	res.JSON(http.StatusCreated, envelope{"data": v})
}

// NoContent sends 204 with no body.
func (res *Response) NoContent() {
	res.w.WriteHeader(http.StatusNoContent)
}

// Error sends a JSON error response.
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// Unauthorized sends 401.
func (res *Response) Unauthorized(message ...string) {
	res.JSON(http.StatusUnauthorized, envelope{"message": first(message, "Unauthenticated.")})
}

// Forbidden sends 403.
func (res *Response) Forbidden(message ...string) {
	res.JSON(http.StatusForbidden, envelope{"message": first(message, "This action is unauthorized.")})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.JSON(http.StatusNotFound, envelope{"message": first(message, "Not found.")})
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	res.JSON(http.StatusInternalServerError, envelope{"message": first(message, "Server Error.")})
}

// ValidationError sends 422 with the standard error bag:
// {"errors": {"field": ["msg"]}}
func (res *Response) ValidationError(errors *validation.Errors) {
	res.JSON(http.StatusUnprocessableEntity, errors)
}

// BindingFailure renders a parameter-binding failure as 500. The full error
// text is kept in the body so the missing token and the pipe that required
// it stay visible; configuration errors must be fixable from the response
// alone, not from an unrelated stack frame.
func (res *Response) BindingFailure(err error) {
	res.JSON(http.StatusInternalServerError, envelope{"message": err.Error()})
}

func first(vals []string, fallback string) string {
	if len(vals) > 0 && vals[0] != "" {
		return vals[0]
	}
	return fallback
}
