package http

import (
	"encoding/json"
	"net/http"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with Laravel-style helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusBadRequest, "The request body is not valid JSON.")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, firstOr(message, "Not found."))
}

// MethodNotAllowed sends 405.
func (res *Response) MethodNotAllowed(message ...string) {
	res.Error(http.StatusMethodNotAllowed, firstOr(message, "Method not allowed."))
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	res.Error(http.StatusInternalServerError, firstOr(message, "Server Error."))
}

// ServiceUnavailable sends 503.
func (res *Response) ServiceUnavailable(message ...string) {
	res.Error(http.StatusServiceUnavailable, firstOr(message, "Service Unavailable."))
}

// ValidationError sends 422 with the first message of every failing field.
//
//	res.ValidationError(v.Errors())  // {"errors": {"email": "..."}}
func (res *Response) ValidationError(errors map[string]string) {
	res.JSON(http.StatusUnprocessableEntity, envelope{"errors": errors})
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func firstOr(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
