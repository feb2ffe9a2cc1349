package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fretelweb/go-validator/app/http/controllers"
	"github.com/fretelweb/go-validator/forms"
	"github.com/fretelweb/go-validator/framework/routing"
	"github.com/fretelweb/go-validator/framework/validation"
	"github.com/fretelweb/go-validator/framework/validation/mocks"
	"github.com/fretelweb/go-validator/routes"
)

const formsYAML = `
forms:
  contact:
    rules:
      nombre: required
      apellido: required
      email: required|email
  newsletter:
    rules:
      email: email
  register:
    rules:
      email: required|email|unique:users,email
      password: secure
`

// ── helpers ──────────────────────────────────────────────────────────────────

func newServer(t *testing.T, unique validation.UniqueChecker) *routing.Router {
	t.Helper()
	reg, err := forms.Load(strings.NewReader(formsYAML))
	require.NoError(t, err)

	r := routing.New(nil)
	routes.API(r, controllers.NewFormsController(reg, unique, nil))
	return r
}

type reply struct {
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
	Message string            `json:"message"`
}

func send(t *testing.T, h http.Handler, method, path, contentType, body string) (int, reply) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var out reply
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return rr.Code, out
}

func postJSON(t *testing.T, h http.Handler, path, body string) (int, reply) {
	t.Helper()
	return send(t, h, http.MethodPost, path, "application/json", body)
}

// ── Read endpoints ────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	code, out := send(t, newServer(t, nil), http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, string(out.Data))
}

func TestIndex(t *testing.T) {
	code, out := send(t, newServer(t, nil), http.MethodGet, "/api/v1/forms", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `["contact","newsletter","register"]`, string(out.Data))
}

func TestShow(t *testing.T) {
	code, out := send(t, newServer(t, nil), http.MethodGet, "/api/v1/forms/register", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{
		"name": "register",
		"fields": ["email", "password"],
		"rules": {"email": "required|email|unique:users,email", "password": "secure"}
	}`, string(out.Data))
}

func TestShow_UnknownForm(t *testing.T) {
	code, out := send(t, newServer(t, nil), http.MethodGet, "/api/v1/forms/nope", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Form not found.", out.Message)
}

func TestFallbackRoutes(t *testing.T) {
	srv := newServer(t, nil)

	code, out := send(t, srv, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not found.", out.Message)

	code, _ = send(t, srv, http.MethodDelete, "/api/v1/forms", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

// ── Validate ─────────────────────────────────────────────────────────────────

func TestValidate_Passes(t *testing.T) {
	code, out := postJSON(t, newServer(t, nil), "/api/v1/forms/contact/validate",
		`{"nombre":"ronny","apellido":"fretel","email":"ronny@fretelweb.com"}`)

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"nombre":"ronny","apellido":"fretel","email":"ronny@fretelweb.com"}`, string(out.Data))
}

func TestValidate_Fails(t *testing.T) {
	code, out := postJSON(t, newServer(t, nil), "/api/v1/forms/contact/validate",
		`{"nombre":"ronny","apellido":"","email":"rfretel"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, map[string]string{
		"apellido": "The apellido field is required.",
		"email":    "The email must be a valid email address.",
	}, out.Errors)
}

func TestValidate_FormEncoded(t *testing.T) {
	body := url.Values{"nombre": {"ronny"}, "apellido": {"fretel"}, "email": {"ronny@fretelweb.com"}}.Encode()
	code, _ := send(t, newServer(t, nil), http.MethodPost, "/api/v1/forms/contact/validate",
		"application/x-www-form-urlencoded", body)

	assert.Equal(t, http.StatusOK, code)
}

func TestValidate_NothingToReturn(t *testing.T) {
	code, out := postJSON(t, newServer(t, nil), "/api/v1/forms/newsletter/validate", `{}`)

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{}`, string(out.Data))
}

func TestValidate_BadRequests(t *testing.T) {
	srv := newServer(t, nil)

	code, _ := postJSON(t, srv, "/api/v1/forms/contact/validate", `{"nombre":`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = postJSON(t, srv, "/api/v1/forms/contact/validate", `{"nombre":{"first":"ronny"}}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = postJSON(t, srv, "/api/v1/forms/nope/validate", `{}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = send(t, srv, http.MethodPost, "/api/v1/forms/contact/validate", "text/plain", "nombre=ronny")
	assert.Equal(t, http.StatusUnsupportedMediaType, code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("nombre", strings.Repeat("x", 2<<20)))
	require.NoError(t, mw.Close())
	code, _ = send(t, srv, http.MethodPost, "/api/v1/forms/contact/validate", mw.FormDataContentType(), buf.String())
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestValidate_Unique(t *testing.T) {
	ctrl := gomock.NewController(t)
	unique := mocks.NewMockUniqueChecker(ctrl)
	unique.EXPECT().Unique(gomock.Any(), "users", "email", "taken@example.com").Return(false, nil)

	code, out := postJSON(t, newServer(t, unique), "/api/v1/forms/register/validate",
		`{"email":"taken@example.com","password":"Passw0rd!"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, map[string]string{"email": "The email has already been taken."}, out.Errors)
}

func TestValidate_UniqueLookupFailure(t *testing.T) {
	down := validation.UniqueFunc(func(context.Context, string, string, string) (bool, error) {
		return false, errors.New("connection refused")
	})

	code, out := postJSON(t, newServer(t, down), "/api/v1/forms/register/validate",
		`{"email":"a@example.com","password":"Passw0rd!"}`)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.NotEmpty(t, out.Message)
}

func TestValidate_UniqueWithoutChecker(t *testing.T) {
	code, _ := postJSON(t, newServer(t, nil), "/api/v1/forms/register/validate",
		`{"email":"a@example.com","password":"Passw0rd!"}`)

	assert.Equal(t, http.StatusInternalServerError, code)
}
