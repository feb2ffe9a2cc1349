package routing_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fretelweb/go-validator/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := routing.New(nil)
	r.Get("/forms", okHandler)
	r.Post("/forms/{form}/validate", okHandler)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/forms").Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/forms/register/validate").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, r, http.MethodPost, "/forms").Code)
}

// ── Fallback handlers ─────────────────────────────────────────────────────────

func TestRouter_NotFound(t *testing.T) {
	r := routing.New(nil)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/not-registered").Code)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	assert.Equal(t, http.StatusTeapot, do(t, r, http.MethodGet, "/not-registered").Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := routing.New(nil)
	r.Get("/health", okHandler)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	assert.Equal(t, http.StatusTeapot, do(t, r, http.MethodDelete, "/health").Code)
}

// ── Route params ─────────────────────────────────────────────────────────────

func TestRouter_Param(t *testing.T) {
	r := routing.New(nil)
	r.Get("/forms/{form}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(routing.Param(req, "form")))
	})

	rr := do(t, r, http.MethodGet, "/forms/register")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "register", rr.Body.String())
}

// ── Prefix / Group ───────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New(nil)
	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/forms", okHandler)
	})

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/v1/forms").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/forms").Code)
}

func TestRouter_Group_Middleware(t *testing.T) {
	called := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	r := routing.New(nil)
	r.Group(func(g *routing.Router) {
		g.Middleware(mw)
		g.Get("/protected", okHandler)
	})

	do(t, r, http.MethodGet, "/protected")
	assert.True(t, called, "expected middleware to be called")
}

// ── CORS ─────────────────────────────────────────────────────────────────────

func TestRouter_CORS(t *testing.T) {
	r := routing.New(nil)
	r.CORS([]string{"https://forms.example.com"})
	r.Post("/forms/{form}/validate", okHandler)

	preflight := httptest.NewRequest(http.MethodOptions, "/forms/contact/validate", nil)
	preflight.Header.Set("Origin", "https://forms.example.com")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, preflight)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://forms.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	other := httptest.NewRequest(http.MethodPost, "/forms/contact/validate", nil)
	other.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, other)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

// ── Logging and recovery ──────────────────────────────────────────────────────

func TestRouter_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := routing.New(&logger)
	r.Get("/health", okHandler)
	do(t, r, http.MethodGet, "/health")

	assert.Contains(t, buf.String(), `"path":"/health"`)
	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"request_id":`)
}

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(nil)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodGet, "/boom").Code)
}

func TestRouter_HandlerInterface(t *testing.T) {
	r := routing.New(nil)
	var _ http.Handler = r.Handler()
}
