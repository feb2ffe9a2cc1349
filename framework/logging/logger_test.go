package logging_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fretelweb/go-validator/framework/config"
	"github.com/fretelweb/go-validator/framework/logging"
)

var app = config.AppConfig{Name: "svc", Env: "testing"}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LogConfig{Level: "debug", Format: "json"}, app)

	logger.Debug().Str("field", "email").Msg("rule failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "svc", entry["service"])
	assert.Equal(t, "testing", entry["env"])
	assert.Equal(t, "email", entry["field"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LogConfig{Level: "warn", Format: "json"}, app)

	logger.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LogConfig{Level: "loud", Format: "json"}, app)

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LogConfig{Level: "info", Format: "console"}, app)

	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LogConfig{Level: "info", Format: "json"}, app)

	h := middleware.RequestID(logging.RequestLogger(&logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("{}"))
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/forms/register/validate", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/api/v1/forms/register/validate", entry["path"])
	assert.Equal(t, float64(http.StatusUnprocessableEntity), entry["status"])
	assert.Equal(t, float64(2), entry["bytes"])
	assert.NotEmpty(t, entry["request_id"])
}
