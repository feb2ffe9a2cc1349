package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/fretelweb/go-validator/framework/config"
	"github.com/fretelweb/go-validator/framework/database"
)

func TestConnect_ConfigErrors(t *testing.T) {
	logger := zerolog.Nop()

	_, err := database.Connect(context.Background(), config.DBConfig{}, &logger)
	assert.ErrorIs(t, err, database.ErrEmptyURL)

	_, err = database.Connect(context.Background(), config.DBConfig{URL: "postgres://%zz"}, &logger)
	assert.ErrorIs(t, err, database.ErrParseConfig)
}

func TestConnect_NoWaitAfterLastAttempt(t *testing.T) {
	logger := zerolog.Nop()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.DBConfig{
		URL:           "postgres://validator@127.0.0.1:1/validator?connect_timeout=5",
		RetryAttempts: 1,
		RetryInterval: time.Hour,
	}
	_, err := database.Connect(ctx, cfg, &logger)

	assert.ErrorIs(t, err, database.ErrConnectionFailed)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
}
