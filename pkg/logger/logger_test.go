package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := Logger
	Logger = zerolog.New(buf)
	t.Cleanup(func() { Logger = prev })
	return buf
}

func TestBestEffort_SwallowsError(t *testing.T) {
	buf := captureLogs(t)

	assert.NotPanics(t, func() {
		BestEffort(context.Background(), "notify", func() error {
			return errors.New("db down")
		})
	})
	assert.Contains(t, buf.String(), "db down")
	assert.Contains(t, buf.String(), `"action":"notify"`)
}

func TestBestEffort_RecoversPanic(t *testing.T) {
	buf := captureLogs(t)

	assert.NotPanics(t, func() {
		BestEffort(context.Background(), "audit", func() error {
			panic("boom")
		})
	})
	assert.Contains(t, buf.String(), "boom")
}

func TestBestEffort_SilentOnSuccess(t *testing.T) {
	buf := captureLogs(t)

	BestEffort(context.Background(), "noop", func() error { return nil })
	assert.Empty(t, buf.String())
}

func TestWithContext_AddsRequestID(t *testing.T) {
	buf := captureLogs(t)

	ctx := WithRequestID(context.Background(), "req-42")
	Info(ctx).Msg("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}
