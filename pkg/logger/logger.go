package logger

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the process-wide logger. It is usable before Init with a plain JSON writer.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type ctxKey struct{}

// Init configures the global logger for the service.
func Init(serviceName, env, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var l zerolog.Logger
	if env == "development" {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
		l = zerolog.New(output).With().Timestamp().Caller().Logger()
	} else {
		l = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	Logger = l.With().Str("service", serviceName).Str("env", env).Logger()
	SetLevel(level)
}

// SetLevel sets the global log level. Unknown levels fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// WithRequestID stores the request id on ctx so WithContext can pick it up.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestID returns the request id stored on ctx, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithContext returns a logger carrying the request id and trace ids found on ctx.
func WithContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &Logger
	}

	lc := Logger.With()
	if id := RequestID(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		lc = lc.
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String())
	}

	l := lc.Logger()
	return &l
}

func Info(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Info()
}

func Error(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Error()
}

func Debug(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Debug()
}

func Warn(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Warn()
}

// BestEffort runs fn and logs any error or panic it produces. Nothing escapes to the caller.
func BestEffort(ctx context.Context, action string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			Error(ctx).
				Str("action", action).
				Str("panic", fmt.Sprint(r)).
				Msg("best-effort action panicked")
		}
	}()

	if err := fn(); err != nil {
		Error(ctx).Err(err).Str("action", action).Msg("best-effort action failed")
	}
}
