package middleware

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/cbk-gemmy/finance-platform/pkg/configpkg"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// NewLogger returns the application logger.
// Development mode switches to a human readable console output with caller info.
func NewLogger(config configpkg.Config) zerolog.Logger {
	return newLogger(config, os.Stderr)
}

func newLogger(config configpkg.Config, output io.Writer) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	log := zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()

	if config.IsDevelopment() {
		log = log.
			Output(zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}).
			Level(zerolog.TraceLevel).
			With().
			Caller().
			Logger()
	}

	return log
}

// RequestLogger attaches a request scoped logger to the request context
// and logs every finished request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		start := time.Now()

		requestID := gctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			gctx.Request.Header.Set(RequestIDHeader, requestID)
		}

		gctx.Writer.Header().Set(RequestIDHeader, requestID)

		l := logger.With().Str("request_id", requestID).Logger()
		gctx.Request = gctx.Request.WithContext(l.WithContext(gctx.Request.Context()))

		gctx.Next()

		status := gctx.Writer.Status()

		var event *zerolog.Event
		if status >= 500 {
			event = l.Error()
		} else {
			event = l.Info()
		}

		event.
			Str("client_ip", gctx.ClientIP()).
			Str("method", gctx.Request.Method).
			Int("status_code", status).
			Str("path", gctx.Request.URL.Path).
			Dur("latency", time.Since(start)).
			Msg(gctx.Errors.ByType(gin.ErrorTypePrivate).String())
	}
}
