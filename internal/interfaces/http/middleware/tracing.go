package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength caps the request_id span attribute.
const MaxRequestIDLength = 128

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName    string
	TracerProvider trace.TracerProvider // nil uses the global provider
}

// Tracing returns the otelgin server span middleware followed by a handler
// that tags the span with the request id. Register both, after RequestID:
//
//	engine.Use(middleware.Tracing(cfg)...)
func Tracing(cfg TracingConfig) []gin.HandlerFunc {
	var opts []otelgin.Option
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}

	return []gin.HandlerFunc{
		otelgin.Middleware(cfg.ServiceName, opts...),
		func(c *gin.Context) {
			span := trace.SpanFromContext(c.Request.Context())
			if span.IsRecording() {
				if id := GetRequestID(c); id != "" && len(id) <= MaxRequestIDLength {
					span.SetAttributes(attribute.String("request_id", id))
				}
			}
			c.Next()
		},
	}
}
