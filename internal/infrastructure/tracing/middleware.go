package tracing

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderRequestID carries the trace ID across the HTTP boundary.
	HeaderRequestID = "X-Request-ID"
	headerSpanID    = "X-Span-ID"
)

// HTTPMiddleware creates Gin middleware that opens one span per request.
// A caller-supplied X-Request-ID becomes the trace ID.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if incoming := c.GetHeader(HeaderRequestID); incoming != "" {
			ctx = WithTraceID(ctx, TraceID(incoming))
		}

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		span.SetTag("http.host", c.Request.Host)
		if cmd := c.Param("command"); cmd != "" {
			span.SetTag("command", cmd)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, string(span.TraceID))
		c.Header(headerSpanID, string(span.SpanID))

		c.Next()

		span.SetStatus(c.Writer.Status())
		span.SetTag("http.status", strconv.Itoa(c.Writer.Status()))
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}
		span.Finish()
		tracer.Submit(span)
	}
}
