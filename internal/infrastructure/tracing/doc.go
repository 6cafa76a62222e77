/*
Package tracing provides lightweight request tracing.

Each HTTP request gets a span; spans are collected on a buffered channel
and written to the structured log when they finish. The trace ID doubles
as the request ID returned in X-Request-ID, so front-end logs and backend
logs can be correlated.

# Usage

	tracer := tracing.New("backend", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
*/
package tracing
