/*
Package monitoring provides metrics collection for the editor backend.

# Overview

Prometheus metrics for the local command surface: HTTP requests, command
invocations, file dialog outcomes and front-end WebSocket connections.
Each Metrics value owns its registry, so tests can build as many as they need.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "open_file")
	defer timer.Stop(err == nil)
*/
package monitoring
