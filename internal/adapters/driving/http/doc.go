// Package httpserver exposes the entry point over HTTP.
//
// Routes:
//
//	GET /run?code=...  performs a run and replies with the invocation response
//	GET /healthz       liveness probe
//	GET /tasks         scheduler state and recent history
//	GET /metrics       Prometheus metrics
//
// The run endpoint is rate limited per client IP so the access code cannot be
// brute forced cheaply.
package httpserver
