// Package api exposes scheduling over HTTP with a chi router:
//
//	GET  /healthz
//	GET  /metrics
//	POST /api/v1/schedule
//	GET  /api/v1/runs
//	GET  /api/v1/runs/{id}
//
// Routes under /api/v1 require "Authorization: Bearer <token>" when a token
// is configured.
package api
