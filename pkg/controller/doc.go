// Package controller provides reusable HTTP middleware and helpers shared by
// the API server: request logging, CORS, request metrics and pprof mounting.
package controller
