// Package calculator holds static assets embedded at the module root.
package calculator

import "embed"

// Migrations contains the goose SQL migrations applied by the migrate command
// and by integration tests.
//
//go:embed migrations/*.sql
var Migrations embed.FS
