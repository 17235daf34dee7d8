// Package migrations holds the goose SQL migrations for the itinerary
// schema. They are compiled into every binary that needs them: the API
// test suites and the itinctl migrate command.
package migrations

import "embed"

// FS is the migration source for goose.NewProvider.
//
//go:embed *.sql
var FS embed.FS
