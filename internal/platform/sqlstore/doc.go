// Package sqlstore implements the storage interfaces of internal/store on
// PostgreSQL (pgx) and SQLite (modernc.org/sqlite).
//
// Both dialects share the same queries; placeholders are written as '?' and
// rebound for PostgreSQL. Dates are stored as ISO-8601 text so range queries
// compare lexically on either database. Schema migrations are embedded and
// applied with goose.
package sqlstore
