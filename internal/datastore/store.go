// Package datastore exports catalog records to SQLite or a remote Datasette instance.
package datastore

import "context"

// Store is a sink for exported catalog rows.
type Store interface {
	// Connect prepares the store for writes.
	Connect(ctx context.Context) error

	// CreateTable applies a CREATE TABLE IF NOT EXISTS statement.
	CreateTable(ctx context.Context, schema string) error

	// Upsert writes records into table, replacing rows that share a primary key.
	Upsert(ctx context.Context, table string, records []map[string]any) error

	Close() error
}
