package cmdutil

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/unroll/internal/datastore"
	"github.com/spf13/viper"
)

// newStore picks the export sink from datastore.mode.
func newStore() (datastore.Store, error) {
	mode := viper.GetString("datastore.mode")
	switch mode {
	case "", "local":
		return datastore.NewSQLiteStore(viper.GetString("datastore.dbfile")), nil
	case "remote":
		database := viper.GetString("datastore.database")
		if database == "" {
			database = "unroll"
		}
		return datastore.NewDatasetteClient(
			viper.GetString("datastore.remote_url"),
			database,
			viper.GetString("datastore.api_token"),
		), nil
	default:
		return nil, fmt.Errorf("invalid datastore mode: %s", mode)
	}
}

// WriteToDatastore exports records when datastore.enabled is set. It is a no-op otherwise.
func WriteToDatastore[T any](ctx context.Context, records []T, schema, table, description string, toMap func(T) map[string]any) error {
	if !viper.GetBool("datastore.enabled") {
		return nil
	}

	store, err := newStore()
	if err != nil {
		return err
	}
	if err := store.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to datastore: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(ctx, schema); err != nil {
		return err
	}

	rows := make([]map[string]any, len(records))
	for i, record := range records {
		rows[i] = toMap(record)
	}
	if err := store.Upsert(ctx, table, rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", description, err)
	}

	slog.Info("Wrote records to datastore", "table", table, "description", description, "count", len(rows))
	return nil
}
