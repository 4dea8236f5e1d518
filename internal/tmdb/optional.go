package tmdb

import (
	"log/slog"

	"github.com/lepinkainen/unroll/internal/task"
)

// Optional collapses an operation result into value-or-absent. The error is logged at debug
// level and otherwise dropped.
func Optional[T any](value T, err error) (T, bool) {
	if err != nil {
		slog.Debug("TMDB result dropped", "error", err)
		var zero T
		return zero, false
	}
	return value, true
}

// OnComplete delivers the result of f to completion exactly once, as value-or-absent.
// completion runs on a goroutine owned by f.
func OnComplete[T any](f *task.Future[T], completion func(value T, ok bool)) {
	f.Then(func(value T, err error) {
		completion(Optional(value, err))
	})
}
