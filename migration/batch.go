package migration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
)

// chunkSize keeps each INSERT under the placeholder limit imposed by the
// postgres wire protocol.
const chunkSize = 2000

func chunkRows[T any](rows []T, size int) [][]T {
	if size <= 0 || len(rows) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}

// insertChunked bulk-inserts all rows in chunkSize slices and returns how
// many rows made it in before any failure.
func insertChunked[T any](ctx context.Context, db bun.IDB, table string, rows []T) (int, error) {
	var inserted int
	for i, chunk := range chunkRows(rows, chunkSize) {
		if _, err := db.NewInsert().Model(&chunk).Exec(ctx); err != nil {
			return inserted, fmt.Errorf("failed to insert %s chunk %d: %w", table, i, err)
		}
		inserted += len(chunk)

		slog.Debug("inserted chunk",
			slog.String("type", "db"),
			slog.String("table", table),
			slog.Int("chunk", i),
			slog.Int("rows", len(chunk)),
		)
	}
	return inserted, nil
}
