package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkRows(t *testing.T) {
	tests := []struct {
		name       string
		rows       int
		size       int
		wantChunks []int
	}{
		{name: "empty", rows: 0, size: 2000, wantChunks: nil},
		{name: "under one chunk", rows: 150, size: 2000, wantChunks: []int{150}},
		{name: "exactly one chunk", rows: 2000, size: 2000, wantChunks: []int{2000}},
		{name: "one row over", rows: 2001, size: 2000, wantChunks: []int{2000, 1}},
		{name: "several chunks", rows: 4500, size: 2000, wantChunks: []int{2000, 2000, 500}},
		{name: "invalid size", rows: 10, size: 0, wantChunks: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]int, tt.rows)
			for i := range rows {
				rows[i] = i
			}

			chunks := chunkRows(rows, tt.size)
			require.Len(t, chunks, len(tt.wantChunks))
			for i, want := range tt.wantChunks {
				assert.Len(t, chunks[i], want)
			}
		})
	}
}

func TestChunkRowsPreservesOrder(t *testing.T) {
	rows := make([]int, 5000)
	for i := range rows {
		rows[i] = i
	}

	var flattened []int
	for _, chunk := range chunkRows(rows, 2000) {
		flattened = append(flattened, chunk...)
	}

	assert.Equal(t, rows, flattened)
}
