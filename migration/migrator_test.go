package migration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustachebash/v1-migration/database/models"
)

func TestRunStagesContinuesAfterFailure(t *testing.T) {
	var ran []string
	boom := errors.New("collection unreachable")

	stages := []stage{
		{name: "first", run: func(ctx context.Context) (int, error) {
			ran = append(ran, "first")
			return 10, nil
		}},
		{name: "second", run: func(ctx context.Context) (int, error) {
			ran = append(ran, "second")
			return 3, boom
		}},
		{name: "third", run: func(ctx context.Context) (int, error) {
			ran = append(ran, "third")
			return 7, nil
		}},
	}

	stats := &RunStats{Started: time.Now()}
	runStages(context.Background(), stages, stats)

	assert.Equal(t, []string{"first", "second", "third"}, ran, "a failed stage must not stop the run")
	require.Len(t, stats.Stages, 3)

	assert.False(t, stats.Stages[0].Failed())
	assert.True(t, stats.Stages[1].Failed())
	assert.Equal(t, "collection unreachable", stats.Stages[1].Error)
	assert.Equal(t, 3, stats.Stages[1].Rows, "rows reached before the failure are kept")
	assert.False(t, stats.Stages[2].Failed())

	assert.True(t, stats.Failed())
	assert.Equal(t, 1, stats.FailedCount())
	assert.Equal(t, 20, stats.TotalRows())
}

func TestResolveGuestOrder(t *testing.T) {
	processorIndex := map[string]string{
		"bt12345": "order-uuid-1",
		"pp67890": "order-uuid-2",
	}

	tests := []struct {
		name          string
		transactionID string
		wantOrderID   *string
		wantOK        bool
	}{
		{
			name:          "comped guest has no order",
			transactionID: "COMPED",
			wantOrderID:   nil,
			wantOK:        true,
		},
		{
			name:          "uuid reference is already an order id",
			transactionID: "11111111-2222-3333-4444-555555555555",
			wantOrderID:   ptr("11111111-2222-3333-4444-555555555555"),
			wantOK:        true,
		},
		{
			name:          "braintree id joins through the index",
			transactionID: "bt12345",
			wantOrderID:   ptr("order-uuid-1"),
			wantOK:        true,
		},
		{
			name:          "paypal id joins through the index",
			transactionID: "pp67890",
			wantOrderID:   ptr("order-uuid-2"),
			wantOK:        true,
		},
		{
			name:          "unmatched processor id",
			transactionID: "bt99999",
			wantOrderID:   nil,
			wantOK:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderID, ok := resolveGuestOrder(tt.transactionID, processorIndex)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOrderID, orderID)
		})
	}
}

func TestDedupeCustomers(t *testing.T) {
	earliest := &models.Customer{ID: "c1", Email: "buyer@example.com"}
	duplicate := &models.Customer{ID: "c2", Email: "buyer@example.com"}
	other := &models.Customer{ID: "c3", Email: "other@example.com"}

	unique := dedupeCustomers([]*models.Customer{earliest, duplicate, other})

	require.Len(t, unique, 2)
	assert.Same(t, earliest, unique[0], "earliest record for an email wins")
	assert.Same(t, other, unique[1])
}
