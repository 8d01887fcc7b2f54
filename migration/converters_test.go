package migration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

var testUsers = UserMap{
	"dustin.oreilly": "5af08d90-6dac-434f-8dbe-c7aa76336eaa",
	"joe.furfaro":    "e7464b21-e7b1-4e85-b908-afcf4b21baaf",
}

func TestConvertUser(t *testing.T) {
	legacy := LegacyUser{
		ID:          "dustin.oreilly",
		DisplayName: "Dustin O'Reilly",
		Role:        "admin",
	}

	user := convertUser(legacy, "5af08d90-6dac-434f-8dbe-c7aa76336eaa")

	assert.Equal(t, "5af08d90-6dac-434f-8dbe-c7aa76336eaa", user.ID)
	assert.Equal(t, "dustin.oreilly", user.Username)
	assert.Equal(t, "Dustin O'Reilly", user.DisplayName)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, "google", user.Authority)
	assert.Equal(t, "active", user.Status)
	assert.Nil(t, user.Password)
	assert.Nil(t, user.SubClaim)
}

func TestConvertEvent(t *testing.T) {
	updated := time.Date(2019, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("uses last update for both timestamps", func(t *testing.T) {
		event := convertEvent(LegacyEvent{
			ID:      "event-1",
			Name:    "The Bash 2019",
			Date:    time.Date(2019, 6, 1, 20, 0, 0, 0, time.UTC),
			Status:  "active",
			Updated: &updated,
		})

		require.NotNil(t, event.Created)
		require.NotNil(t, event.Updated)
		assert.Equal(t, updated, *event.Created)
		assert.Equal(t, updated, *event.Updated)
		assert.False(t, event.SalesEnabled)
	})

	t.Run("missing update leaves timestamps null", func(t *testing.T) {
		event := convertEvent(LegacyEvent{ID: "event-2", Status: "closed"})

		assert.Nil(t, event.Created)
		assert.Nil(t, event.Updated)
	})
}

func TestConvertProductAdmissionTier(t *testing.T) {
	tests := []struct {
		name         string
		productType  string
		vip          bool
		expectedTier *string
	}{
		{
			name:         "vip ticket",
			productType:  "ticket",
			vip:          true,
			expectedTier: ptr("vip"),
		},
		{
			name:         "general ticket",
			productType:  "ticket",
			vip:          false,
			expectedTier: ptr("general"),
		},
		{
			name:         "non-ticket product has no tier",
			productType:  "shirt",
			vip:          true,
			expectedTier: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := convertProduct(LegacyProduct{
				ID:   "product-1",
				Type: tt.productType,
				VIP:  tt.vip,
			})

			assert.Equal(t, tt.expectedTier, product.AdmissionTier)
		})
	}
}

func TestConvertProductDefaults(t *testing.T) {
	created := time.Date(2019, 1, 15, 0, 0, 0, 0, time.UTC)
	legacy := LegacyProduct{
		ID:       "product-1",
		Type:     "ticket",
		Name:     "General Admission",
		Price:    65,
		Created:  created,
		Quantity: ptr(500),
		EventID:  ptr("event-1"),
	}

	product := convertProduct(legacy)

	assert.Equal(t, created, product.Updated, "updated should default to created")
	assert.Equal(t, ptr(500), product.MaxQuantity)
	assert.Equal(t, ptr("event-1"), product.EventID)
	assert.Nil(t, product.UpdatedBy)
}

func TestConvertPromo(t *testing.T) {
	created := time.Date(2019, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		legacy       LegacyPromo
		expectedType string
		expectErr    bool
	}{
		{
			name: "single use keeps its type",
			legacy: LegacyPromo{
				ID:        "promo-1",
				CreatedBy: "dustin.oreilly",
				Type:      "single-use",
				Quantity:  1,
			},
			expectedType: "single-use",
		},
		{
			name: "multi use becomes a coupon",
			legacy: LegacyPromo{
				ID:        "promo-2",
				CreatedBy: "joe.furfaro",
				Type:      "single-use",
				Quantity:  25,
			},
			expectedType: "coupon",
		},
		{
			name: "unknown creator fails",
			legacy: LegacyPromo{
				ID:        "promo-3",
				CreatedBy: "ghost.operator",
				Type:      "single-use",
				Quantity:  1,
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.legacy.Created = created
			tt.legacy.Updated = created

			promo, err := convertPromo(tt.legacy, testUsers)
			if tt.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedType, promo.Type)
			assert.Equal(t, testUsers[tt.legacy.CreatedBy], promo.CreatedBy)
			assert.Nil(t, promo.PercentDiscount)
			assert.Nil(t, promo.FlatDiscount)
		})
	}
}

func TestConvertPromoUpdatedBy(t *testing.T) {
	promo, err := convertPromo(LegacyPromo{
		ID:        "promo-1",
		CreatedBy: "dustin.oreilly",
		UpdatedBy: ptr("unknown.person"),
		Type:      "single-use",
		Quantity:  1,
	}, testUsers)

	require.NoError(t, err)
	assert.Nil(t, promo.UpdatedBy, "unmapped updater should fall back to null")
}

func TestConvertSale(t *testing.T) {
	created := time.Date(2019, 4, 10, 18, 30, 0, 0, time.UTC)
	processorCreated := created.Add(2 * time.Second)
	customers := CustomerIndex{"buyer@example.com": "customer-uuid-1"}

	legacy := LegacyTransaction{
		ID:      "11111111-2222-3333-4444-555555555555",
		Amount:  130,
		Created: created,
		Email:   "Buyer@Example.com ",
		Comment: "called in to confirm",
		Order: []LegacyOrderItem{
			{ProductID: "product-1", Quantity: 2},
		},
		BraintreeTransactionID: ptr("bt12345"),
		BraintreeCreatedAt:     &processorCreated,
	}

	order, items, transaction, err := convertSale(legacy, customers)
	require.NoError(t, err)

	assert.Equal(t, legacy.ID, order.ID, "order reuses the legacy transaction id")
	assert.Equal(t, "customer-uuid-1", order.CustomerID)
	assert.Equal(t, "complete", order.Status)
	require.NotNil(t, order.Amount)
	assert.Equal(t, 130.0, *order.Amount)

	require.Len(t, items, 1)
	assert.Equal(t, legacy.ID, items[0].OrderID)
	assert.Equal(t, "product-1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)

	assert.NotEqual(t, legacy.ID, transaction.ID, "ledger entry gets its own id")
	assert.Equal(t, "sale", transaction.Type)
	assert.Equal(t, legacy.ID, transaction.OrderID)
	assert.Equal(t, ptr("braintree"), transaction.Processor)
	assert.Equal(t, ptr("bt12345"), transaction.ProcessorTransactionID)
	assert.Equal(t, &processorCreated, transaction.ProcessorCreatedAt)
	assert.Nil(t, transaction.ParentTransactionID)
	assert.Equal(t, map[string]any{"comment": "called in to confirm"}, transaction.Meta)
}

func TestConvertSaleUnknownCustomer(t *testing.T) {
	_, _, _, err := convertSale(LegacyTransaction{
		ID:    "sale-1",
		Email: "nobody@example.com",
	}, CustomerIndex{})

	require.Error(t, err)
}

func TestConvertTransfer(t *testing.T) {
	customers := CustomerIndex{"new.owner@example.com": "customer-uuid-2"}

	order, err := convertTransfer(LegacyTransaction{
		ID:                    "transfer-1",
		Email:                 "new.owner@example.com",
		OriginalTransactionID: ptr("original-order-1"),
	}, customers)
	require.NoError(t, err)

	assert.Nil(t, order.Amount, "transfers carry no money")
	assert.Equal(t, ptr("original-order-1"), order.ParentOrderID)
	assert.Equal(t, "complete", order.Status)
	assert.Equal(t, "customer-uuid-2", order.CustomerID)
}

func TestInferProcessor(t *testing.T) {
	tests := []struct {
		name          string
		legacy        LegacyTransaction
		wantProcessor *string
		wantTxID      *string
	}{
		{
			name:          "braintree",
			legacy:        LegacyTransaction{BraintreeTransactionID: ptr("bt1")},
			wantProcessor: ptr("braintree"),
			wantTxID:      ptr("bt1"),
		},
		{
			name:          "paypal",
			legacy:        LegacyTransaction{PaypalTransactionID: ptr("pp1")},
			wantProcessor: ptr("paypal"),
			wantTxID:      ptr("pp1"),
		},
		{
			name: "braintree wins when both present",
			legacy: LegacyTransaction{
				BraintreeTransactionID: ptr("bt1"),
				PaypalTransactionID:    ptr("pp1"),
			},
			wantProcessor: ptr("braintree"),
			wantTxID:      ptr("bt1"),
		},
		{
			name:          "comp has neither",
			legacy:        LegacyTransaction{},
			wantProcessor: nil,
			wantTxID:      nil,
		},
		{
			name:          "empty string counts as absent",
			legacy:        LegacyTransaction{BraintreeTransactionID: ptr("")},
			wantProcessor: nil,
			wantTxID:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor, txID := inferProcessor(tt.legacy)
			assert.Equal(t, tt.wantProcessor, processor)
			assert.Equal(t, tt.wantTxID, txID)
		})
	}
}

func TestGuestCreatedReason(t *testing.T) {
	tests := []struct {
		name      string
		createdBy string
		expected  *string
	}{
		{name: "purchase passes through", createdBy: "purchase", expected: ptr("purchase")},
		{name: "transfer passes through", createdBy: "transfer", expected: ptr("transfer")},
		{name: "known operator means comp", createdBy: "dustin.oreilly", expected: ptr("comp")},
		{name: "unknown creator is unattributable", createdBy: "mystery", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, guestCreatedReason(tt.createdBy, testUsers))
		})
	}
}

func TestConvertGuest(t *testing.T) {
	created := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)
	checkedIn := time.Date(2019, 6, 1, 21, 15, 0, 0, time.UTC)

	t.Run("checked in guest", func(t *testing.T) {
		guest := convertGuest(LegacyGuest{
			ID:        "guest-1",
			CheckedIn: &checkedIn,
			Created:   created,
			CreatedBy: "purchase",
			Status:    "active",
			VIP:       true,
			Notes:     "birthday table",
		}, testUsers, ptr("order-1"))

		assert.Equal(t, "checked_in", guest.Status)
		assert.Equal(t, &checkedIn, guest.CheckInTime)
		assert.Equal(t, "vip", guest.AdmissionTier)
		assert.Equal(t, ptr("order-1"), guest.OrderID)
		assert.Nil(t, guest.CreatedBy)
		assert.Equal(t, ptr("purchase"), guest.CreatedReason)
		assert.Equal(t, created, guest.Updated, "updated falls back to created")
		assert.Equal(t, map[string]any{"comment": "birthday table"}, guest.Meta)
	})

	t.Run("comped guest", func(t *testing.T) {
		guest := convertGuest(LegacyGuest{
			ID:        "guest-2",
			Created:   created,
			CreatedBy: "dustin.oreilly",
			Status:    "active",
		}, testUsers, nil)

		assert.Equal(t, "active", guest.Status)
		assert.Equal(t, "general", guest.AdmissionTier)
		assert.Nil(t, guest.OrderID)
		assert.Equal(t, ptr("5af08d90-6dac-434f-8dbe-c7aa76336eaa"), guest.CreatedBy)
		assert.Equal(t, ptr("comp"), guest.CreatedReason)
		assert.Empty(t, guest.Meta)
	})
}

func TestConvertTicket(t *testing.T) {
	created := time.Date(2019, 5, 20, 0, 0, 0, 0, time.UTC)

	t.Run("updated falls back to created", func(t *testing.T) {
		ticket := convertTicket(LegacyTicket{
			ID:      "ticket-1",
			Status:  "active",
			GuestID: "guest-1",
			Created: created,
		})

		assert.Equal(t, created, ticket.Updated)
	})

	t.Run("keeps its own updated", func(t *testing.T) {
		updated := created.Add(24 * time.Hour)
		ticket := convertTicket(LegacyTicket{
			ID:      "ticket-2",
			Status:  "consumed",
			GuestID: "guest-2",
			Created: created,
			Updated: &updated,
		})

		assert.Equal(t, updated, ticket.Updated)
	})
}

func TestFoldComment(t *testing.T) {
	assert.Equal(t, map[string]any{}, foldComment(""))
	assert.Equal(t, map[string]any{"comment": "see notes"}, foldComment("see notes"))
}
