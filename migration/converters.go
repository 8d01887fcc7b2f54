package migration

import (
	"time"

	"github.com/google/uuid"

	"github.com/mustachebash/v1-migration/database/models"
)

func convertUser(legacy LegacyUser, id string) *models.User {
	return &models.User{
		ID:          id,
		Username:    legacy.ID,
		SubClaim:    nil,
		DisplayName: legacy.DisplayName,
		Password:    nil,
		Role:        legacy.Role,
		// Everyone migrated will log in with google
		Authority: "google",
		Status:    "active",
		Meta:      map[string]any{},
	}
}

func convertEvent(legacy LegacyEvent) *models.Event {
	return &models.Event{
		ID:             legacy.ID,
		Date:           legacy.Date,
		Name:           legacy.Name,
		OpeningSales:   legacy.OpeningSales,
		SalesEnabled:   false,
		MaxCapacity:    legacy.MaxCapacity,
		AlcoholRevenue: legacy.AlcoholRevenue,
		Budget:         legacy.Budget,
		FoodRevenue:    legacy.FoodRevenue,
		Status:         legacy.Status,
		// Legacy events never tracked creation, so the last update stands
		// in for both timestamps
		Created:   legacy.Updated,
		Updated:   legacy.Updated,
		UpdatedBy: nil,
		Meta:      map[string]any{},
	}
}

func convertProduct(legacy LegacyProduct) *models.Product {
	return &models.Product{
		ID:          legacy.ID,
		Status:      legacy.Status,
		Type:        legacy.Type,
		Description: legacy.Description,
		Name:        legacy.Name,
		Price:       legacy.Price,
		Promo:       legacy.Promo,
		Created:     legacy.Created,
		// Defaulting to created for migration only
		Updated:       legacy.Created,
		UpdatedBy:     nil,
		Meta:          map[string]any{},
		EventID:       legacy.EventID,
		AdmissionTier: productAdmissionTier(legacy),
		MaxQuantity:   legacy.Quantity,
	}
}

// productAdmissionTier applies only to admission products. Non-ticket
// products carry no tier at all.
func productAdmissionTier(legacy LegacyProduct) *string {
	if legacy.Type != "ticket" {
		return nil
	}
	tier := "general"
	if legacy.VIP {
		tier = "vip"
	}
	return &tier
}

func convertPromo(legacy LegacyPromo, users UserMap) (*models.Promo, error) {
	createdBy, err := users.Resolve(legacy.CreatedBy)
	if err != nil {
		return nil, err
	}

	var updatedBy *string
	if legacy.UpdatedBy != nil {
		updatedBy = users.ResolveOptional(*legacy.UpdatedBy)
	}

	// Multi-use promos were never modeled distinctly in the legacy data
	promoType := legacy.Type
	if legacy.Quantity > 1 {
		promoType = "coupon"
	}

	return &models.Promo{
		ID:              legacy.ID,
		Created:         legacy.Created,
		Updated:         legacy.Updated,
		CreatedBy:       createdBy,
		UpdatedBy:       updatedBy,
		Price:           legacy.Price,
		PercentDiscount: nil,
		FlatDiscount:    nil,
		ProductID:       legacy.ProductID,
		RecipientName:   legacy.Recipient,
		Status:          legacy.Status,
		Type:            promoType,
		Meta:            map[string]any{},
	}, nil
}

// convertSale decomposes a legacy purchase transaction into the three rows
// it becomes: an order, its line items, and a payment ledger entry. The
// legacy transaction id is reused as the order id so that any external
// references to it stay valid.
func convertSale(legacy LegacyTransaction, customers CustomerIndex) (*models.Order, []*models.OrderItem, *models.Transaction, error) {
	customerID, err := customers.Resolve(legacy.Email)
	if err != nil {
		return nil, nil, nil, err
	}

	amount := legacy.Amount
	order := &models.Order{
		ID:         legacy.ID,
		Created:    legacy.Created,
		CustomerID: customerID,
		PromoID:    legacy.PromoID,
		Amount:     &amount,
		Status:     "complete",
		Meta:       map[string]any{},
	}

	items := make([]*models.OrderItem, 0, len(legacy.Order))
	for _, item := range legacy.Order {
		items = append(items, &models.OrderItem{
			OrderID:   legacy.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	processor, processorTransactionID := inferProcessor(legacy)

	transaction := &models.Transaction{
		ID:      uuid.NewString(),
		Created: legacy.Created,
		Amount:  legacy.Amount,
		// Refunds and voids come later
		Type:                   "sale",
		OrderID:                legacy.ID,
		ProcessorCreatedAt:     legacy.BraintreeCreatedAt,
		ProcessorTransactionID: processorTransactionID,
		Processor:              processor,
		// Unknowable during the initial import
		ParentTransactionID: nil,
		Meta:                foldComment(legacy.Comment),
	}

	return order, items, transaction, nil
}

// convertTransfer turns a legacy transfer transaction into an order pointing
// at the order it superseded. Transfers carry no money, so amount stays null.
func convertTransfer(legacy LegacyTransaction, customers CustomerIndex) (*models.Order, error) {
	customerID, err := customers.Resolve(legacy.Email)
	if err != nil {
		return nil, err
	}

	return &models.Order{
		ID:            legacy.ID,
		Created:       legacy.Created,
		CustomerID:    customerID,
		PromoID:       legacy.PromoID,
		Amount:        nil,
		ParentOrderID: legacy.OriginalTransactionID,
		Status:        "complete",
		Meta:          foldComment(legacy.Comment),
	}, nil
}

func convertGuest(legacy LegacyGuest, users UserMap, orderID *string) *models.Guest {
	status := legacy.Status
	if legacy.CheckedIn != nil {
		status = "checked_in"
	}

	tier := "general"
	if legacy.VIP {
		tier = "vip"
	}

	meta := map[string]any{}
	if legacy.Notes != "" {
		meta["comment"] = legacy.Notes
	}

	var updatedBy *string
	if legacy.UpdatedBy != nil {
		updatedBy = users.ResolveOptional(*legacy.UpdatedBy)
	}

	return &models.Guest{
		ID:            legacy.ID,
		CheckInTime:   legacy.CheckedIn,
		Created:       legacy.Created,
		CreatedBy:     users.ResolveOptional(legacy.CreatedBy),
		CreatedReason: guestCreatedReason(legacy.CreatedBy, users),
		EventID:       legacy.EventID,
		FirstName:     legacy.FirstName,
		LastName:      legacy.LastName,
		Status:        status,
		OrderID:       orderID,
		Updated:       orDefault(legacy.Updated, legacy.Created),
		UpdatedBy:     updatedBy,
		AdmissionTier: tier,
		Meta:          meta,
	}
}

// guestCreatedReason classifies how a guest came to exist: system-written
// markers pass through, a known operator means a comp, and anything else is
// unattributable.
func guestCreatedReason(createdBy string, users UserMap) *string {
	switch createdBy {
	case "purchase", "transfer":
		return &createdBy
	}
	if _, ok := users[createdBy]; ok {
		reason := "comp"
		return &reason
	}
	return nil
}

func convertTicket(legacy LegacyTicket) *models.Ticket {
	return &models.Ticket{
		ID:      legacy.ID,
		Status:  legacy.Status,
		GuestID: legacy.GuestID,
		Created: legacy.Created,
		Updated: orDefault(legacy.Updated, legacy.Created),
	}
}

// inferProcessor picks the payment processor from whichever processor id a
// legacy transaction carries, preferring braintree. Comps carry neither.
func inferProcessor(legacy LegacyTransaction) (processor, processorTransactionID *string) {
	if legacy.BraintreeTransactionID != nil && *legacy.BraintreeTransactionID != "" {
		name := "braintree"
		return &name, legacy.BraintreeTransactionID
	}
	if legacy.PaypalTransactionID != nil && *legacy.PaypalTransactionID != "" {
		name := "paypal"
		return &name, legacy.PaypalTransactionID
	}
	return nil, nil
}

// foldComment builds the meta blob for a record, carrying a legacy comment
// forward only when one was actually written.
func foldComment(comment string) map[string]any {
	meta := map[string]any{}
	if comment != "" {
		meta["comment"] = comment
	}
	return meta
}

func orDefault(t *time.Time, fallback time.Time) time.Time {
	if t != nil {
		return *t
	}
	return fallback
}
