package migration

import "time"

// Legacy document shapes as stored in the source database. Fields the
// migration drops on purpose (transfereeId, status on transactions) are
// omitted entirely.

type LegacyUser struct {
	ID          string `bson:"id"`
	DisplayName string `bson:"displayName"`
	Role        string `bson:"role"`
}

type LegacyEvent struct {
	ID             string     `bson:"id"`
	Date           time.Time  `bson:"date"`
	Name           string     `bson:"name"`
	OpeningSales   *time.Time `bson:"openingSales"`
	MaxCapacity    *int       `bson:"maxCapacity"`
	AlcoholRevenue *float64   `bson:"alcoholRevenue"`
	Budget         *float64   `bson:"budget"`
	FoodRevenue    *float64   `bson:"foodRevenue"`
	Status         string     `bson:"status"`
	Updated        *time.Time `bson:"updated"`
}

type LegacyOrderItem struct {
	ProductID string `bson:"productId"`
	Quantity  int    `bson:"quantity"`
}

type LegacyTransaction struct {
	ID                     string            `bson:"id"`
	Amount                 float64           `bson:"amount"`
	Created                time.Time         `bson:"created"`
	Updated                *time.Time        `bson:"updated"`
	Type                   string            `bson:"type"`
	Order                  []LegacyOrderItem `bson:"order"`
	Email                  string            `bson:"email"`
	FirstName              string            `bson:"firstName"`
	LastName               string            `bson:"lastName"`
	Comment                string            `bson:"comment"`
	PromoID                *string           `bson:"promoId"`
	BraintreeTransactionID *string           `bson:"braintreeTransactionId"`
	BraintreeCreatedAt     *time.Time        `bson:"braintreeCreatedAt"`
	PaypalTransactionID    *string           `bson:"paypalTransactionId"`
	OriginalTransactionID  *string           `bson:"originalTransactionId"`
}

type LegacyProduct struct {
	ID          string    `bson:"id"`
	Status      string    `bson:"status"`
	Type        string    `bson:"type"`
	Description string    `bson:"description"`
	Name        string    `bson:"name"`
	Price       float64   `bson:"price"`
	Promo       bool      `bson:"promo"`
	Created     time.Time `bson:"created"`
	EventID     *string   `bson:"eventId"`
	VIP         bool      `bson:"vip"`
	Quantity    *int      `bson:"quantity"`
}

type LegacyPromo struct {
	ID        string    `bson:"id"`
	Created   time.Time `bson:"created"`
	Updated   time.Time `bson:"updated"`
	CreatedBy string    `bson:"createdBy"`
	UpdatedBy *string   `bson:"updatedBy"`
	Price     *float64  `bson:"price"`
	ProductID string    `bson:"productId"`
	Recipient *string   `bson:"recipient"`
	Status    string    `bson:"status"`
	Type      string    `bson:"type"`
	Quantity  int       `bson:"quantity"`
}

type LegacyGuest struct {
	ID            string     `bson:"id"`
	CheckedIn     *time.Time `bson:"checkedIn"`
	Created       time.Time  `bson:"created"`
	CreatedBy     string     `bson:"createdBy"`
	EventID       string     `bson:"eventId"`
	FirstName     string     `bson:"firstName"`
	LastName      string     `bson:"lastName"`
	Status        string     `bson:"status"`
	TransactionID string     `bson:"transactionId"`
	Updated       *time.Time `bson:"updated"`
	UpdatedBy     *string    `bson:"updatedBy"`
	VIP           bool       `bson:"vip"`
	Notes         string     `bson:"notes"`
}

type LegacyTicket struct {
	ID      string     `bson:"id"`
	Status  string     `bson:"status"`
	GuestID string     `bson:"guestId"`
	Created time.Time  `bson:"created"`
	Updated *time.Time `bson:"updated"`
}
