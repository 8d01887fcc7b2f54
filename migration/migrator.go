package migration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mustachebash/v1-migration/database"
	"github.com/mustachebash/v1-migration/database/models"
	"github.com/mustachebash/v1-migration/logger"
)

// Migrator copies every legacy collection into the normalized target
// schema. Stages run in dependency order and each failure is contained to
// its own stage so one bad collection doesn't abort the whole run.
type Migrator struct {
	db     *database.DB
	source *mongo.Database
	users  UserMap
}

func New(db *database.DB, source *mongo.Database, users UserMap) *Migrator {
	return &Migrator{
		db:     db,
		source: source,
		users:  users,
	}
}

type stage struct {
	name string
	run  func(ctx context.Context) (int, error)
}

// Run executes every stage in order and reports per-stage outcomes. It
// never stops early: downstream stages of a failed one will fail their own
// lookups and be recorded as failed themselves.
func (m *Migrator) Run(ctx context.Context) *RunStats {
	stages := []stage{
		{name: "users", run: m.migrateUsers},
		{name: "events", run: m.migrateEvents},
		{name: "customers", run: m.migrateCustomers},
		{name: "products", run: m.migrateProducts},
		{name: "promos", run: m.migratePromos},
		{name: "orders", run: m.migrateOrders},
		{name: "transfers", run: m.migrateTransfers},
		{name: "guests", run: m.migrateGuests},
		{name: "tickets", run: m.migrateTickets},
	}

	stats := &RunStats{Started: time.Now()}
	runStages(ctx, stages, stats)
	stats.Finished = time.Now()
	return stats
}

func runStages(ctx context.Context, stages []stage, stats *RunStats) {
	for _, st := range stages {
		start := time.Now()
		rows, err := st.run(ctx)
		stats.record(st.name, rows, start, err)
		logger.LogStage(st.name, time.Since(start), err)
	}
}

func (m *Migrator) migrateUsers(ctx context.Context) (int, error) {
	legacyUsers, err := fetchAll[LegacyUser](ctx, m.source.Collection("users"), bson.M{})
	if err != nil {
		return 0, err
	}

	users := make([]*models.User, 0, len(legacyUsers))
	for _, legacy := range legacyUsers {
		// only insert manually mapped ids
		id, ok := m.users[legacy.ID]
		if !ok {
			continue
		}
		users = append(users, convertUser(legacy, id))
	}

	return insertChunked(ctx, m.db.BunDB(), "users", users)
}

func (m *Migrator) migrateEvents(ctx context.Context) (int, error) {
	legacyEvents, err := fetchAll[LegacyEvent](ctx, m.source.Collection("events"), bson.M{})
	if err != nil {
		return 0, err
	}

	events := make([]*models.Event, 0, len(legacyEvents))
	for _, legacy := range legacyEvents {
		events = append(events, convertEvent(legacy))
	}

	return insertChunked(ctx, m.db.BunDB(), "events", events)
}

// customerGroup is the shape of one aggregation bucket: the earliest
// transaction recorded against a normalized email.
type customerGroup struct {
	Email     string    `bson:"_id"`
	FirstName string    `bson:"firstName"`
	LastName  string    `bson:"lastName"`
	Created   time.Time `bson:"created"`
}

// migrateCustomers derives the customers table from purchase history. The
// legacy store never had a customer record: every identity is the earliest
// transaction seen for a given email, matched case-insensitively.
func (m *Migrator) migrateCustomers(ctx context.Context) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$toLower", Value: "$email"}}},
			{Key: "firstName", Value: bson.D{{Key: "$first", Value: "$firstName"}}},
			{Key: "lastName", Value: bson.D{{Key: "$first", Value: "$lastName"}}},
			{Key: "created", Value: bson.D{{Key: "$first", Value: "$created"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created", Value: 1}}}},
	}

	cursor, err := m.source.Collection("transactions").Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []customerGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return 0, fmt.Errorf("failed to decode customer groups: %w", err)
	}

	customers := make([]*models.Customer, 0, len(groups))
	for _, group := range groups {
		created := group.Created
		customers = append(customers, &models.Customer{
			ID:        uuid.NewString(),
			Email:     NormalizeEmail(group.Email),
			FirstName: strings.TrimSpace(group.FirstName),
			LastName:  strings.TrimSpace(group.LastName),
			Created:   created,
			Updated:   created,
			Meta:      map[string]any{},
		})
	}

	// Trimming can collapse two buckets into one email; the earliest wins
	return insertChunked(ctx, m.db.BunDB(), "customers", dedupeCustomers(customers))
}

func dedupeCustomers(customers []*models.Customer) []*models.Customer {
	seen := make(map[string]struct{}, len(customers))
	unique := make([]*models.Customer, 0, len(customers))
	for _, customer := range customers {
		if _, ok := seen[customer.Email]; ok {
			continue
		}
		seen[customer.Email] = struct{}{}
		unique = append(unique, customer)
	}
	return unique
}

// loadCustomerIndex reads back the committed customers table. Stages that
// resolve emails always read the committed rows rather than trusting any
// in-memory view of the customer stage.
func (m *Migrator) loadCustomerIndex(ctx context.Context) (CustomerIndex, error) {
	rows, err := m.db.QueryWithLog(ctx, "SELECT email, id FROM customers")
	if err != nil {
		return nil, fmt.Errorf("failed to load customer index: %w", err)
	}
	defer rows.Close()

	index := make(CustomerIndex)
	for rows.Next() {
		var email, id string
		if err := rows.Scan(&email, &id); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		index[email] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customer rows: %w", err)
	}

	return index, nil
}

func (m *Migrator) migrateProducts(ctx context.Context) (int, error) {
	legacyProducts, err := fetchAll[LegacyProduct](ctx, m.source.Collection("products"), bson.M{})
	if err != nil {
		return 0, err
	}

	products := make([]*models.Product, 0, len(legacyProducts))
	for _, legacy := range legacyProducts {
		products = append(products, convertProduct(legacy))
	}

	return insertChunked(ctx, m.db.BunDB(), "products", products)
}

func (m *Migrator) migratePromos(ctx context.Context) (int, error) {
	legacyPromos, err := fetchAll[LegacyPromo](ctx, m.source.Collection("promos"), bson.M{})
	if err != nil {
		return 0, err
	}

	promos := make([]*models.Promo, 0, len(legacyPromos))
	for _, legacy := range legacyPromos {
		promo, err := convertPromo(legacy, m.users)
		if err != nil {
			return 0, fmt.Errorf("failed to convert promo %s: %w", legacy.ID, err)
		}
		promos = append(promos, promo)
	}

	return insertChunked(ctx, m.db.BunDB(), "promos", promos)
}

// migrateOrders handles every purchase transaction: each becomes an order,
// its line items, and a sale ledger entry, inserted in that order to honor
// foreign keys.
func (m *Migrator) migrateOrders(ctx context.Context) (int, error) {
	customers, err := m.loadCustomerIndex(ctx)
	if err != nil {
		return 0, err
	}

	sales, err := fetchAll[LegacyTransaction](ctx, m.source.Collection("transactions"),
		bson.M{"originalTransactionId": bson.M{"$exists": false}},
		options.Find().SetSort(bson.D{{Key: "created", Value: 1}}),
	)
	if err != nil {
		return 0, err
	}

	var (
		orders       []*models.Order
		orderItems   []*models.OrderItem
		transactions []*models.Transaction
	)
	for _, legacy := range sales {
		order, items, transaction, err := convertSale(legacy, customers)
		if err != nil {
			return 0, fmt.Errorf("failed to convert sale %s: %w", legacy.ID, err)
		}
		orders = append(orders, order)
		orderItems = append(orderItems, items...)
		transactions = append(transactions, transaction)
	}

	inserted, err := insertChunked(ctx, m.db.BunDB(), "orders", orders)
	if err != nil {
		return inserted, err
	}

	n, err := insertChunked(ctx, m.db.BunDB(), "order_items", orderItems)
	inserted += n
	if err != nil {
		return inserted, err
	}

	n, err = insertChunked(ctx, m.db.BunDB(), "transactions", transactions)
	inserted += n
	return inserted, err
}

// migrateTransfers inserts transfer orders and then flips every superseded
// order to transferred in one statement.
func (m *Migrator) migrateTransfers(ctx context.Context) (int, error) {
	customers, err := m.loadCustomerIndex(ctx)
	if err != nil {
		return 0, err
	}

	legacyTransfers, err := fetchAll[LegacyTransaction](ctx, m.source.Collection("transactions"),
		bson.M{"originalTransactionId": bson.M{"$exists": true}},
		options.Find().SetSort(bson.D{{Key: "created", Value: 1}}),
	)
	if err != nil {
		return 0, err
	}

	transfers := make([]*models.Order, 0, len(legacyTransfers))
	parentIDs := make([]string, 0, len(legacyTransfers))
	for _, legacy := range legacyTransfers {
		transfer, err := convertTransfer(legacy, customers)
		if err != nil {
			return 0, fmt.Errorf("failed to convert transfer %s: %w", legacy.ID, err)
		}
		transfers = append(transfers, transfer)
		if transfer.ParentOrderID != nil {
			parentIDs = append(parentIDs, *transfer.ParentOrderID)
		}
	}

	inserted, err := insertChunked(ctx, m.db.BunDB(), "orders", transfers)
	if err != nil {
		return inserted, err
	}

	if len(parentIDs) > 0 {
		if _, err := m.db.BunDB().NewUpdate().
			Model((*models.Order)(nil)).
			Set("status = ?", "transferred").
			Where("id IN (?)", bun.In(parentIDs)).
			Exec(ctx); err != nil {
			return inserted, fmt.Errorf("failed to mark parent orders transferred: %w", err)
		}
	}

	return inserted, nil
}

// legacyTransactionKeys is the slim projection used to match guests'
// processor transaction ids back to the orders they created.
type legacyTransactionKeys struct {
	ID                     string  `bson:"id"`
	BraintreeTransactionID *string `bson:"braintreeTransactionId"`
	PaypalTransactionID    *string `bson:"paypalTransactionId"`
}

// migrateGuests links every guest to its order. Older guests reference a
// processor's transaction id instead of an order id and have to be joined
// through the transactions collection; guests whose processor id matches
// nothing are skipped with a warning.
func (m *Migrator) migrateGuests(ctx context.Context) (int, error) {
	transactions, err := fetchAll[legacyTransactionKeys](ctx, m.source.Collection("transactions"), bson.M{},
		options.Find().SetProjection(bson.M{
			"id":                     1,
			"braintreeTransactionId": 1,
			"paypalTransactionId":    1,
		}),
	)
	if err != nil {
		return 0, err
	}

	processorIndex := make(map[string]string, len(transactions))
	for _, t := range transactions {
		if t.BraintreeTransactionID != nil && *t.BraintreeTransactionID != "" {
			processorIndex[*t.BraintreeTransactionID] = t.ID
		}
		if t.PaypalTransactionID != nil && *t.PaypalTransactionID != "" {
			processorIndex[*t.PaypalTransactionID] = t.ID
		}
	}

	legacyGuests, err := fetchAll[LegacyGuest](ctx, m.source.Collection("guests"), bson.M{})
	if err != nil {
		return 0, err
	}

	guests := make([]*models.Guest, 0, len(legacyGuests))
	var skipped int
	for _, legacy := range legacyGuests {
		orderID, ok := resolveGuestOrder(legacy.TransactionID, processorIndex)
		if !ok {
			skipped++
			slog.Warn("skipping guest with unmatched transaction",
				slog.String("type", "mig"),
				slog.String("stage", "guests"),
				slog.String("guest_id", legacy.ID),
				slog.String("transaction_id", legacy.TransactionID),
			)
			continue
		}
		guests = append(guests, convertGuest(legacy, m.users, orderID))
	}

	if skipped > 0 {
		slog.Warn("guests skipped",
			slog.String("type", "mig"),
			slog.String("stage", "guests"),
			slog.Int("count", skipped),
		)
	}

	return insertChunked(ctx, m.db.BunDB(), "guests", guests)
}

// resolveGuestOrder maps a legacy guest's transaction reference to an order
// id. Comps have no order, uuids already are order ids, and anything else
// is a processor transaction id to look up.
func resolveGuestOrder(transactionID string, processorIndex map[string]string) (*string, bool) {
	if transactionID == "COMPED" {
		return nil, true
	}
	if strings.Contains(transactionID, "-") {
		return &transactionID, true
	}
	if orderID, ok := processorIndex[transactionID]; ok {
		return &orderID, true
	}
	return nil, false
}

func (m *Migrator) migrateTickets(ctx context.Context) (int, error) {
	legacyTickets, err := fetchAll[LegacyTicket](ctx, m.source.Collection("tickets"), bson.M{})
	if err != nil {
		return 0, err
	}

	tickets := make([]*models.Ticket, 0, len(legacyTickets))
	for _, legacy := range legacyTickets {
		tickets = append(tickets, convertTicket(legacy))
	}

	return insertChunked(ctx, m.db.BunDB(), "tickets", tickets)
}

func fetchAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}
