// Package memstore is an in-memory backend implementing the same transaction
// and repository contracts as the postgres layer. It exists for fast tests;
// its Within serializes transactions on one mutex and restores a snapshot on
// error, so the all-or-nothing guarantees hold without a database.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pos-backoffice/internal/domain/coupon"
	"pos-backoffice/internal/domain/customer"
	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/domain/pricing"
	"pos-backoffice/internal/domain/rental"
	"pos-backoffice/internal/domain/sale"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/usecase/queries"
	"pos-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type itemRow struct {
	id          int64
	name        string
	price       decimal.Decimal
	stockSale   int
	stockRental int
	itemType    item.Type
}

type saleRow struct {
	id          uuid.UUID
	lines       []sale.Line
	couponID    *uuid.UUID
	retained    decimal.Decimal
	breakdown   pricing.Breakdown
	employeeID  *uuid.UUID
	finalized   bool
	createdAt   time.Time
	finalizedAt *time.Time
}

type rentalRow struct {
	id         uuid.UUID
	customerID uuid.UUID
	itemID     int64
	quantity   int
	unitPrice  decimal.Decimal
	rentalDate time.Time
	dueDate    time.Time
	returnDate *time.Time
	returned   bool
	lateFee    decimal.Decimal
	createdAt  time.Time
}

type customerRow struct {
	id        uuid.UUID
	phone     string
	createdAt time.Time
}

type couponRow struct {
	id      uuid.UUID
	code    string
	percent decimal.Decimal
	active  bool
}

type returnRow struct {
	id           uuid.UUID
	refundTotal  decimal.Decimal
	lateFeeTotal decimal.Decimal
	employeeID   *uuid.UUID
	items        []rental.ReturnItem
	createdAt    time.Time
}

type activityRow struct {
	employeeID uuid.UUID
	action     string
	createdAt  time.Time
}

// Store holds every table in process memory behind one mutex.
type Store struct {
	mu       sync.Mutex
	settings shared.EngineSettings

	items     map[int64]itemRow
	sales     map[uuid.UUID]saleRow
	rentals   map[uuid.UUID]rentalRow
	customers map[uuid.UUID]customerRow
	coupons   map[uuid.UUID]couponRow
	returns   map[uuid.UUID]returnRow
	activity  []activityRow
}

func New(settings shared.EngineSettings) *Store {
	return &Store{
		settings:  settings,
		items:     make(map[int64]itemRow),
		sales:     make(map[uuid.UUID]saleRow),
		rentals:   make(map[uuid.UUID]rentalRow),
		customers: make(map[uuid.UUID]customerRow),
		coupons:   make(map[uuid.UUID]couponRow),
		returns:   make(map[uuid.UUID]returnRow),
	}
}

// Within runs fn under the store mutex. A snapshot taken before fn is
// restored when fn fails, so partial writes never become visible.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx, &memTx{store: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	items     map[int64]itemRow
	sales     map[uuid.UUID]saleRow
	rentals   map[uuid.UUID]rentalRow
	customers map[uuid.UUID]customerRow
	coupons   map[uuid.UUID]couponRow
	returns   map[uuid.UUID]returnRow
}

func (s *Store) snapshot() storeSnapshot {
	snap := storeSnapshot{
		items:     make(map[int64]itemRow, len(s.items)),
		sales:     make(map[uuid.UUID]saleRow, len(s.sales)),
		rentals:   make(map[uuid.UUID]rentalRow, len(s.rentals)),
		customers: make(map[uuid.UUID]customerRow, len(s.customers)),
		coupons:   make(map[uuid.UUID]couponRow, len(s.coupons)),
		returns:   make(map[uuid.UUID]returnRow, len(s.returns)),
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	for k, v := range s.sales {
		v.lines = append([]sale.Line(nil), v.lines...)
		snap.sales[k] = v
	}
	for k, v := range s.rentals {
		snap.rentals[k] = v
	}
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.coupons {
		snap.coupons[k] = v
	}
	for k, v := range s.returns {
		v.items = append([]rental.ReturnItem(nil), v.items...)
		snap.returns[k] = v
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.items = snap.items
	s.sales = snap.sales
	s.rentals = snap.rentals
	s.customers = snap.customers
	s.coupons = snap.coupons
	s.returns = snap.returns
}

// Log implements shared.ActivityLogger.
func (s *Store) Log(_ context.Context, employeeID uuid.UUID, action string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = append(s.activity, activityRow{employeeID: employeeID, action: action, createdAt: time.Now()})
}

// ActivityActions returns the recorded action names in order.
func (s *Store) ActivityActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]string, len(s.activity))
	for i, a := range s.activity {
		actions[i] = a.action
	}
	return actions
}

// SeedItem loads an item directly, bypassing the transactional path.
func (s *Store) SeedItem(it *item.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID()] = itemRowFromDomain(it)
}

func (s *Store) SeedCoupon(c *coupon.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons[c.ID()] = couponRow{
		id:      c.ID(),
		code:    c.Code().String(),
		percent: c.Discount().Value(),
		active:  c.Active(),
	}
}

// StockOf reads a pool counter for assertions.
func (s *Store) StockOf(itemID int64, pool item.Pool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.items[itemID]
	if !ok {
		return 0
	}
	if pool == item.PoolRental {
		return row.stockRental
	}
	return row.stockSale
}

func itemRowFromDomain(it *item.Item) itemRow {
	return itemRow{
		id:          it.ID(),
		name:        it.Name(),
		price:       it.Price(),
		stockSale:   it.StockSale(),
		stockRental: it.StockRental(),
		itemType:    it.ItemType(),
	}
}

func (r itemRow) toDomain() *item.Item {
	return item.Reconstruct(r.id, r.name, r.price, r.stockSale, r.stockRental, r.itemType)
}

// memTx exposes repositories bound to the store. The surrounding Within call
// already holds the mutex, so repository methods touch the maps directly.
type memTx struct {
	store *Store
}

func (t *memTx) Items() shared.ItemRepository         { return &memItems{t.store} }
func (t *memTx) Ledger() shared.InventoryLedger       { return &memLedger{t.store} }
func (t *memTx) Sales() shared.SaleRepository         { return &memSales{t.store} }
func (t *memTx) Rentals() shared.RentalRepository     { return &memRentals{t.store} }
func (t *memTx) Customers() shared.CustomerRepository { return &memCustomers{t.store} }
func (t *memTx) Coupons() shared.CouponRepository     { return &memCoupons{t.store} }
func (t *memTx) Returns() shared.ReturnRepository     { return &memReturns{t.store} }

type memItems struct{ store *Store }

func (r *memItems) Create(_ context.Context, it *item.Item) error {
	if _, ok := r.store.items[it.ID()]; ok {
		return infra.WrapRepoErr("item already exists", nil, infra.KindDuplicateKey)
	}
	r.store.items[it.ID()] = itemRowFromDomain(it)
	return nil
}

func (r *memItems) FindByID(_ context.Context, id int64) (*item.Item, error) {
	row, ok := r.store.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return row.toDomain(), nil
}

func (r *memItems) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.items[id]; !ok {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	delete(r.store.items, id)
	return nil
}

type memLedger struct{ store *Store }

func (l *memLedger) Reserve(_ context.Context, itemID int64, pool item.Pool, quantity int) error {
	return l.reserve(itemID, pool, quantity)
}

func (l *memLedger) reserve(itemID int64, pool item.Pool, quantity int) error {
	row, ok := l.store.items[itemID]
	if !ok {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	stock := row.stockSale
	if pool == item.PoolRental {
		stock = row.stockRental
	}
	if stock < quantity {
		return infra.WrapRepoErr(
			"insufficient stock",
			&item.InsufficientStockError{ItemID: itemID, Pool: pool},
			infra.KindInsufficientStock,
		)
	}
	if pool == item.PoolRental {
		row.stockRental -= quantity
	} else {
		row.stockSale -= quantity
	}
	l.store.items[itemID] = row
	return nil
}

func (l *memLedger) Release(_ context.Context, itemID int64, pool item.Pool, quantity int) error {
	row, ok := l.store.items[itemID]
	if !ok {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	if pool == item.PoolRental {
		row.stockRental += quantity
	} else {
		row.stockSale += quantity
	}
	l.store.items[itemID] = row
	return nil
}

// ReserveMany rolls back its own partial reservations on failure instead of
// leaning on the transaction snapshot, keeping the ledger contract
// self-contained.
func (l *memLedger) ReserveMany(ctx context.Context, entries []shared.ReservationEntry) error {
	sorted := append([]shared.ReservationEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ItemID < sorted[j].ItemID })

	for i, e := range sorted {
		if err := l.reserve(e.ItemID, e.Pool, e.Quantity); err != nil {
			for _, done := range sorted[:i] {
				_ = l.Release(ctx, done.ItemID, done.Pool, done.Quantity)
			}
			return err
		}
	}
	return nil
}

type memSales struct{ store *Store }

func (r *memSales) Create(_ context.Context, s *sale.Sale) error {
	if _, ok := r.store.sales[s.ID()]; ok {
		return infra.WrapRepoErr("sale already exists", nil, infra.KindDuplicateKey)
	}
	r.store.sales[s.ID()] = saleRowFromDomain(s)
	return nil
}

func (r *memSales) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*sale.Sale, error) {
	row, ok := r.store.sales[id]
	if !ok {
		return nil, infra.WrapRepoErr("sale not found", nil, infra.KindNotFound)
	}
	return sale.Reconstruct(
		row.id,
		append([]sale.Line(nil), row.lines...),
		row.couponID,
		row.retained,
		r.store.settings.TaxMultiplier,
		row.breakdown,
		row.employeeID,
		row.finalized,
		row.createdAt,
		row.finalizedAt,
	), nil
}

func (r *memSales) Save(_ context.Context, s *sale.Sale) error {
	if _, ok := r.store.sales[s.ID()]; !ok {
		return infra.WrapRepoErr("sale not found", nil, infra.KindNotFound)
	}
	r.store.sales[s.ID()] = saleRowFromDomain(s)
	return nil
}

func saleRowFromDomain(s *sale.Sale) saleRow {
	return saleRow{
		id:          s.ID(),
		lines:       append([]sale.Line(nil), s.Lines()...),
		couponID:    s.CouponID(),
		retained:    s.RetainedFraction(),
		breakdown:   s.Breakdown(),
		employeeID:  s.EmployeeID(),
		finalized:   s.Finalized(),
		createdAt:   s.CreatedAt(),
		finalizedAt: s.FinalizedAt(),
	}
}

type memRentals struct{ store *Store }

func (r *memRentals) Create(_ context.Context, rent *rental.Rental) error {
	if _, ok := r.store.rentals[rent.ID()]; ok {
		return infra.WrapRepoErr("rental already exists", nil, infra.KindDuplicateKey)
	}
	r.store.rentals[rent.ID()] = rentalRowFromDomain(rent)
	return nil
}

func (r *memRentals) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*rental.Rental, error) {
	row, ok := r.store.rentals[id]
	if !ok {
		return nil, infra.WrapRepoErr("rental not found", nil, infra.KindNotFound)
	}
	return row.toDomain(), nil
}

func (r *memRentals) Save(_ context.Context, rent *rental.Rental) error {
	if _, ok := r.store.rentals[rent.ID()]; !ok {
		return infra.WrapRepoErr("rental not found", nil, infra.KindNotFound)
	}
	r.store.rentals[rent.ID()] = rentalRowFromDomain(rent)
	return nil
}

func rentalRowFromDomain(r *rental.Rental) rentalRow {
	return rentalRow{
		id:         r.ID(),
		customerID: r.CustomerID(),
		itemID:     r.ItemID(),
		quantity:   r.Quantity(),
		unitPrice:  r.UnitPrice(),
		rentalDate: r.RentalDate(),
		dueDate:    r.DueDate(),
		returnDate: r.ReturnDate(),
		returned:   r.IsReturned(),
		lateFee:    r.LateFee(),
		createdAt:  r.CreatedAt(),
	}
}

func (r rentalRow) toDomain() *rental.Rental {
	return rental.Reconstruct(
		r.id, r.customerID,
		r.itemID,
		r.quantity,
		r.unitPrice,
		r.rentalDate, r.dueDate,
		r.returnDate,
		r.returned,
		r.lateFee,
		r.createdAt,
	)
}

type memCustomers struct{ store *Store }

func (r *memCustomers) GetOrCreateByPhone(_ context.Context, phone customer.PhoneNumber, now time.Time) (*customer.Customer, error) {
	for _, row := range r.store.customers {
		if row.phone == phone.String() {
			return customer.Reconstruct(row.id, phone, row.createdAt), nil
		}
	}
	created := customer.NewCustomer(phone, now)
	r.store.customers[created.ID()] = customerRow{
		id:        created.ID(),
		phone:     created.PhoneNumber().String(),
		createdAt: created.CreatedAt(),
	}
	return created, nil
}

func (r *memCustomers) FindByID(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	row, ok := r.store.customers[id]
	if !ok {
		return nil, infra.WrapRepoErr("customer not found", nil, infra.KindNotFound)
	}
	phone, err := customer.NewPhoneNumber(row.phone)
	if err != nil {
		return nil, infra.WrapRepoErr("stored phone number is malformed", err)
	}
	return customer.Reconstruct(row.id, phone, row.createdAt), nil
}

type memCoupons struct{ store *Store }

func (r *memCoupons) FindByCode(_ context.Context, code string) (*coupon.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, row := range r.store.coupons {
		if row.code == normalized {
			c, err := coupon.NewCoupon(row.id, row.code, row.percent, row.active)
			if err != nil {
				return nil, infra.WrapRepoErr("stored coupon is malformed", err)
			}
			return c, nil
		}
	}
	return nil, infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
}

type memReturns struct{ store *Store }

func (r *memReturns) Create(_ context.Context, tx *rental.ReturnTransaction) error {
	r.store.returns[tx.ID()] = returnRow{
		id:           tx.ID(),
		refundTotal:  tx.RefundTotal(),
		lateFeeTotal: tx.LateFeeTotal(),
		employeeID:   tx.EmployeeID(),
		items:        append([]rental.ReturnItem(nil), tx.Items()...),
		createdAt:    tx.CreatedAt(),
	}
	return nil
}

// ItemReads exposes the store as a read model for item queries.
func (s *Store) ItemReads() queries.ItemReadStore { return &itemReads{s} }

// SaleReads exposes the store as a read model for sale queries.
func (s *Store) SaleReads() queries.SaleReadStore { return &saleReads{s} }

// RentalReads exposes the store as a read model for rental queries.
func (s *Store) RentalReads() queries.RentalReadStore { return &rentalReads{s} }

// CustomerReads exposes the store as a read model for customer queries.
func (s *Store) CustomerReads() queries.CustomerReadStore { return &customerReads{s} }

type itemReads struct{ store *Store }

func (r *itemReads) FindByID(_ context.Context, id int64) (*queries.ItemView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	v := itemViewFromRow(row)
	return &v, nil
}

func (r *itemReads) List(_ context.Context) ([]queries.ItemView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(itemRow) bool { return true }), nil
}

func (r *itemReads) Search(_ context.Context, name string) ([]queries.ItemView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	needle := strings.ToLower(name)
	return r.collect(func(row itemRow) bool {
		return strings.Contains(strings.ToLower(row.name), needle)
	}), nil
}

func (r *itemReads) ListAvailable(_ context.Context, pool item.Pool) ([]queries.ItemView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(row itemRow) bool {
		it := row.toDomain()
		return it.SupportsPool(pool) && it.StockFor(pool) > 0
	}), nil
}

func (r *itemReads) ListLowStock(_ context.Context, threshold int) ([]queries.ItemView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(row itemRow) bool {
		return row.toDomain().LowStock(threshold)
	}), nil
}

func (r *itemReads) collect(keep func(itemRow) bool) []queries.ItemView {
	views := make([]queries.ItemView, 0, len(r.store.items))
	for _, row := range r.store.items {
		if keep(row) {
			views = append(views, itemViewFromRow(row))
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

func itemViewFromRow(row itemRow) queries.ItemView {
	return queries.ItemView{
		ID:          row.id,
		Name:        row.name,
		Price:       row.price,
		StockSale:   row.stockSale,
		StockRental: row.stockRental,
		ItemType:    string(row.itemType),
	}
}

type saleReads struct{ store *Store }

func (r *saleReads) FindByID(_ context.Context, id uuid.UUID) (*queries.SaleView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.sales[id]
	if !ok {
		return nil, infra.WrapRepoErr("sale not found", nil, infra.KindNotFound)
	}
	v := saleViewFromRow(row)
	return &v, nil
}

func (r *saleReads) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]queries.SaleView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(row saleRow) bool {
		return row.employeeID != nil && *row.employeeID == employeeID
	}), nil
}

func (r *saleReads) ListByDateRange(_ context.Context, from, to time.Time) ([]queries.SaleView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(row saleRow) bool {
		return !row.createdAt.Before(from) && row.createdAt.Before(to)
	}), nil
}

func (r *saleReads) collect(keep func(saleRow) bool) []queries.SaleView {
	views := make([]queries.SaleView, 0, len(r.store.sales))
	for _, row := range r.store.sales {
		if keep(row) {
			views = append(views, saleViewFromRow(row))
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.Before(views[j].CreatedAt) })
	return views
}

func saleViewFromRow(row saleRow) queries.SaleView {
	lines := make([]queries.SaleLineView, len(row.lines))
	for i, line := range row.lines {
		lines[i] = queries.SaleLineView{
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		}
	}
	return queries.SaleView{
		ID:             row.id,
		Lines:          lines,
		CouponID:       row.couponID,
		Subtotal:       row.breakdown.Subtotal,
		DiscountAmount: row.breakdown.DiscountAmount,
		TaxAmount:      row.breakdown.TaxAmount,
		Total:          row.breakdown.Total,
		EmployeeID:     row.employeeID,
		Finalized:      row.finalized,
		CreatedAt:      row.createdAt,
		FinalizedAt:    row.finalizedAt,
	}
}

type rentalReads struct{ store *Store }

func (r *rentalReads) FindByID(_ context.Context, id uuid.UUID) (*queries.RentalView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.rentals[id]
	if !ok {
		return nil, infra.WrapRepoErr("rental not found", nil, infra.KindNotFound)
	}
	v := r.view(row)
	return &v, nil
}

func (r *rentalReads) ListOutstandingByPhone(_ context.Context, phone string) ([]queries.RentalView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(row rentalRow) bool {
		return !row.returned && r.phoneOf(row.customerID) == phone
	}), nil
}

func (r *rentalReads) ListByPhone(_ context.Context, phone string) ([]queries.RentalView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(row rentalRow) bool {
		return r.phoneOf(row.customerID) == phone
	}), nil
}

func (r *rentalReads) ListOverdue(_ context.Context, today time.Time) ([]queries.RentalView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(row rentalRow) bool {
		return row.toDomain().IsOverdue(today)
	}), nil
}

func (r *rentalReads) collect(keep func(rentalRow) bool) []queries.RentalView {
	views := make([]queries.RentalView, 0, len(r.store.rentals))
	for _, row := range r.store.rentals {
		if keep(row) {
			views = append(views, r.view(row))
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].RentalDate.Before(views[j].RentalDate) })
	return views
}

func (r *rentalReads) phoneOf(customerID uuid.UUID) string {
	if row, ok := r.store.customers[customerID]; ok {
		return row.phone
	}
	return ""
}

func (r *rentalReads) view(row rentalRow) queries.RentalView {
	itemName := ""
	if it, ok := r.store.items[row.itemID]; ok {
		itemName = it.name
	}
	return queries.RentalView{
		ID:            row.id,
		CustomerPhone: r.phoneOf(row.customerID),
		ItemID:        row.itemID,
		ItemName:      itemName,
		Quantity:      row.quantity,
		UnitPrice:     row.unitPrice,
		RentalDate:    row.rentalDate,
		DueDate:       row.dueDate,
		ReturnDate:    row.returnDate,
		IsReturned:    row.returned,
		LateFee:       row.lateFee,
	}
}

type customerReads struct{ store *Store }

func (r *customerReads) List(_ context.Context) ([]queries.CustomerView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(queries.CustomerView) bool { return true }), nil
}

func (r *customerReads) ListWithOutstandingRentals(_ context.Context) ([]queries.CustomerView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(v queries.CustomerView) bool { return v.OutstandingRentals > 0 }), nil
}

func (r *customerReads) collect(keep func(queries.CustomerView) bool) []queries.CustomerView {
	views := make([]queries.CustomerView, 0, len(r.store.customers))
	for _, row := range r.store.customers {
		v := queries.CustomerView{
			ID:          row.id,
			PhoneNumber: row.phone,
			CreatedAt:   row.createdAt,
		}
		for _, rr := range r.store.rentals {
			if rr.customerID == row.id && !rr.returned {
				v.OutstandingRentals++
			}
		}
		if keep(v) {
			views = append(views, v)
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].PhoneNumber < views[j].PhoneNumber })
	return views
}

var _ shared.UnitOfWork = (*Store)(nil)
var _ shared.ActivityLogger = (*Store)(nil)
