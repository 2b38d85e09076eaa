// Package memstore is an in-memory persistence gateway used by tests and by
// snapshot import staging. It mirrors gormstore's ordering guarantees.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
	"github.com/xurshidboymirzaev403-a11y/logistics/store"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

type Store struct {
	mu sync.Mutex

	nextId      map[string]int
	items       map[int]models.Item
	suppliers   map[int]models.Supplier
	orders      map[int]models.Order
	orderLines  map[int]models.OrderLine
	allocations map[int]models.Allocation
	payments    map[int]models.PaymentOperation
	users       map[int]models.User
	auditLogs   map[int]models.AuditLog
}

func New() *Store {
	return &Store{
		nextId:      map[string]int{},
		items:       map[int]models.Item{},
		suppliers:   map[int]models.Supplier{},
		orders:      map[int]models.Order{},
		orderLines:  map[int]models.OrderLine{},
		allocations: map[int]models.Allocation{},
		payments:    map[int]models.PaymentOperation{},
		users:       map[int]models.User{},
		auditLogs:   map[int]models.AuditLog{},
	}
}

func (s *Store) allocate(kind string, requested int) int {
	if requested > 0 {
		if requested >= s.nextId[kind] {
			s.nextId[kind] = requested + 1
		}
		return requested
	}
	if s.nextId[kind] == 0 {
		s.nextId[kind] = 1
	}
	id := s.nextId[kind]
	s.nextId[kind]++
	return id
}

func (s *Store) Items() store.ItemStore             { return itemStore{s} }
func (s *Store) Suppliers() store.SupplierStore     { return supplierStore{s} }
func (s *Store) Orders() store.OrderStore           { return orderStore{s} }
func (s *Store) OrderLines() store.OrderLineStore   { return orderLineStore{s} }
func (s *Store) Allocations() store.AllocationStore { return allocationStore{s} }
func (s *Store) Payments() store.PaymentStore       { return paymentStore{s} }
func (s *Store) Users() store.UserStore             { return userStore{s} }
func (s *Store) AuditLogs() store.AuditLogStore     { return auditLogStore{s} }

func sortedIds[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

type itemStore struct{ s *Store }

func (r itemStore) Create(_ context.Context, item *models.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.allocate("item", item.ID)
	r.s.items[item.ID] = *item
	return nil
}

func (r itemStore) Get(_ context.Context, id int) (*models.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return &item, nil
}

func (r itemStore) List(_ context.Context) ([]models.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := []models.Item{}
	for _, id := range sortedIds(r.s.items) {
		items = append(items, r.s.items[id])
	}
	return items, nil
}

func (r itemStore) Update(_ context.Context, item *models.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return utils.ErrorRecordNotFound
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r itemStore) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, id)
	return nil
}

func (r itemStore) DeleteAll(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items = map[int]models.Item{}
	return nil
}

type supplierStore struct{ s *Store }

func (r supplierStore) Create(_ context.Context, supplier *models.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	supplier.ID = r.s.allocate("supplier", supplier.ID)
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r supplierStore) Get(_ context.Context, id int) (*models.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	supplier, ok := r.s.suppliers[id]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return &supplier, nil
}

func (r supplierStore) List(_ context.Context) ([]models.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	suppliers := []models.Supplier{}
	for _, id := range sortedIds(r.s.suppliers) {
		suppliers = append(suppliers, r.s.suppliers[id])
	}
	return suppliers, nil
}

func (r supplierStore) Update(_ context.Context, supplier *models.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return utils.ErrorRecordNotFound
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r supplierStore) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.suppliers, id)
	return nil
}

func (r supplierStore) DeleteAll(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers = map[int]models.Supplier{}
	return nil
}

type orderStore struct{ s *Store }

func (r orderStore) Create(_ context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order.ID = r.s.allocate("order", order.ID)
	stored := *order
	stored.OrderLines = nil
	r.s.orders[order.ID] = stored
	return nil
}

func (r orderStore) Get(_ context.Context, id int) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order, ok := r.s.orders[id]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	order.OrderLines = r.linesByOrderLocked(id)
	return &order, nil
}

func (r orderStore) List(_ context.Context) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	orders := []models.Order{}
	for _, id := range sortedIds(r.s.orders) {
		order := r.s.orders[id]
		order.OrderLines = r.linesByOrderLocked(id)
		orders = append(orders, order)
	}
	return orders, nil
}

func (r orderStore) linesByOrderLocked(orderId int) []models.OrderLine {
	lines := []models.OrderLine{}
	for _, id := range sortedIds(r.s.orderLines) {
		if r.s.orderLines[id].OrderId == orderId {
			lines = append(lines, r.s.orderLines[id])
		}
	}
	return lines
}

func (r orderStore) Update(_ context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[order.ID]; !ok {
		return utils.ErrorRecordNotFound
	}
	stored := *order
	stored.OrderLines = nil
	r.s.orders[order.ID] = stored
	return nil
}

func (r orderStore) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.orders, id)
	return nil
}

func (r orderStore) DeleteAll(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders = map[int]models.Order{}
	return nil
}

type orderLineStore struct{ s *Store }

func (r orderLineStore) Create(_ context.Context, line *models.OrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	line.ID = r.s.allocate("orderLine", line.ID)
	r.s.orderLines[line.ID] = *line
	return nil
}

func (r orderLineStore) Get(_ context.Context, id int) (*models.OrderLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	line, ok := r.s.orderLines[id]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return &line, nil
}

func (r orderLineStore) ListByOrder(_ context.Context, orderId int) ([]models.OrderLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lines := []models.OrderLine{}
	for _, id := range sortedIds(r.s.orderLines) {
		if r.s.orderLines[id].OrderId == orderId {
			lines = append(lines, r.s.orderLines[id])
		}
	}
	return lines, nil
}

func (r orderLineStore) Update(_ context.Context, line *models.OrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orderLines[line.ID]; !ok {
		return utils.ErrorRecordNotFound
	}
	r.s.orderLines[line.ID] = *line
	return nil
}

func (r orderLineStore) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.orderLines, id)
	return nil
}

func (r orderLineStore) DeleteByOrder(_ context.Context, orderId int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, line := range r.s.orderLines {
		if line.OrderId == orderId {
			delete(r.s.orderLines, id)
		}
	}
	return nil
}

func (r orderLineStore) DeleteAll(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orderLines = map[int]models.OrderLine{}
	return nil
}

type allocationStore struct{ s *Store }

func (r allocationStore) Create(_ context.Context, allocation *models.Allocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	allocation.ID = r.s.allocate("allocation", allocation.ID)
	r.s.allocations[allocation.ID] = *allocation
	return nil
}

func (r allocationStore) Get(_ context.Context, id int) (*models.Allocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	allocation, ok := r.s.allocations[id]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return &allocation, nil
}

func (r allocationStore) ListByOrder(_ context.Context, orderId int) ([]models.Allocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	allocations := []models.Allocation{}
	for _, id := range sortedIds(r.s.allocations) {
		if r.s.allocations[id].OrderId == orderId {
			allocations = append(allocations, r.s.allocations[id])
		}
	}
	return allocations, nil
}

func (r allocationStore) ListByOrderLine(_ context.Context, orderLineId int) ([]models.Allocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	allocations := []models.Allocation{}
	for _, id := range sortedIds(r.s.allocations) {
		if r.s.allocations[id].OrderLineId == orderLineId {
			allocations = append(allocations, r.s.allocations[id])
		}
	}
	return allocations, nil
}

func (r allocationStore) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.allocations, id)
	return nil
}

func (r allocationStore) DeleteByOrderLine(_ context.Context, orderLineId int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, allocation := range r.s.allocations {
		if allocation.OrderLineId == orderLineId {
			delete(r.s.allocations, id)
		}
	}
	return nil
}

func (r allocationStore) DeleteByOrder(_ context.Context, orderId int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, allocation := range r.s.allocations {
		if allocation.OrderId == orderId {
			delete(r.s.allocations, id)
		}
	}
	return nil
}

func (r allocationStore) DeleteAll(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.allocations = map[int]models.Allocation{}
	return nil
}

type paymentStore struct{ s *Store }

func (r paymentStore) Create(_ context.Context, payment *models.PaymentOperation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	payment.ID = r.s.allocate("payment", payment.ID)
	r.s.payments[payment.ID] = *payment
	return nil
}

func (r paymentStore) Get(_ context.Context, id int) (*models.PaymentOperation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	payment, ok := r.s.payments[id]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return &payment, nil
}

func (r paymentStore) ListByOrder(_ context.Context, orderId int) ([]models.PaymentOperation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	payments := []models.PaymentOperation{}
	for _, id := range sortedIds(r.s.payments) {
		if r.s.payments[id].OrderId == orderId {
			payments = append(payments, r.s.payments[id])
		}
	}
	sort.SliceStable(payments, func(i, j int) bool {
		if !payments[i].EffectiveDate.Equal(payments[j].EffectiveDate) {
			return payments[i].EffectiveDate.After(payments[j].EffectiveDate)
		}
		return payments[i].ID > payments[j].ID
	})
	return payments, nil
}

func (r paymentStore) DeleteByOrder(_ context.Context, orderId int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, payment := range r.s.payments {
		if payment.OrderId == orderId {
			delete(r.s.payments, id)
		}
	}
	return nil
}

func (r paymentStore) DeleteAll(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payments = map[int]models.PaymentOperation{}
	return nil
}

type userStore struct{ s *Store }

func (r userStore) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.allocate("user", user.ID)
	r.s.users[user.ID] = *user
	return nil
}

func (r userStore) Get(_ context.Context, id int) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return &user, nil
}

func (r userStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range sortedIds(r.s.users) {
		if r.s.users[id].Username == username {
			user := r.s.users[id]
			return &user, nil
		}
	}
	return nil, utils.ErrorRecordNotFound
}

func (r userStore) List(_ context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := []models.User{}
	for _, id := range sortedIds(r.s.users) {
		users = append(users, r.s.users[id])
	}
	return users, nil
}

func (r userStore) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return utils.ErrorRecordNotFound
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r userStore) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

type auditLogStore struct{ s *Store }

func (r auditLogStore) Create(_ context.Context, entry *models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry.ID = r.s.allocate("auditLog", entry.ID)
	r.s.auditLogs[entry.ID] = *entry
	return nil
}

func (r auditLogStore) List(_ context.Context, entityType string, entityId int) ([]models.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entries := []models.AuditLog{}
	ids := sortedIds(r.s.auditLogs)
	for i := len(ids) - 1; i >= 0; i-- {
		entry := r.s.auditLogs[ids[i]]
		if entityType != "" && entry.EntityType != entityType {
			continue
		}
		if entityId != 0 && entry.EntityId != entityId {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r auditLogStore) DeleteAll(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.auditLogs = map[int]models.AuditLog{}
	return nil
}
