// Package store defines the persistence gateway the workflow layer runs on.
// Two implementations exist: gormstore (MySQL) and memstore (in-memory, used
// by tests and import staging).
package store

import (
	"context"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
)

type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, id int) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) error
}

type SupplierStore interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	Get(ctx context.Context, id int) (*models.Supplier, error)
	List(ctx context.Context) ([]models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, id int) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) error
}

type OrderLineStore interface {
	Create(ctx context.Context, line *models.OrderLine) error
	Get(ctx context.Context, id int) (*models.OrderLine, error)
	ListByOrder(ctx context.Context, orderId int) ([]models.OrderLine, error)
	Update(ctx context.Context, line *models.OrderLine) error
	Delete(ctx context.Context, id int) error
	DeleteByOrder(ctx context.Context, orderId int) error
	DeleteAll(ctx context.Context) error
}

type AllocationStore interface {
	Create(ctx context.Context, allocation *models.Allocation) error
	Get(ctx context.Context, id int) (*models.Allocation, error)
	ListByOrder(ctx context.Context, orderId int) ([]models.Allocation, error)
	ListByOrderLine(ctx context.Context, orderLineId int) ([]models.Allocation, error)
	Delete(ctx context.Context, id int) error
	DeleteByOrderLine(ctx context.Context, orderLineId int) error
	DeleteByOrder(ctx context.Context, orderId int) error
	DeleteAll(ctx context.Context) error
}

type PaymentStore interface {
	Create(ctx context.Context, payment *models.PaymentOperation) error
	Get(ctx context.Context, id int) (*models.PaymentOperation, error)
	ListByOrder(ctx context.Context, orderId int) ([]models.PaymentOperation, error)
	DeleteByOrder(ctx context.Context, orderId int) error
	DeleteAll(ctx context.Context) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
}

type AuditLogStore interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, entityType string, entityId int) ([]models.AuditLog, error)
	DeleteAll(ctx context.Context) error
}

// Store bundles the per-entity repositories one operation sequence runs
// against.
type Store interface {
	Items() ItemStore
	Suppliers() SupplierStore
	Orders() OrderStore
	OrderLines() OrderLineStore
	Allocations() AllocationStore
	Payments() PaymentStore
	Users() UserStore
	AuditLogs() AuditLogStore
}
