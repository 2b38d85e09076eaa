// Package gormstore backs the persistence gateway with MySQL through GORM.
package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
	"github.com/xurshidboymirzaev403-a11y/logistics/store"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the schema for every entity.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Supplier{},
		&models.Order{},
		&models.OrderLine{},
		&models.Allocation{},
		&models.PaymentOperation{},
		&models.AuditLog{},
	)
}

func (s *Store) Items() store.ItemStore             { return itemStore{s.db} }
func (s *Store) Suppliers() store.SupplierStore     { return supplierStore{s.db} }
func (s *Store) Orders() store.OrderStore           { return orderStore{s.db} }
func (s *Store) OrderLines() store.OrderLineStore   { return orderLineStore{s.db} }
func (s *Store) Allocations() store.AllocationStore { return allocationStore{s.db} }
func (s *Store) Payments() store.PaymentStore       { return paymentStore{s.db} }
func (s *Store) Users() store.UserStore             { return userStore{s.db} }
func (s *Store) AuditLogs() store.AuditLogStore     { return auditLogStore{s.db} }

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorRecordNotFound
	}
	return err
}

type itemStore struct{ db *gorm.DB }

func (s itemStore) Create(ctx context.Context, item *models.Item) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s itemStore) Get(ctx context.Context, id int) (*models.Item, error) {
	item := models.Item{}
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s itemStore) List(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	if err := s.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s itemStore) Update(ctx context.Context, item *models.Item) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s itemStore) Delete(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&models.Item{}, id).Error
}

func (s itemStore) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Item{}).Error
}

type supplierStore struct{ db *gorm.DB }

func (s supplierStore) Create(ctx context.Context, supplier *models.Supplier) error {
	return s.db.WithContext(ctx).Create(supplier).Error
}

func (s supplierStore) Get(ctx context.Context, id int) (*models.Supplier, error) {
	supplier := models.Supplier{}
	if err := s.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, translate(err)
	}
	return &supplier, nil
}

func (s supplierStore) List(ctx context.Context) ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	if err := s.db.WithContext(ctx).Order("name asc").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (s supplierStore) Update(ctx context.Context, supplier *models.Supplier) error {
	return s.db.WithContext(ctx).Save(supplier).Error
}

func (s supplierStore) Delete(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&models.Supplier{}, id).Error
}

func (s supplierStore) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Supplier{}).Error
}

type orderStore struct{ db *gorm.DB }

func (s orderStore) Create(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s orderStore) Get(ctx context.Context, id int) (*models.Order, error) {
	order := models.Order{}
	if err := s.db.WithContext(ctx).Preload("OrderLines").First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s orderStore) List(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.db.WithContext(ctx).Preload("OrderLines").Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s orderStore) Update(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Omit("OrderLines").Save(order).Error
}

func (s orderStore) Delete(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&models.Order{}, id).Error
}

func (s orderStore) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Order{}).Error
}

type orderLineStore struct{ db *gorm.DB }

func (s orderLineStore) Create(ctx context.Context, line *models.OrderLine) error {
	return s.db.WithContext(ctx).Create(line).Error
}

func (s orderLineStore) Get(ctx context.Context, id int) (*models.OrderLine, error) {
	line := models.OrderLine{}
	if err := s.db.WithContext(ctx).Preload("Item").First(&line, id).Error; err != nil {
		return nil, translate(err)
	}
	return &line, nil
}

func (s orderLineStore) ListByOrder(ctx context.Context, orderId int) ([]models.OrderLine, error) {
	lines := []models.OrderLine{}
	if err := s.db.WithContext(ctx).Preload("Item").Where("order_id = ?", orderId).Order("id asc").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (s orderLineStore) Update(ctx context.Context, line *models.OrderLine) error {
	return s.db.WithContext(ctx).Omit("Item").Save(line).Error
}

func (s orderLineStore) Delete(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&models.OrderLine{}, id).Error
}

func (s orderLineStore) DeleteByOrder(ctx context.Context, orderId int) error {
	return s.db.WithContext(ctx).Where("order_id = ?", orderId).Delete(&models.OrderLine{}).Error
}

func (s orderLineStore) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.OrderLine{}).Error
}

type allocationStore struct{ db *gorm.DB }

func (s allocationStore) Create(ctx context.Context, allocation *models.Allocation) error {
	return s.db.WithContext(ctx).Create(allocation).Error
}

func (s allocationStore) Get(ctx context.Context, id int) (*models.Allocation, error) {
	allocation := models.Allocation{}
	if err := s.db.WithContext(ctx).Preload("Supplier").First(&allocation, id).Error; err != nil {
		return nil, translate(err)
	}
	return &allocation, nil
}

func (s allocationStore) ListByOrder(ctx context.Context, orderId int) ([]models.Allocation, error) {
	allocations := []models.Allocation{}
	if err := s.db.WithContext(ctx).Preload("Supplier").Where("order_id = ?", orderId).Order("id asc").Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

func (s allocationStore) ListByOrderLine(ctx context.Context, orderLineId int) ([]models.Allocation, error) {
	allocations := []models.Allocation{}
	if err := s.db.WithContext(ctx).Where("order_line_id = ?", orderLineId).Order("id asc").Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

func (s allocationStore) Delete(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&models.Allocation{}, id).Error
}

func (s allocationStore) DeleteByOrderLine(ctx context.Context, orderLineId int) error {
	return s.db.WithContext(ctx).Where("order_line_id = ?", orderLineId).Delete(&models.Allocation{}).Error
}

func (s allocationStore) DeleteByOrder(ctx context.Context, orderId int) error {
	return s.db.WithContext(ctx).Where("order_id = ?", orderId).Delete(&models.Allocation{}).Error
}

func (s allocationStore) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Allocation{}).Error
}

type paymentStore struct{ db *gorm.DB }

func (s paymentStore) Create(ctx context.Context, payment *models.PaymentOperation) error {
	return s.db.WithContext(ctx).Create(payment).Error
}

func (s paymentStore) Get(ctx context.Context, id int) (*models.PaymentOperation, error) {
	payment := models.PaymentOperation{}
	if err := s.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (s paymentStore) ListByOrder(ctx context.Context, orderId int) ([]models.PaymentOperation, error) {
	payments := []models.PaymentOperation{}
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderId).Order("effective_date desc, id desc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s paymentStore) DeleteByOrder(ctx context.Context, orderId int) error {
	return s.db.WithContext(ctx).Where("order_id = ?", orderId).Delete(&models.PaymentOperation{}).Error
}

func (s paymentStore) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.PaymentOperation{}).Error
}

type userStore struct{ db *gorm.DB }

func (s userStore) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s userStore) Get(ctx context.Context, id int) (*models.User, error) {
	user := models.User{}
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s userStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s userStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("username asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s userStore) Update(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s userStore) Delete(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

type auditLogStore struct{ db *gorm.DB }

func (s auditLogStore) Create(ctx context.Context, entry *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s auditLogStore) List(ctx context.Context, entityType string, entityId int) ([]models.AuditLog, error) {
	query := s.db.WithContext(ctx).Order("created_at desc, id desc")
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if entityId != 0 {
		query = query.Where("entity_id = ?", entityId)
	}
	entries := []models.AuditLog{}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s auditLogStore) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.AuditLog{}).Error
}
