package workflow

import (
	"context"
	"encoding/json"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
)

// SnapshotUser is the backup representation of a user. The REST responses
// hide the password hash; the backup must carry it or restored accounts
// could never log in again.
type SnapshotUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

// Snapshot is the single-document backup format. Keys match the collection
// names the import side dispatches on.
type Snapshot struct {
	Users       []SnapshotUser            `json:"USERS"`
	Items       []models.Item             `json:"ITEMS"`
	Suppliers   []models.Supplier         `json:"SUPPLIERS"`
	Orders      []models.Order            `json:"ORDERS"`
	OrderLines  []models.OrderLine        `json:"ORDER_LINES"`
	Allocations []models.Allocation       `json:"ALLOCATIONS"`
	Payments    []models.PaymentOperation `json:"PAYMENTS"`
	AuditLogs   []models.AuditLog         `json:"AUDIT_LOGS"`
}

// ExportSnapshot serializes every collection into one document.
func (w *Workflow) ExportSnapshot(ctx context.Context) (*Snapshot, error) {
	snapshot := Snapshot{}
	users, err := w.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.Users = make([]SnapshotUser, 0, len(users))
	for i := range users {
		snapshot.Users = append(snapshot.Users, SnapshotUser{User: users[i], PasswordHash: users[i].Password})
	}
	if snapshot.Items, err = w.store.Items().List(ctx); err != nil {
		return nil, err
	}
	if snapshot.Suppliers, err = w.store.Suppliers().List(ctx); err != nil {
		return nil, err
	}
	if snapshot.Orders, err = w.store.Orders().List(ctx); err != nil {
		return nil, err
	}
	snapshot.OrderLines = []models.OrderLine{}
	snapshot.Allocations = []models.Allocation{}
	snapshot.Payments = []models.PaymentOperation{}
	for i := range snapshot.Orders {
		order := &snapshot.Orders[i]
		snapshot.OrderLines = append(snapshot.OrderLines, order.OrderLines...)
		order.OrderLines = nil

		allocations, err := w.store.Allocations().ListByOrder(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		snapshot.Allocations = append(snapshot.Allocations, allocations...)

		payments, err := w.store.Payments().ListByOrder(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		snapshot.Payments = append(snapshot.Payments, payments...)
	}
	if snapshot.AuditLogs, err = w.store.AuditLogs().List(ctx, "", 0); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ExportJSON renders the snapshot as an indented JSON document.
func (w *Workflow) ExportJSON(ctx context.Context) ([]byte, error) {
	snapshot, err := w.ExportSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snapshot, "", "  ")
}

// ImportSnapshot restores a snapshot: mutable collections are cleared
// (users are preserved unless the document carries its own), then records
// are inserted in dependency order. There is no rollback; a failing step
// leaves the collections cleared or partially restored. Admin mode required.
func (w *Workflow) ImportSnapshot(ctx context.Context, snapshot *Snapshot) error {
	if err := requireAdminMode(ctx, "importing a snapshot"); err != nil {
		return err
	}

	clears := []func() error{
		func() error { return w.store.AuditLogs().DeleteAll(ctx) },
		func() error { return w.store.Payments().DeleteAll(ctx) },
		func() error { return w.store.Allocations().DeleteAll(ctx) },
		func() error { return w.store.OrderLines().DeleteAll(ctx) },
		func() error { return w.store.Orders().DeleteAll(ctx) },
		func() error { return w.store.Suppliers().DeleteAll(ctx) },
		func() error { return w.store.Items().DeleteAll(ctx) },
	}
	for _, clear := range clears {
		if err := clear(); err != nil {
			w.logError(ctx, "ImportSnapshot", nil, err)
			return err
		}
	}

	for i := range snapshot.Users {
		user := snapshot.Users[i].User
		user.Password = snapshot.Users[i].PasswordHash
		if _, err := w.store.Users().GetByUsername(ctx, user.Username); err == nil {
			continue
		}
		if err := w.store.Users().Create(ctx, &user); err != nil {
			w.logError(ctx, "ImportSnapshot", user.Username, err)
			return err
		}
	}
	for i := range snapshot.Items {
		item := snapshot.Items[i]
		if err := w.store.Items().Create(ctx, &item); err != nil {
			w.logError(ctx, "ImportSnapshot", item.ID, err)
			return err
		}
	}
	for i := range snapshot.Suppliers {
		supplier := snapshot.Suppliers[i]
		if err := w.store.Suppliers().Create(ctx, &supplier); err != nil {
			w.logError(ctx, "ImportSnapshot", supplier.ID, err)
			return err
		}
	}
	for i := range snapshot.Orders {
		order := snapshot.Orders[i]
		order.OrderLines = nil
		if err := w.store.Orders().Create(ctx, &order); err != nil {
			w.logError(ctx, "ImportSnapshot", order.ID, err)
			return err
		}
	}
	for i := range snapshot.OrderLines {
		line := snapshot.OrderLines[i]
		line.Item = nil
		if err := w.store.OrderLines().Create(ctx, &line); err != nil {
			w.logError(ctx, "ImportSnapshot", line.ID, err)
			return err
		}
	}
	for i := range snapshot.Allocations {
		allocation := snapshot.Allocations[i]
		allocation.Supplier = nil
		if err := w.store.Allocations().Create(ctx, &allocation); err != nil {
			w.logError(ctx, "ImportSnapshot", allocation.ID, err)
			return err
		}
	}
	for i := range snapshot.Payments {
		payment := snapshot.Payments[i]
		if err := w.store.Payments().Create(ctx, &payment); err != nil {
			w.logError(ctx, "ImportSnapshot", payment.ID, err)
			return err
		}
	}
	for i := range snapshot.AuditLogs {
		entry := snapshot.AuditLogs[i]
		if err := w.store.AuditLogs().Create(ctx, &entry); err != nil {
			w.logError(ctx, "ImportSnapshot", entry.ID, err)
			return err
		}
	}
	return nil
}

// ImportJSON parses and restores a JSON snapshot document.
func (w *Workflow) ImportJSON(ctx context.Context, document []byte) error {
	snapshot := Snapshot{}
	if err := json.Unmarshal(document, &snapshot); err != nil {
		return err
	}
	return w.ImportSnapshot(ctx, &snapshot)
}
