// Package workflow is the mutation surface of the application. Every command
// runs an ordered sequence of store calls and returns the resulting entity
// together with the audit entry it wrote, so no call site can forget the
// trail.
package workflow

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/xurshidboymirzaev403-a11y/logistics/config"
	"github.com/xurshidboymirzaev403-a11y/logistics/models"
	"github.com/xurshidboymirzaev403-a11y/logistics/store"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

const (
	EntityOrder      = "Order"
	EntityOrderLine  = "OrderLine"
	EntityAllocation = "Allocation"
	EntityPayment    = "Payment"
	EntityItem       = "Item"
	EntitySupplier   = "Supplier"
	EntityUser       = "User"
)

type Workflow struct {
	store  store.Store
	logger *logrus.Logger
}

func New(st store.Store) *Workflow {
	return &Workflow{store: st, logger: config.GetLogger()}
}

// audit writes one entry for a completed mutation. The acting user comes
// from the request context.
func (w *Workflow) audit(ctx context.Context, action models.AuditAction, entityType string, entityId int, details interface{}) (*models.AuditLog, error) {
	userId, _ := utils.GetUserIdFromContext(ctx)
	entry := models.NewAuditEntry(action, entityType, entityId, userId, details)
	if err := w.store.AuditLogs().Create(ctx, &entry); err != nil {
		correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
		config.LogError(w.logger, "workflow", "audit", correlationId, entry, err)
		return nil, err
	}
	return &entry, nil
}

func (w *Workflow) logError(ctx context.Context, funcName string, data any, err error) {
	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	config.LogError(w.logger, "workflow", funcName, correlationId, data, err)
}

// requireAdminMode gates destructive operations on the session's admin flag.
func requireAdminMode(ctx context.Context, operation string) error {
	if !utils.GetAdminModeFromContext(ctx) {
		return utils.NewAuthorizationError("%s requires admin mode", operation)
	}
	return nil
}
