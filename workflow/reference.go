package workflow

import (
	"context"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

func (w *Workflow) CreateItem(ctx context.Context, input *models.NewItem) (*models.Item, *models.AuditLog, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}
	item := models.Item{
		Name:        input.Name,
		Unit:        input.Unit,
		Category:    input.Category,
		Description: input.Description,
	}
	if err := w.store.Items().Create(ctx, &item); err != nil {
		w.logError(ctx, "CreateItem", input, err)
		return nil, nil, err
	}
	entry, err := w.audit(ctx, models.AuditActionCreate, EntityItem, item.ID, map[string]interface{}{"name": item.Name})
	if err != nil {
		return nil, nil, err
	}
	return &item, entry, nil
}

func (w *Workflow) UpdateItem(ctx context.Context, itemId int, input *models.NewItem) (*models.Item, *models.AuditLog, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}
	item, err := w.store.Items().Get(ctx, itemId)
	if err != nil {
		return nil, nil, err
	}
	item.Name = input.Name
	item.Unit = input.Unit
	item.Category = input.Category
	item.Description = input.Description
	if err := w.store.Items().Update(ctx, item); err != nil {
		w.logError(ctx, "UpdateItem", input, err)
		return nil, nil, err
	}
	entry, err := w.audit(ctx, models.AuditActionUpdate, EntityItem, item.ID, map[string]interface{}{"name": item.Name})
	if err != nil {
		return nil, nil, err
	}
	return item, entry, nil
}

func (w *Workflow) DeleteItem(ctx context.Context, itemId int) (*models.AuditLog, error) {
	if err := requireAdminMode(ctx, "deleting an item"); err != nil {
		return nil, err
	}
	item, err := w.store.Items().Get(ctx, itemId)
	if err != nil {
		return nil, err
	}
	if err := w.store.Items().Delete(ctx, itemId); err != nil {
		w.logError(ctx, "DeleteItem", itemId, err)
		return nil, err
	}
	return w.audit(ctx, models.AuditActionDelete, EntityItem, itemId, map[string]interface{}{"name": item.Name})
}

func (w *Workflow) CreateSupplier(ctx context.Context, input *models.NewSupplier) (*models.Supplier, *models.AuditLog, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}
	supplier := models.Supplier{
		Name:     input.Name,
		Contacts: input.Contacts,
		Phone:    input.Phone,
		Email:    input.Email,
		Notes:    input.Notes,
	}
	if err := w.store.Suppliers().Create(ctx, &supplier); err != nil {
		w.logError(ctx, "CreateSupplier", input, err)
		return nil, nil, err
	}
	entry, err := w.audit(ctx, models.AuditActionCreate, EntitySupplier, supplier.ID, map[string]interface{}{"name": supplier.Name})
	if err != nil {
		return nil, nil, err
	}
	return &supplier, entry, nil
}

func (w *Workflow) UpdateSupplier(ctx context.Context, supplierId int, input *models.NewSupplier) (*models.Supplier, *models.AuditLog, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}
	supplier, err := w.store.Suppliers().Get(ctx, supplierId)
	if err != nil {
		return nil, nil, err
	}
	supplier.Name = input.Name
	supplier.Contacts = input.Contacts
	supplier.Phone = input.Phone
	supplier.Email = input.Email
	supplier.Notes = input.Notes
	if err := w.store.Suppliers().Update(ctx, supplier); err != nil {
		w.logError(ctx, "UpdateSupplier", input, err)
		return nil, nil, err
	}
	entry, err := w.audit(ctx, models.AuditActionUpdate, EntitySupplier, supplier.ID, map[string]interface{}{"name": supplier.Name})
	if err != nil {
		return nil, nil, err
	}
	return supplier, entry, nil
}

func (w *Workflow) DeleteSupplier(ctx context.Context, supplierId int) (*models.AuditLog, error) {
	if err := requireAdminMode(ctx, "deleting a supplier"); err != nil {
		return nil, err
	}
	supplier, err := w.store.Suppliers().Get(ctx, supplierId)
	if err != nil {
		return nil, err
	}
	if err := w.store.Suppliers().Delete(ctx, supplierId); err != nil {
		w.logError(ctx, "DeleteSupplier", supplierId, err)
		return nil, err
	}
	return w.audit(ctx, models.AuditActionDelete, EntitySupplier, supplierId, map[string]interface{}{"name": supplier.Name})
}

// CreateUser registers an operator account with a hashed password. Admin
// mode required.
func (w *Workflow) CreateUser(ctx context.Context, input *models.NewUser) (*models.User, *models.AuditLog, error) {
	if err := requireAdminMode(ctx, "creating a user"); err != nil {
		return nil, nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}
	if _, err := w.store.Users().GetByUsername(ctx, input.Username); err == nil {
		return nil, nil, utils.NewValidationError("username %q is taken", input.Username)
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		w.logError(ctx, "CreateUser", input.Username, err)
		return nil, nil, err
	}
	user := models.User{
		Username: input.Username,
		Password: string(hashed),
		Role:     input.Role,
		FullName: input.FullName,
	}
	if err := w.store.Users().Create(ctx, &user); err != nil {
		w.logError(ctx, "CreateUser", input.Username, err)
		return nil, nil, err
	}
	entry, err := w.audit(ctx, models.AuditActionCreate, EntityUser, user.ID, map[string]interface{}{"username": user.Username})
	if err != nil {
		return nil, nil, err
	}
	return &user, entry, nil
}

// Login verifies credentials and issues a session token.
func (w *Workflow) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := w.store.Users().GetByUsername(ctx, username)
	if err != nil {
		return "", nil, utils.NewValidationError("invalid username or password")
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return "", nil, utils.NewValidationError("invalid username or password")
	}
	token, err := utils.JwtGenerate(user.ID, string(user.Role))
	if err != nil {
		w.logError(ctx, "Login", username, err)
		return "", nil, err
	}
	return token, user, nil
}

// EnsureDefaultAdmin seeds the initial admin account when the user table is
// empty, so a fresh install is reachable.
func (w *Workflow) EnsureDefaultAdmin(ctx context.Context, username, password string) (*models.User, error) {
	users, err := w.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) > 0 {
		return nil, nil
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username: username,
		Password: string(hashed),
		Role:     models.UserRoleAdmin,
		FullName: "Administrator",
	}
	if err := w.store.Users().Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AuditTrail lists audit entries, optionally filtered by entity.
func (w *Workflow) AuditTrail(ctx context.Context, entityType string, entityId int) ([]models.AuditLog, error) {
	return w.store.AuditLogs().List(ctx, entityType, entityId)
}

// ClearAuditTrail wipes the audit log. Admin mode required.
func (w *Workflow) ClearAuditTrail(ctx context.Context) error {
	if err := requireAdminMode(ctx, "clearing the audit log"); err != nil {
		return err
	}
	return w.store.AuditLogs().DeleteAll(ctx)
}
