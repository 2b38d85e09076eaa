package workflow

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
	"github.com/xurshidboymirzaev403-a11y/logistics/store/memstore"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

func tons(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testContext() context.Context {
	return utils.SetUserIdInContext(context.Background(), 1)
}

func adminContext() context.Context {
	return utils.SetAdminModeInContext(testContext(), true)
}

// newTestWorkflow seeds one item and two suppliers on a fresh memstore.
func newTestWorkflow(t *testing.T) (*Workflow, context.Context) {
	t.Helper()
	w := New(memstore.New())
	ctx := testContext()
	if err := w.store.Items().Create(ctx, &models.Item{Name: "Wheat", Unit: models.UnitTon}); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Supplier X", "Supplier Y"} {
		if err := w.store.Suppliers().Create(ctx, &models.Supplier{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	return w, ctx
}

func createOrder100(t *testing.T, w *Workflow, ctx context.Context) *models.Order {
	t.Helper()
	order, entry, err := w.CreateOrder(ctx, &models.NewOrder{
		Name:  "test order",
		Lines: []models.NewOrderLine{{ItemId: 1, Quantity: tons("100"), Unit: models.UnitTon}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if entry == nil || entry.Action != models.AuditActionCreate {
		t.Fatalf("expected CREATE audit entry, got %+v", entry)
	}
	return order
}

func allocate(t *testing.T, w *Workflow, ctx context.Context, lineId, supplierId int, quantity, price string) *models.Allocation {
	t.Helper()
	allocation, _, err := w.CreateAllocation(ctx, &models.NewAllocation{
		OrderLineId: lineId,
		SupplierId:  supplierId,
		Quantity:    tons(quantity),
		Unit:        models.UnitTon,
		PricePerTon: tons(price),
		Currency:    models.CurrencyUSD,
	})
	if err != nil {
		t.Fatal(err)
	}
	return allocation
}

func TestCreateOrderNumbersSequential(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	first := createOrder100(t, w, ctx)
	second := createOrder100(t, w, ctx)
	if first.Number != "ORD-001" || second.Number != "ORD-002" {
		t.Fatalf("numbers = %s, %s; want ORD-001, ORD-002", first.Number, second.Number)
	}
	if first.Status != models.OrderStatusLocked {
		t.Fatalf("new order status = %s, want locked", first.Status)
	}
}

func TestCreateOrderMergesDuplicateCartLines(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	order, _, err := w.CreateOrder(ctx, &models.NewOrder{
		Lines: []models.NewOrderLine{
			{ItemId: 1, Quantity: tons("10"), Unit: models.UnitTon},
			{ItemId: 1, Quantity: tons("7"), Unit: models.UnitTon},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(order.OrderLines) != 1 {
		t.Fatalf("have %d lines, want duplicates merged into 1", len(order.OrderLines))
	}
	if !order.OrderLines[0].QuantityInTons.Equal(tons("17")) {
		t.Fatalf("merged tons = %s, want 17", order.OrderLines[0].QuantityInTons)
	}
}

func TestFullDistributionAndTransition(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	order := createOrder100(t, w, ctx)
	lineId := order.OrderLines[0].ID

	a := allocate(t, w, ctx, lineId, 1, "60", "50")
	if !a.TotalSum.Equal(tons("3000")) {
		t.Fatalf("total sum = %s, want 3000", a.TotalSum)
	}
	b := allocate(t, w, ctx, lineId, 2, "40", "55")
	if !b.TotalSum.Equal(tons("2200")) {
		t.Fatalf("total sum = %s, want 2200", b.TotalSum)
	}

	summary, err := w.DistributionSummary(ctx, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !summary.TotalAllocatedTons.Equal(tons("100")) || !summary.IsFullyDistributed {
		t.Fatalf("summary = %+v, want fully distributed 100", summary)
	}

	updated, _, err := w.TransitionOrder(ctx, order.ID, models.OrderStatusFinancial, false)
	if err != nil {
		t.Fatalf("transition of a fully distributed order needs no override: %v", err)
	}
	if updated.IsPartiallyDistributed {
		t.Fatal("fully distributed order must not be flagged partial")
	}
}

func TestPartialDistributionNeedsOverride(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	order := createOrder100(t, w, ctx)
	allocate(t, w, ctx, order.OrderLines[0].ID, 1, "60", "50")

	if _, _, err := w.TransitionOrder(ctx, order.ID, models.OrderStatusFinancial, false); err == nil {
		t.Fatal("40t undistributed, transition without override must fail")
	}

	updated, _, err := w.TransitionOrder(ctx, order.ID, models.OrderStatusFinancial, true)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.IsPartiallyDistributed {
		t.Fatal("override transition must flag the order as partially distributed")
	}
}

func TestOverAllocationRejected(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	order := createOrder100(t, w, ctx)
	lineId := order.OrderLines[0].ID
	allocate(t, w, ctx, lineId, 1, "60", "50")

	_, _, err := w.CreateAllocation(ctx, &models.NewAllocation{
		OrderLineId: lineId,
		SupplierId:  2,
		Quantity:    tons("40.002"),
		Unit:        models.UnitTon,
		PricePerTon: tons("55"),
		Currency:    models.CurrencyUSD,
	})
	if err == nil {
		t.Fatal("expected over-allocation rejection")
	}
	if !utils.IsOverAllocationError(err) {
		t.Fatalf("expected OverAllocationError, got %T", err)
	}
}

func TestMutationOutsideLockedRejected(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	order := createOrder100(t, w, ctx)
	lineId := order.OrderLines[0].ID
	allocate(t, w, ctx, lineId, 1, "100", "50")
	if _, _, err := w.TransitionOrder(ctx, order.ID, models.OrderStatusFinancial, false); err != nil {
		t.Fatal(err)
	}

	if _, _, err := w.AddOrderLine(ctx, order.ID, &models.NewOrderLine{ItemId: 1, Quantity: tons("5"), Unit: models.UnitTon}); err == nil {
		t.Fatal("adding a line outside locked must fail")
	}
	if _, _, err := w.CreateAllocation(ctx, &models.NewAllocation{
		OrderLineId: lineId, SupplierId: 1, Quantity: tons("1"),
		Unit: models.UnitTon, PricePerTon: tons("1"), Currency: models.CurrencyUSD,
	}); err == nil {
		t.Fatal("allocating outside locked must fail")
	}
	if _, _, err := w.ReplaceOrderLine(ctx, lineId, []models.ReplacementLine{{ItemId: 1, Quantity: tons("100"), Unit: models.UnitTon}}); err == nil {
		t.Fatal("replacing a line outside locked must fail")
	}
}

func TestReplaceOrderLineMulti(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	order := createOrder100(t, w, ctx)
	lineId := order.OrderLines[0].ID
	allocate(t, w, ctx, lineId, 1, "50", "40")

	lines, entry, err := w.ReplaceOrderLine(ctx, lineId, []models.ReplacementLine{
		{ItemId: 1, Quantity: tons("30"), Unit: models.UnitTon},
		{ItemId: 1, Quantity: tons("50"), Unit: models.UnitTon},
	})
	if err != nil {
		t.Fatal(err)
	}
	if entry.Action != models.AuditActionReplaceMulti {
		t.Fatalf("audit action = %s, want REPLACE_MULTI", entry.Action)
	}
	if len(lines) != 3 {
		t.Fatalf("have %d lines, want shrunk original plus 2 siblings", len(lines))
	}
	if !lines[0].QuantityInTons.Equal(tons("20")) {
		t.Fatalf("original shrunk to %s, want 20", lines[0].QuantityInTons)
	}

	remaining, err := w.store.Allocations().ListByOrderLine(ctx, lineId)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 0 {
		t.Fatalf("prior allocations must be deleted, %d remain", len(remaining))
	}

	stored, err := w.store.OrderLines().ListByOrder(ctx, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 3 {
		t.Fatalf("order has %d lines, want 3", len(stored))
	}
}

func TestReplaceOrderLineInPlace(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	order := createOrder100(t, w, ctx)
	lineId := order.OrderLines[0].ID

	lines, entry, err := w.ReplaceOrderLine(ctx, lineId, []models.ReplacementLine{
		{ItemId: 1, Quantity: tons("100"), Unit: models.UnitTon},
	})
	if err != nil {
		t.Fatal(err)
	}
	if entry.Action != models.AuditActionReplace {
		t.Fatalf("audit action = %s, want REPLACE", entry.Action)
	}
	if len(lines) != 1 || lines[0].ID != lineId {
		t.Fatalf("1:1 swap must keep the line id, got %+v", lines)
	}
}

func TestDeleteOrderCascade(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	order := createOrder100(t, w, ctx)
	lineId := order.OrderLines[0].ID
	allocate(t, w, ctx, lineId, 1, "100", "50")
	if _, _, err := w.CreatePayment(ctx, order.ID, &models.NewPayment{
		SupplierId: 1, Type: models.PaymentTypePrepayment,
		Amount: tons("1000"), Currency: models.CurrencyUSD,
	}); err != nil {
		t.Fatal(err)
	}

	// Without admin mode the delete is refused.
	if _, _, err := w.DeleteOrder(ctx, order.ID); err == nil {
		t.Fatal("delete without admin mode must fail")
	} else if !utils.IsAuthorizationError(err) {
		t.Fatalf("expected AuthorizationError, got %T", err)
	}

	admin := adminContext()
	saga, entry, err := w.DeleteOrder(admin, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(saga.CompletedSteps) != 4 {
		t.Fatalf("saga completed %d steps, want 4", len(saga.CompletedSteps))
	}
	if entry.Action != models.AuditActionDelete || entry.EntityType != EntityOrder {
		t.Fatalf("audit = %+v, want order-level DELETE", entry)
	}

	if _, err := w.store.Orders().Get(ctx, order.ID); err == nil {
		t.Fatal("order should be gone")
	}
	if lines, _ := w.store.OrderLines().ListByOrder(ctx, order.ID); len(lines) != 0 {
		t.Fatalf("%d lines survived the cascade", len(lines))
	}
	if allocations, _ := w.store.Allocations().ListByOrder(ctx, order.ID); len(allocations) != 0 {
		t.Fatalf("%d allocations survived the cascade", len(allocations))
	}
	if payments, _ := w.store.Payments().ListByOrder(ctx, order.ID); len(payments) != 0 {
		t.Fatalf("%d payments survived the cascade", len(payments))
	}

	// The cascade itself is silent: exactly one DELETE entry, on the order.
	entries, err := w.AuditTrail(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	deletes := 0
	for _, e := range entries {
		if e.Action == models.AuditActionDelete {
			deletes++
			if e.EntityType != EntityOrder {
				t.Fatalf("unexpected DELETE on %s", e.EntityType)
			}
		}
	}
	if deletes != 1 {
		t.Fatalf("have %d DELETE entries, want 1", deletes)
	}
}

func TestPercentagePaymentWorkflow(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	order := createOrder100(t, w, ctx)
	lineId := order.OrderLines[0].ID
	allocate(t, w, ctx, lineId, 1, "60", "50")

	if _, _, err := w.CreatePayment(ctx, order.ID, &models.NewPayment{
		SupplierId: 1, Type: models.PaymentTypePrepayment,
		Amount: tons("1000"), Currency: models.CurrencyUSD,
	}); err != nil {
		t.Fatal(err)
	}

	payment, _, err := w.CreatePercentagePayment(ctx, order.ID, &PercentagePaymentInput{
		SupplierId: 1,
		Currency:   models.CurrencyUSD,
		Type:       models.PaymentTypePayoff,
		Percent:    tons("50"),
		Base:       models.PercentageBaseRemaining,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !payment.Amount.Equal(tons("1000")) {
		t.Fatalf("50%% of remaining 2000 = %s, want 1000", payment.Amount)
	}

	groups, distribution, err := w.PaymentOverview(ctx, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 {
		t.Fatalf("have %d groups, want 1", len(groups))
	}
	if groups[0].Summary.Status != models.PaymentStatusPartial {
		t.Fatalf("status = %s, want partial", groups[0].Summary.Status)
	}
	if !distribution.TotalRemainingTons.Equal(tons("40")) {
		t.Fatalf("undistributed = %s, want 40", distribution.TotalRemainingTons)
	}

	if _, _, err := w.CreatePercentagePayment(ctx, order.ID, &PercentagePaymentInput{
		SupplierId: 2, Currency: models.CurrencyUSD,
		Type: models.PaymentTypePayoff, Percent: tons("10"), Base: models.PercentageBaseTotal,
	}); err == nil {
		t.Fatal("supplier without allocations has no payment group")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	if _, err := w.EnsureDefaultAdmin(ctx, "admin", "secret"); err != nil {
		t.Fatal(err)
	}
	order := createOrder100(t, w, ctx)
	allocate(t, w, ctx, order.OrderLines[0].ID, 1, "100", "50")
	if _, _, err := w.CreatePayment(ctx, order.ID, &models.NewPayment{
		SupplierId: 1, Type: models.PaymentTypePrepayment,
		Amount: tons("500"), Currency: models.CurrencyUSD,
	}); err != nil {
		t.Fatal(err)
	}

	document, err := w.ExportJSON(ctx)
	if err != nil {
		t.Fatal(err)
	}

	restored := New(memstore.New())
	admin := adminContext()
	if err := restored.ImportJSON(admin, document); err != nil {
		t.Fatal(err)
	}

	orders, err := restored.store.Orders().List(admin)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 || orders[0].Number != order.Number {
		t.Fatalf("restored orders = %+v", orders)
	}
	lines, err := restored.store.OrderLines().ListByOrder(admin, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || !lines[0].QuantityInTons.Equal(tons("100")) {
		t.Fatalf("restored lines = %+v", lines)
	}
	allocations, err := restored.store.Allocations().ListByOrder(admin, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(allocations) != 1 || !allocations[0].TotalSum.Equal(tons("5000")) {
		t.Fatalf("restored allocations = %+v", allocations)
	}
	payments, err := restored.store.Payments().ListByOrder(admin, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(payments) != 1 {
		t.Fatalf("restored payments = %+v", payments)
	}

	// The backup carries password hashes, so restored accounts can log in.
	if _, logged, err := restored.Login(admin, "admin", "secret"); err != nil {
		t.Fatalf("restored admin cannot log in: %v", err)
	} else if logged.Role != models.UserRoleAdmin {
		t.Fatalf("restored admin role = %s", logged.Role)
	}

	// Import requires admin mode.
	if err := New(memstore.New()).ImportJSON(testContext(), document); err == nil {
		t.Fatal("import without admin mode must fail")
	}
}

func TestLoginAndSeededAdmin(t *testing.T) {
	w, ctx := newTestWorkflow(t)

	user, err := w.EnsureDefaultAdmin(ctx, "admin", "admin")
	if err != nil {
		t.Fatal(err)
	}
	if user == nil || user.Role != models.UserRoleAdmin {
		t.Fatalf("seeded user = %+v", user)
	}

	// Seeding is idempotent once users exist.
	again, err := w.EnsureDefaultAdmin(ctx, "admin", "admin")
	if err != nil {
		t.Fatal(err)
	}
	if again != nil {
		t.Fatal("second seeding must be a no-op")
	}

	token, logged, err := w.Login(ctx, "admin", "admin")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" || logged.Username != "admin" {
		t.Fatalf("login result = %q, %+v", token, logged)
	}

	if _, _, err := w.Login(ctx, "admin", "wrong"); err == nil {
		t.Fatal("wrong password must fail")
	}
	if _, _, err := w.Login(ctx, "ghost", "admin"); err == nil {
		t.Fatal("unknown user must fail")
	}
}

func TestReferenceDeleteNeedsAdminMode(t *testing.T) {
	w, ctx := newTestWorkflow(t)
	if _, err := w.DeleteItem(ctx, 1); err == nil {
		t.Fatal("item delete without admin mode must fail")
	}
	if _, err := w.DeleteSupplier(ctx, 1); err == nil {
		t.Fatal("supplier delete without admin mode must fail")
	}

	admin := adminContext()
	entry, err := w.DeleteItem(admin, 1)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Action != models.AuditActionDelete || entry.EntityType != EntityItem {
		t.Fatalf("audit = %+v", entry)
	}
}
