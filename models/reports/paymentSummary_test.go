package reports

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
)

func summaryFixture() []PaymentSummaryRow {
	order := &models.Order{ID: 1, Number: "ORD-001", Status: models.OrderStatusFinancial}
	allocations := []models.Allocation{
		{
			OrderId: 1, OrderLineId: 1, SupplierId: 1, ItemId: 1,
			QuantityInTons: decimal.NewFromInt(60), Unit: models.UnitTon,
			TotalSum: decimal.NewFromInt(3000), Currency: models.CurrencyUSD,
		},
		{
			OrderId: 1, OrderLineId: 1, SupplierId: 2, ItemId: 1,
			QuantityInTons: decimal.NewFromInt(40), Unit: models.UnitTon,
			TotalSum: decimal.NewFromInt(2200), Currency: models.CurrencyUSD,
		},
	}
	payments := []models.PaymentOperation{
		{
			OrderId: 1, SupplierId: 1, Type: models.PaymentTypePrepayment,
			Amount: decimal.NewFromInt(1000), Currency: models.CurrencyUSD,
		},
	}
	names := map[int]string{1: "Supplier X", 2: "Supplier Y"}
	return BuildPaymentSummary(order, names, allocations, payments)
}

func TestBuildPaymentSummary(t *testing.T) {
	rows := summaryFixture()
	if len(rows) != 2 {
		t.Fatalf("have %d rows, want 2", len(rows))
	}
	if rows[0].SupplierName != "Supplier X" || rows[0].Status != models.PaymentStatusPartial {
		t.Fatalf("first row = %+v", rows[0])
	}
	if !rows[0].Remaining.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("remaining = %s, want 2000", rows[0].Remaining)
	}
	if rows[1].Status != models.PaymentStatusUnpaid {
		t.Fatalf("second row status = %s, want unpaid", rows[1].Status)
	}
}

func TestSavePaymentSummaryExcel(t *testing.T) {
	rows := summaryFixture()
	path := filepath.Join(t.TempDir(), "payments.xlsx")
	if err := SavePaymentSummaryExcel(rows, path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cases := []struct{ cell, want string }{
		{"A1", "Order"},
		{"A2", "ORD-001"},
		{"B2", "Supplier X"},
		{"C2", "USD"},
		{"G2", "partial"},
		{"B3", "Supplier Y"},
		{"G3", "unpaid"},
	}
	for _, tc := range cases {
		got, err := f.GetCellValue("Sheet1", tc.cell)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("%s = %q, want %q", tc.cell, got, tc.want)
		}
	}
}
