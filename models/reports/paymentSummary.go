package reports

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
)

// PaymentSummaryRow is one (supplier, currency) group of an order, rendered
// for the supplier payment report.
type PaymentSummaryRow struct {
	OrderNumber  string
	SupplierName string
	Currency     models.Currency
	TotalSum     decimal.Decimal
	Paid         decimal.Decimal
	Remaining    decimal.Decimal
	Status       models.PaymentStatus
}

// BuildPaymentSummary flattens an order's payment groups into report rows.
// supplierNames maps supplier id to display name; unknown ids render blank.
func BuildPaymentSummary(order *models.Order, supplierNames map[int]string, allocations []models.Allocation, payments []models.PaymentOperation) []PaymentSummaryRow {
	rows := []PaymentSummaryRow{}
	for _, group := range models.GroupBySupplierAndCurrency(allocations) {
		summary := models.ReconcilePayments(group, payments)
		rows = append(rows, PaymentSummaryRow{
			OrderNumber:  order.Number,
			SupplierName: supplierNames[group.SupplierId],
			Currency:     group.Currency,
			TotalSum:     group.TotalSum,
			Paid:         summary.Paid,
			Remaining:    summary.Remaining,
			Status:       summary.Status,
		})
	}
	return rows
}

func fillPaymentSummary(f *excelize.File, rows []PaymentSummaryRow) {
	// Add headers
	f.SetCellValue("Sheet1", "A1", "Order")
	f.SetCellValue("Sheet1", "B1", "Supplier")
	f.SetCellValue("Sheet1", "C1", "Currency")
	f.SetCellValue("Sheet1", "D1", "TotalSum")
	f.SetCellValue("Sheet1", "E1", "Paid")
	f.SetCellValue("Sheet1", "F1", "Remaining")
	f.SetCellValue("Sheet1", "G1", "Status")

	// Add data
	for i, row := range rows {
		f.SetCellValue("Sheet1", "A"+fmt.Sprint(i+2), row.OrderNumber)
		f.SetCellValue("Sheet1", "B"+fmt.Sprint(i+2), row.SupplierName)
		f.SetCellValue("Sheet1", "C"+fmt.Sprint(i+2), string(row.Currency))
		f.SetCellValue("Sheet1", "D"+fmt.Sprint(i+2), row.TotalSum.InexactFloat64())
		f.SetCellValue("Sheet1", "E"+fmt.Sprint(i+2), row.Paid.InexactFloat64())
		f.SetCellValue("Sheet1", "F"+fmt.Sprint(i+2), row.Remaining.InexactFloat64())
		f.SetCellValue("Sheet1", "G"+fmt.Sprint(i+2), string(row.Status))
	}
}

// WritePaymentSummaryExcel streams the report as an .xlsx attachment.
func WritePaymentSummaryExcel(w http.ResponseWriter, rows []PaymentSummaryRow, filename string) error {
	f := excelize.NewFile()
	if _, err := f.NewSheet("Sheet1"); err != nil {
		return err
	}
	fillPaymentSummary(f, rows)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	return f.Write(w)
}

// SavePaymentSummaryExcel writes the report to a file on disk.
func SavePaymentSummaryExcel(rows []PaymentSummaryRow, filename string) error {
	f := excelize.NewFile()
	if _, err := f.NewSheet("Sheet1"); err != nil {
		return err
	}
	fillPaymentSummary(f, rows)
	return f.SaveAs(filename)
}
