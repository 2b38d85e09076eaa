package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
	"github.com/xurshidboymirzaev403-a11y/logistics/models/reports"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
	"github.com/xurshidboymirzaev403-a11y/logistics/workflow"
)

func (h *Handler) GetPaymentOverview(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	groups, distribution, err := h.workflow.PaymentOverview(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"groups":       groups,
		"distribution": distribution,
		"presets":      models.PercentagePresets,
	})
}

func (h *Handler) GetPaymentHistory(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	payments, err := h.workflow.PaymentHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *Handler) CreatePayment(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	input := models.NewPayment{}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	payment, entry, err := h.workflow.CreatePayment(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment, "audit": entry})
}

func (h *Handler) CreatePercentagePayment(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	input := workflow.PercentagePaymentInput{}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	payment, entry, err := h.workflow.CreatePercentagePayment(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment, "audit": entry})
}

// ExportPaymentSummary streams the supplier payment report for one order as
// an .xlsx attachment.
func (h *Handler) ExportPaymentSummary(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	order, err := h.store.Orders().Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	allocations, err := h.store.Allocations().ListByOrder(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	payments, err := h.store.Payments().ListByOrder(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	supplierIds := make([]int, 0, len(allocations))
	for i := range allocations {
		supplierIds = append(supplierIds, allocations[i].SupplierId)
	}
	supplierNames := map[int]string{}
	for _, supplierId := range utils.UniqueSlice(supplierIds) {
		supplier, err := h.store.Suppliers().Get(ctx, supplierId)
		if err != nil {
			respondError(c, err)
			return
		}
		supplierNames[supplierId] = supplier.Name
	}

	rows := reports.BuildPaymentSummary(order, supplierNames, allocations, payments)
	if err := reports.WritePaymentSummaryExcel(c.Writer, rows, order.Number+"-payments.xlsx"); err != nil {
		respondError(c, err)
	}
}
