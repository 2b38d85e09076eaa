package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
)

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.store.Orders().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	order, err := h.store.Orders().Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	layout, err := h.workflow.OrderLayout(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response := gin.H{"order": order}
	switch l := layout.(type) {
	case models.ContainerLayout:
		response["layout"] = "containers"
		response["containers"] = l.Containers
		response["totals"] = models.SummarizeContainers(l)
	case models.FlatLayout:
		response["layout"] = "flat"
		response["lines"] = l.Lines
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	input := models.NewOrder{}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	order, entry, err := h.workflow.CreateOrder(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order, "audit": entry})
}

type transitionRequest struct {
	Status   models.OrderStatus `json:"status" binding:"required"`
	Override bool               `json:"override"`
}

func (h *Handler) TransitionOrder(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	req := transitionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	order, entry, err := h.workflow.TransitionOrder(c.Request.Context(), id, req.Status, req.Override)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "audit": entry})
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	saga, entry, err := h.workflow.DeleteOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saga": saga, "audit": entry})
}

func (h *Handler) GetDistribution(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.workflow.DistributionSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) AddOrderLine(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	input := models.NewOrderLine{}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	line, entry, err := h.workflow.AddOrderLine(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"line": line, "audit": entry})
}

func (h *Handler) DeleteOrderLine(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	entry, err := h.workflow.DeleteOrderLine(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit": entry})
}

type replaceRequest struct {
	Replacements []models.ReplacementLine `json:"replacements" binding:"required"`
}

func (h *Handler) ReplaceOrderLine(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	req := replaceRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	lines, entry, err := h.workflow.ReplaceOrderLine(c.Request.Context(), id, req.Replacements)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines, "audit": entry})
}

func (h *Handler) CreateAllocation(c *gin.Context) {
	input := models.NewAllocation{}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	allocation, entry, err := h.workflow.CreateAllocation(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"allocation": allocation, "audit": entry})
}

func (h *Handler) DeleteAllocation(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	entry, err := h.workflow.DeleteAllocation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit": entry})
}
