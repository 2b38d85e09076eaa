package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

func pathId(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, utils.NewValidationError("invalid %s", name)
	}
	return id, nil
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.store.Items().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateItem(c *gin.Context) {
	input := models.NewItem{}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	item, entry, err := h.workflow.CreateItem(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item, "audit": entry})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	input := models.NewItem{}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	item, entry, err := h.workflow.UpdateItem(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item, "audit": entry})
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	entry, err := h.workflow.DeleteItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit": entry})
}

func (h *Handler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.store.Suppliers().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *Handler) CreateSupplier(c *gin.Context) {
	input := models.NewSupplier{}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	supplier, entry, err := h.workflow.CreateSupplier(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"supplier": supplier, "audit": entry})
}

func (h *Handler) UpdateSupplier(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	input := models.NewSupplier{}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	supplier, entry, err := h.workflow.UpdateSupplier(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplier": supplier, "audit": entry})
}

func (h *Handler) DeleteSupplier(c *gin.Context) {
	id, err := pathId(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	entry, err := h.workflow.DeleteSupplier(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit": entry})
}

func (h *Handler) ListAuditLogs(c *gin.Context) {
	entityId := 0
	if raw := c.Query("entity_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, utils.NewValidationError("invalid entity_id"))
			return
		}
		entityId = parsed
	}
	entries, err := h.workflow.AuditTrail(c.Request.Context(), c.Query("entity_type"), entityId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) ClearAuditLogs(c *gin.Context) {
	if err := h.workflow.ClearAuditTrail(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
