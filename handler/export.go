package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExportSnapshot serves the full backup document.
func (h *Handler) ExportSnapshot(c *gin.Context) {
	document, err := h.workflow.ExportJSON(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=backup.json")
	c.Data(http.StatusOK, "application/json", document)
}

// ImportSnapshot restores a backup document uploaded in the request body.
func (h *Handler) ImportSnapshot(c *gin.Context) {
	document, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.workflow.ImportJSON(c.Request.Context(), document); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": true})
}
