// Package handler exposes the workflow commands over REST.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/xurshidboymirzaev403-a11y/logistics/store"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
	"github.com/xurshidboymirzaev403-a11y/logistics/workflow"
)

type Handler struct {
	store    store.Store
	workflow *workflow.Workflow
}

func New(st store.Store) *Handler {
	return &Handler{store: st, workflow: workflow.New(st)}
}

// respondError maps the error taxonomy onto HTTP statuses. Validation-class
// failures are advisory and carry the message through; everything else is a
// generic failure.
func respondError(c *gin.Context, err error) {
	var bindErrors validator.ValidationErrors
	switch {
	case errors.As(err, &bindErrors):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.ProcessValidationErrors(bindErrors)})
	case utils.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case utils.IsOverAllocationError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case utils.IsContainerOverloadError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case utils.IsAuthorizationError(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
