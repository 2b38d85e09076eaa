package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	req := loginRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	token, user, err := h.workflow.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) CreateUser(c *gin.Context) {
	input := models.NewUser{}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	user, entry, err := h.workflow.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "audit": entry})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.Users().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
