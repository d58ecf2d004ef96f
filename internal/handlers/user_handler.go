package handlers

import (
	"net/http"
	"strconv"

	"cartmart-be/internal/user"
	"cartmart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Me(c *gin.Context) {
	id, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		respondError(c, user.ErrUserNotFound)
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

type setActiveRequest struct {
	Active *bool `json:"isActive" binding:"required"`
}

func (h *UserHandler) SetActive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondValidation(c, err)
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.users.SetActive(c.Request.Context(), id, *req.Active); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
