package handlers

import (
	"net/http"
	"time"

	"cartmart-be/internal/order"
	"cartmart-be/internal/payment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orders   order.Service
	payments payment.Repository
}

func NewOrderHandler(orders order.Service, payments payment.Repository) *OrderHandler {
	return &OrderHandler{orders: orders, payments: payments}
}

// Create is the checkout endpoint. The body carries the client's cart
// snapshot, shipping address, displayed total, and a payment descriptor.
func (h *OrderHandler) Create(c *gin.Context) {
	var input order.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}

	placed, err := h.orders.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, placed)
}

func parseOrderFilter(c *gin.Context) *order.Filter {
	f := &order.Filter{}

	if v := c.Query("status"); v != "" {
		s := order.Status(v)
		f.Status = &s
	}
	if v := c.Query("search"); v != "" {
		f.Search = &v
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.DateFrom = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.DateTo = &t
		}
	}

	return f
}

func (h *OrderHandler) List(c *gin.Context) {
	limit, page := parsePagination(c)

	orders, err := h.orders.GetOrders(c.Request.Context(), parseOrderFilter(c), limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	o, err := h.orders.GetOrderDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

type updateStatusRequest struct {
	Status order.Status `json:"status" binding:"required"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPayment returns the payment record for an order the caller may see.
func (h *OrderHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	// Ownership check rides on the order lookup.
	if _, err := h.orders.GetOrderDetail(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	p, err := h.payments.GetByOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
