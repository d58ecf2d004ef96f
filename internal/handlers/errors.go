package handlers

import (
	"errors"
	"net/http"

	"cartmart-be/internal/cart"
	"cartmart-be/internal/dashboard"
	"cartmart-be/internal/logger"
	"cartmart-be/internal/order"
	"cartmart-be/internal/payment"
	"cartmart-be/internal/product"
	"cartmart-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// apiError is the single error envelope every endpoint emits.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, err error) {
	status, code := classify(err)

	if status >= http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed", zap.Error(err))
		// Do not leak internals to clients.
		c.JSON(status, gin.H{"error": apiError{Code: code, Message: "internal server error"}})
		return
	}

	c.JSON(status, gin.H{"error": apiError{Code: code, Message: err.Error()}})
}

// classify maps domain errors to HTTP status and stable machine-readable
// codes. Anything unrecognized is INTERNAL.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, order.ErrUnauthenticated),
		errors.Is(err, product.ErrUnauthenticated),
		errors.Is(err, dashboard.ErrUnauthenticated):
		return http.StatusUnauthorized, "UNAUTHENTICATED"

	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS"

	case errors.Is(err, user.ErrAccountDisabled):
		return http.StatusForbidden, "ACCOUNT_DISABLED"

	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, product.ErrNotOwner),
		errors.Is(err, dashboard.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"

	case errors.Is(err, cart.ErrEmptyCart):
		return http.StatusBadRequest, "EMPTY_CART"

	case errors.Is(err, cart.ErrInvalidQuantity):
		return http.StatusBadRequest, "INVALID_QUANTITY"

	case errors.Is(err, product.ErrInsufficientStock):
		return http.StatusConflict, "INSUFFICIENT_STOCK"

	case errors.Is(err, order.ErrPriceMismatch):
		return http.StatusConflict, "PRICE_MISMATCH"

	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_STATUS_TRANSITION"

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, payment.ErrPaymentNotFound):
		return http.StatusNotFound, "NOT_FOUND"

	case errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict, "EMAIL_EXISTS"

	case errors.Is(err, order.ErrIncompleteAddress),
		errors.Is(err, cart.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidStock):
		return http.StatusBadRequest, "VALIDATION"

	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": apiError{Code: "VALIDATION", Message: err.Error()}})
}
