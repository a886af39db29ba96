package api

import (
	"errors"
	"net/http"

	"martcore/internal/domain/coupon"
	reqdto "martcore/internal/handler/dto/request"
	resdto "martcore/internal/handler/dto/response"
	"martcore/internal/handler/middleware"
	"martcore/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutUseCase commands.CheckoutCommands
}

func NewCheckoutHandler(checkoutUseCase commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{checkoutUseCase: checkoutUseCase}
}

// @Summary Place order
// @Description Run checkout: coupon, shipping, tax, courier, fulfillment and referral are computed once and frozen onto the order
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.PlaceOrderRequest true "Checkout request"
// @Success 201 {object} resdto.PlaceOrderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req reqdto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Authenticated customers are attributed; guests check out anonymously.
	var customerID *uuid.UUID
	if id, ok := middleware.GetAccountID(c); ok {
		customerID = &id
	}

	result, err := h.checkoutUseCase.PlaceOrder(c.Request.Context(), req.ToParams(customerID))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon code not found"})
		case errors.Is(err, commands.ErrCouponRejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rejectionReason(err)})
		case errors.Is(err, commands.ErrRedemptionRecorded):
			c.JSON(http.StatusConflict, gin.H{"error": "Coupon already redeemed for this order"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Domain validation failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPlaceOrderResult(result))
}

// rejectionReason digs the user-facing coupon rejection reason out of the
// error chain.
func rejectionReason(err error) string {
	var rej *coupon.RejectionError
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return "Coupon rejected"
}
