package api

import (
	"errors"
	"net/http"

	reqdto "martcore/internal/handler/dto/request"
	resdto "martcore/internal/handler/dto/response"
	"martcore/internal/handler/middleware"
	"martcore/internal/usecase/commands"
	"martcore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CouponHandler struct {
	couponUseCase commands.CouponCommands
	couponQueries queries.CouponQueries
}

func NewCouponHandler(couponUseCase commands.CouponCommands, couponQueries queries.CouponQueries) *CouponHandler {
	return &CouponHandler{
		couponUseCase: couponUseCase,
		couponQueries: couponQueries,
	}
}

// @Summary Create coupon
// @Description Create a coupon for the authenticated store
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCouponRequest true "Coupon definition"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	storeID, ok := middleware.GetStoreID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.couponUseCase.Create(c.Request.Context(), req.ToParams(storeID))
	if err != nil {
		if errors.Is(err, commands.ErrDomainValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid coupon definition"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List coupons
// @Description List the authenticated store's coupons
// @Tags coupons
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.CouponView
// @Router /coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	storeID, ok := middleware.GetStoreID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.couponQueries.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Validate coupon
// @Description Check a coupon against a cart; failed checks are a valid=false result, not an error
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateCouponRequest true "Cart and coupon code"
// @Success 200 {object} resdto.ValidateCouponResponse
// @Failure 400 {object} map[string]string
// @Router /coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetAccountID(c); ok {
		userID = &id
	}

	result, err := h.couponUseCase.Validate(c.Request.Context(), commands.ValidateCouponParams{
		StoreID: req.StoreID,
		Code:    req.Code,
		Cart:    req.ToCart(),
		UserID:  userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidateCouponResult(result))
}

// @Summary Redeem coupon
// @Description Re-validate and append a redemption ledger row for an order
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RedeemCouponRequest true "Redemption request"
// @Success 200 {object} resdto.RedeemCouponResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /coupons/redeem [post]
func (h *CouponHandler) Redeem(c *gin.Context) {
	var req reqdto.RedeemCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetAccountID(c); ok {
		userID = &id
	}

	result, err := h.couponUseCase.Redeem(c.Request.Context(), commands.RedeemCouponParams{
		StoreID: req.StoreID,
		Code:    req.Code,
		Cart:    req.ToCart(),
		UserID:  userID,
		OrderID: req.OrderID,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon code not found"})
		case errors.Is(err, commands.ErrCouponRejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rejectionReason(err)})
		case errors.Is(err, commands.ErrRedemptionRecorded):
			c.JSON(http.StatusConflict, gin.H{"error": "Coupon already redeemed for this order"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromRedeemCouponResult(result))
}
