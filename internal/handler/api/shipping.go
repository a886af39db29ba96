package api

import (
	"errors"
	"net/http"

	"martcore/internal/domain/shipping"
	reqdto "martcore/internal/handler/dto/request"
	resdto "martcore/internal/handler/dto/response"
	"martcore/internal/handler/middleware"
	"martcore/internal/usecase/commands"
	"martcore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShippingHandler struct {
	shippingUseCase commands.ShippingCommands
	shippingQueries queries.ShippingQueries
}

func NewShippingHandler(shippingUseCase commands.ShippingCommands, shippingQueries queries.ShippingQueries) *ShippingHandler {
	return &ShippingHandler{
		shippingUseCase: shippingUseCase,
		shippingQueries: shippingQueries,
	}
}

// @Summary Create shipping zone
// @Description Create a serviceability zone for the authenticated store
// @Tags shipping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateZoneRequest true "Zone definition"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /shipping/zones [post]
func (h *ShippingHandler) CreateZone(c *gin.Context) {
	storeID, ok := middleware.GetStoreID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.shippingUseCase.CreateZone(c.Request.Context(), req.ToParams(storeID))
	if err != nil {
		if errors.Is(err, commands.ErrDomainValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid zone definition"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List shipping zones
// @Tags shipping
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.ZoneView
// @Router /shipping/zones [get]
func (h *ShippingHandler) ListZones(c *gin.Context) {
	storeID, ok := middleware.GetStoreID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.shippingQueries.ListZones(c.Request.Context(), storeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Create rate slab
// @Description Add a rate slab to a zone; slabs of the same type must not overlap
// @Tags shipping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param zoneId path string true "Zone ID"
// @Param request body reqdto.CreateRateRequest true "Rate slab definition"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /shipping/zones/{zoneId}/rates [post]
func (h *ShippingHandler) CreateRate(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("zoneId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone ID format"})
		return
	}

	var req reqdto.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.shippingUseCase.CreateRate(c.Request.Context(), req.ToParams(zoneID))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrZoneNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipping zone not found"})
		case errors.Is(err, commands.ErrSlabOverlap):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": overlapMessage(err)})
		case errors.Is(err, commands.ErrSlabConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Concurrent rate creation conflict, retry with fresh data"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid rate slab definition"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List rate slabs
// @Tags shipping
// @Produce json
// @Security BearerAuth
// @Param zoneId path string true "Zone ID"
// @Success 200 {array} queries.RateView
// @Router /shipping/zones/{zoneId}/rates [get]
func (h *ShippingHandler) ListRates(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("zoneId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone ID format"})
		return
	}

	views, err := h.shippingQueries.ListRates(c.Request.Context(), zoneID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Quote shipping
// @Description Resolve a destination and measurement to a shipping quote without placing an order
// @Tags shipping
// @Accept json
// @Produce json
// @Param request body reqdto.RateQuoteRequest true "Quote request"
// @Success 200 {object} queries.RateQuoteView
// @Failure 400 {object} map[string]string
// @Router /shipping/quote [post]
func (h *ShippingHandler) Quote(c *gin.Context) {
	var req reqdto.RateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.shippingQueries.QuoteRate(c.Request.Context(), req.ToParams())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func overlapMessage(err error) string {
	var overlap *shipping.OverlapError
	if errors.As(err, &overlap) {
		return overlap.Error()
	}
	return "Rate slab overlaps an existing slab"
}
