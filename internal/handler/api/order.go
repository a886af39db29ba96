package api

import (
	"errors"
	"net/http"

	"martcore/internal/domain/order"
	reqdto "martcore/internal/handler/dto/request"
	resdto "martcore/internal/handler/dto/response"
	"martcore/internal/handler/middleware"
	"martcore/internal/usecase/commands"
	"martcore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderUseCase commands.OrderCommands
	orderQueries queries.OrderQueries
}

func NewOrderHandler(orderUseCase commands.OrderCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
		orderQueries: orderQueries,
	}
}

// @Summary Get order
// @Description Get an order with its frozen pricing snapshots
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} queries.OrderView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List store orders
// @Description List the authenticated store's orders, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.OrderView
// @Failure 401 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	storeID, ok := middleware.GetStoreID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.orderQueries.ListByStore(c.Request.Context(), storeID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Transition order
// @Description Move an order along the forward lifecycle path
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.TransitionOrderRequest true "Target status"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders/{id}/transition [post]
func (h *OrderHandler) Transition(c *gin.Context) {
	id, actor, ok := h.bindMutation(c)
	if !ok {
		return
	}

	var body reqdto.TransitionOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.orderUseCase.Transition(c.Request.Context(), commands.TransitionParams{
		OrderID: id,
		To:      order.Status(body.To),
		Actor:   actor,
	})
	h.respondMutation(c, result, err)
}

// @Summary Cancel order
// @Description Cancel an order before it ships
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.CancelOrderRequest true "Cancellation reason"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, actor, ok := h.bindMutation(c)
	if !ok {
		return
	}

	var body reqdto.CancelOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.orderUseCase.Cancel(c.Request.Context(), commands.CancelParams{
		OrderID: id,
		Actor:   actor,
		Reason:  body.Reason,
	})
	h.respondMutation(c, result, err)
}

// @Summary Return order
// @Description Request a return for a delivered order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.ReturnOrderRequest true "Return reason"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders/{id}/return [post]
func (h *OrderHandler) Return(c *gin.Context) {
	id, actor, ok := h.bindMutation(c)
	if !ok {
		return
	}

	var body reqdto.ReturnOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.orderUseCase.Return(c.Request.Context(), commands.ReturnParams{
		OrderID: id,
		Actor:   actor,
		Reason:  body.Reason,
	})
	h.respondMutation(c, result, err)
}

func (h *OrderHandler) bindMutation(c *gin.Context) (uuid.UUID, order.Actor, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return uuid.Nil, order.Actor{}, false
	}

	role, ok := middleware.GetRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, order.Actor{}, false
	}
	actor := order.Actor{Role: role}
	if accountID, ok := middleware.GetAccountID(c); ok {
		actor.ID = &accountID
	}
	return id, actor, true
}

func (h *OrderHandler) respondMutation(c *gin.Context, result *commands.TransitionResult, err error) {
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, commands.ErrIllegalTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": transitionMessage(err)})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target status"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransitionResult(result))
}

// transitionMessage surfaces both ends of a rejected transition so the
// client can render an actionable message.
func transitionMessage(err error) string {
	var illegal *order.IllegalTransitionError
	if errors.As(err, &illegal) {
		return illegal.Error()
	}
	if errors.Is(err, order.ErrNotCancellable) {
		return order.ErrNotCancellable.Error()
	}
	if errors.Is(err, order.ErrNotReturnable) {
		return order.ErrNotReturnable.Error()
	}
	return "Illegal order status transition"
}
