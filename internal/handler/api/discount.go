package api

import (
	"errors"
	"net/http"

	"martcore/internal/domain/autodiscount"
	reqdto "martcore/internal/handler/dto/request"
	resdto "martcore/internal/handler/dto/response"
	"martcore/internal/handler/middleware"
	"martcore/internal/usecase/commands"
	"martcore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DiscountHandler struct {
	discountUseCase commands.AutoDiscountCommands
	discountQueries queries.AutoDiscountQueries
}

func NewDiscountHandler(discountUseCase commands.AutoDiscountCommands, discountQueries queries.AutoDiscountQueries) *DiscountHandler {
	return &DiscountHandler{
		discountUseCase: discountUseCase,
		discountQueries: discountQueries,
	}
}

// @Summary Generate discount proposal
// @Description Convert a dead-stock alert into a pending discount proposal
// @Tags discounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.GenerateProposalRequest true "Proposal request"
// @Success 201 {object} resdto.GenerateProposalResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /discounts/proposals [post]
func (h *DiscountHandler) GenerateProposal(c *gin.Context) {
	storeID, ok := middleware.GetStoreID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.GenerateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.discountUseCase.GenerateProposal(c.Request.Context(), req.ToParams(storeID))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRuleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No active discount rule for this scope"})
		case errors.Is(err, commands.ErrAlertNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Dead stock alert not found"})
		case errors.Is(err, commands.ErrDuplicateProposal):
			c.JSON(http.StatusConflict, gin.H{"error": "A pending proposal already exists for this alert"})
		case errors.Is(err, commands.ErrIneligibleAlert):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ineligibleReason(err)})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid proposal request"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromGenerateProposalResult(result))
}

// @Summary List discount proposals
// @Description List the authenticated store's proposals, optionally filtered by status
// @Tags discounts
// @Produce json
// @Security BearerAuth
// @Param status query string false "Proposal status filter"
// @Success 200 {array} queries.ProposalView
// @Router /discounts/proposals [get]
func (h *DiscountHandler) ListProposals(c *gin.Context) {
	storeID, ok := middleware.GetStoreID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.discountQueries.ListProposals(c.Request.Context(), storeID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

func ineligibleReason(err error) string {
	var ineligible *autodiscount.IneligibleError
	if errors.As(err, &ineligible) {
		return ineligible.Reason
	}
	return "Alert is not eligible for a discount proposal"
}
