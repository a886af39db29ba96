package api

import (
	"errors"
	"net/http"

	reqdto "martcore/internal/handler/dto/request"
	resdto "martcore/internal/handler/dto/response"
	"martcore/internal/handler/middleware"
	"martcore/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase commands.AuthCommands
}

func NewAuthHandler(authUseCase commands.AuthCommands) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// @Summary Login
// @Description Authenticate an operator or customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.authUseCase.Login(c.Request.Context(), commands.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, commands.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary Current account
// @Description Return the authenticated account's identity
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.MeResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	storeID, _ := middleware.GetStoreID(c)
	role, _ := middleware.GetRole(c)

	c.JSON(http.StatusOK, resdto.MeResponse{
		AccountID: accountID,
		StoreID:   storeID,
		Role:      role.String(),
	})
}
