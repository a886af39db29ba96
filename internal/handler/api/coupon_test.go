//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"martcore/internal/domain/coupon"
	"martcore/internal/handler/api"
	reqdto "martcore/internal/handler/dto/request"
	resdto "martcore/internal/handler/dto/response"
	"martcore/internal/pkg/errs"
	"martcore/internal/usecase/commands"
	"martcore/internal/usecase/queries"
	"martcore/tests/common/httptest"
	commandsmock "martcore/tests/mock/commands"
	queriesmock "martcore/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CouponHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCouponCommands
	mockQueries  *queriesmock.MockCouponQueries
	handler      *api.CouponHandler
	storeID      uuid.UUID
}

func (s *CouponHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCouponCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCouponQueries(s.mockCtrl)
	s.handler = api.NewCouponHandler(s.mockCommands, s.mockQueries)
	s.storeID = uuid.New()

	// Mock middleware behavior for authenticated store routes
	withStore := func(c *gin.Context) {
		c.Set("store_id", s.storeID)
		c.Next()
	}
	s.router.POST("/coupons", withStore, s.handler.Create)
	s.router.GET("/coupons", withStore, s.handler.List)
	s.router.POST("/coupons/validate", s.handler.Validate)
	s.router.POST("/coupons/redeem", s.handler.Redeem)
}

func (s *CouponHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCouponHandlerSuite(t *testing.T) {
	suite.Run(t, new(CouponHandlerTestSuite))
}

func (s *CouponHandlerTestSuite) validateRequest() reqdto.ValidateCouponRequest {
	return reqdto.ValidateCouponRequest{
		StoreID: s.storeID,
		Code:    "SAVE10",
		Items: []reqdto.CartItemRequest{
			{ProductID: uuid.New(), SKU: "SKU001", Quantity: 2, UnitPrice: 100, TotalPrice: 200},
		},
		Subtotal: 200,
	}
}

func (s *CouponHandlerTestSuite) TestCreate() {
	url := "/coupons"
	reqBody := reqdto.CreateCouponRequest{
		Code: "SAVE10", Type: "percent", Value: 10, Active: true,
	}

	s.Run("success: returns 201 Created with the new id", func() {
		couponID := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody.ToParams(s.storeID)).
			Return(couponID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(couponID, response.ID)
	})

	s.Run("error: 400 Bad Request on binding failures", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing code", mutate: func(m map[string]any) { delete(m, "code") }},
			{name: "unknown type", mutate: func(m map[string]any) { m["type"] = "mystery" }},
			{name: "non-positive value", mutate: func(m map[string]any) { m["value"] = 0 }},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := map[string]any{
					"code": "SAVE10", "type": "percent", "value": 10.0, "active": true,
				}
				tc.mutate(requestMap)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 422 Unprocessable Entity on domain rejection", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid coupon definition")
	})
}

func (s *CouponHandlerTestSuite) TestList() {
	s.Run("success: returns the store's coupons", func() {
		views := []*queries.CouponView{
			{ID: uuid.New(), StoreID: s.storeID, Code: "SAVE10", Type: "percent", Value: 10, Active: true},
		}
		s.mockQueries.EXPECT().ListByStore(gomock.Any(), s.storeID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/coupons", nil, "")

		var response []*queries.CouponView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal("SAVE10", response[0].Code)
	})

	s.Run("error: 500 when the read store fails", func() {
		s.mockQueries.EXPECT().ListByStore(gomock.Any(), s.storeID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/coupons", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *CouponHandlerTestSuite) TestValidate() {
	url := "/coupons/validate"
	reqBody := s.validateRequest()

	s.Run("success: valid coupon returns the discount", func() {
		s.mockCommands.EXPECT().Validate(gomock.Any(), gomock.Any()).
			Return(&commands.ValidateCouponResult{
				Valid:          true,
				DiscountAmount: 20,
				CouponID:       uuid.New(),
				Code:           "SAVE10",
				Type:           coupon.TypePercent,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.ValidateCouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Valid)
		s.InDelta(20.00, response.DiscountAmount, 1e-9)
	})

	s.Run("success: failed gate is still a 200 with valid=false", func() {
		s.mockCommands.EXPECT().Validate(gomock.Any(), gomock.Any()).
			Return(&commands.ValidateCouponResult{
				Valid:  false,
				Reason: coupon.ReasonNotFound,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.ValidateCouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Valid)
		s.Equal(coupon.ReasonNotFound, response.Reason)
	})

	s.Run("error: 400 on empty cart", func() {
		empty := reqBody
		empty.Items = nil

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, empty, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *CouponHandlerTestSuite) TestRedeem() {
	url := "/coupons/redeem"
	orderID := uuid.New()
	reqBody := reqdto.RedeemCouponRequest{
		StoreID: s.storeID,
		Code:    "SAVE10",
		OrderID: orderID,
		Items: []reqdto.CartItemRequest{
			{ProductID: uuid.New(), SKU: "SKU001", Quantity: 2, UnitPrice: 100, TotalPrice: 200},
		},
		Subtotal: 200,
	}

	s.Run("success: returns the ledger row", func() {
		s.mockCommands.EXPECT().Redeem(gomock.Any(), gomock.Any()).
			Return(&commands.RedeemCouponResult{
				RedemptionID:   uuid.New(),
				CouponID:       uuid.New(),
				DiscountAmount: 20,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.RedeemCouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.InDelta(20.00, response.DiscountAmount, 1e-9)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown code",
				commandsError:  commands.ErrCouponNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Coupon code not found",
			},
			{
				name:           "rejected coupon carries the reason",
				commandsError:  errs.Mark(&coupon.RejectionError{Reason: "Minimum order value of 1000.00 required"}, commands.ErrCouponRejected),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Minimum order value",
			},
			{
				name:           "duplicate redemption",
				commandsError:  commands.ErrRedemptionRecorded,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already redeemed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Redeem(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
