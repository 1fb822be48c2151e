//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"pos-backoffice/internal/handler/api"
	"pos-backoffice/internal/handler/middleware"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/queries"
	"pos-backoffice/tests/common/httptest"
	commandsmock "pos-backoffice/tests/mock/commands"
	queriesmock "pos-backoffice/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SaleHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSaleCommands
	mockQueries  *queriesmock.MockSaleQueries
	handler      *api.SaleHandler
}

func (s *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.EmployeeContext())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSaleCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSaleQueries(s.mockCtrl)
	s.handler = api.NewSaleHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/sales", s.handler.OpenSale)
	s.router.GET("/sales", s.handler.ListSales)
	s.router.GET("/sales/:id", s.handler.GetSale)
	s.router.POST("/sales/:id/items", s.handler.AddItem)
	s.router.DELETE("/sales/:id/items/:item_id", s.handler.RemoveItem)
	s.router.POST("/sales/:id/coupon", s.handler.ApplyCoupon)
	s.router.POST("/sales/:id/finalize", s.handler.Finalize)
}

func (s *SaleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSaleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}

func draftView(id uuid.UUID) *queries.SaleView {
	return &queries.SaleView{
		ID:             id,
		Lines:          []queries.SaleLineView{},
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxAmount:      decimal.Zero,
		Total:          decimal.Zero,
		CreatedAt:      time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *SaleHandlerTestSuite) TestOpenSale() {
	s.Run("opens a draft with employee attribution", func() {
		employeeID := uuid.New()
		saleID := uuid.New()
		s.mockCommands.EXPECT().
			Open(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, got *uuid.UUID) (*queries.SaleView, error) {
				s.Require().NotNil(got)
				s.Equal(employeeID, *got)
				return draftView(saleID), nil
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales", nil, employeeID.String())

		var view queries.SaleView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &view)
		s.Equal(saleID, view.ID)
	})

	s.Run("opens anonymously without the header", func() {
		s.mockCommands.EXPECT().
			Open(gomock.Any(), gomock.Nil()).
			Return(draftView(uuid.New()), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales", nil, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, nil)
	})

	s.Run("rejects a malformed header", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales", nil, "not-a-uuid")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *SaleHandlerTestSuite) TestAddItem() {
	saleID := uuid.New()
	body := map[string]any{"item_id": 1, "quantity": 2}

	s.Run("adds a line", func() {
		s.mockCommands.EXPECT().
			AddItem(gomock.Any(), saleID, int64(1), 2).
			Return(draftView(saleID), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales/"+saleID.String()+"/items", body, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("unknown sale", func() {
		s.mockCommands.EXPECT().
			AddItem(gomock.Any(), saleID, int64(1), 2).
			Return(nil, errs.ErrSaleNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales/"+saleID.String()+"/items", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Sale not found")
	})

	s.Run("finalized sale", func() {
		s.mockCommands.EXPECT().
			AddItem(gomock.Any(), saleID, int64(1), 2).
			Return(nil, errs.ErrSaleAlreadyFinalized)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales/"+saleID.String()+"/items", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already finalized")
	})

	s.Run("rejects a zero quantity before the usecase", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
			"/sales/"+saleID.String()+"/items", map[string]any{"item_id": 1, "quantity": 0}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("rejects a malformed sale id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales/abc/items", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid sale ID format")
	})
}

func (s *SaleHandlerTestSuite) TestApplyCoupon() {
	saleID := uuid.New()

	s.Run("invalid coupon maps to 400", func() {
		s.mockCommands.EXPECT().
			ApplyCoupon(gomock.Any(), saleID, "EXPIRED").
			Return(nil, errs.ErrInvalidCoupon)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
			"/sales/"+saleID.String()+"/coupon", map[string]any{"code": "EXPIRED"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "coupon")
	})
}

func (s *SaleHandlerTestSuite) TestFinalize() {
	saleID := uuid.New()

	s.Run("finalizes the draft", func() {
		view := draftView(saleID)
		view.Finalized = true
		s.mockCommands.EXPECT().
			Finalize(gomock.Any(), saleID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales/"+saleID.String()+"/finalize", nil, "")

		var got queries.SaleView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.True(got.Finalized)
	})

	s.Run("empty draft maps to 422", func() {
		s.mockCommands.EXPECT().
			Finalize(gomock.Any(), saleID).
			Return(nil, errs.ErrEmptySale)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales/"+saleID.String()+"/finalize", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "no line items")
	})

	s.Run("insufficient stock maps to 409", func() {
		s.mockCommands.EXPECT().
			Finalize(gomock.Any(), saleID).
			Return(nil, errs.ErrInsufficientStock)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales/"+saleID.String()+"/finalize", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Insufficient stock")
	})
}

func (s *SaleHandlerTestSuite) TestListSales() {
	s.Run("by employee", func() {
		employeeID := uuid.New()
		s.mockQueries.EXPECT().
			ListByEmployee(gomock.Any(), employeeID).
			Return([]queries.SaleView{*draftView(uuid.New())}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sales?employee_id="+employeeID.String(), nil, "")

		var views []queries.SaleView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &views)
		s.Len(views, 1)
	})

	s.Run("by date range", func() {
		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().
			ListByDateRange(gomock.Any(), from, to).
			Return([]queries.SaleView{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/sales?from=2025-03-01T00:00:00Z&to=2025-03-02T00:00:00Z", nil, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("missing filters", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sales", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "employee_id or a from/to range")
	})
}
