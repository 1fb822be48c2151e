//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/handler/api"
	"pos-backoffice/internal/handler/middleware"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/commands"
	"pos-backoffice/internal/usecase/queries"
	"pos-backoffice/tests/common/httptest"
	commandsmock "pos-backoffice/tests/mock/commands"
	queriesmock "pos-backoffice/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ItemHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockInventoryCommands
	mockQueries  *queriesmock.MockItemQueries
	handler      *api.ItemHandler
}

func (s *ItemHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.EmployeeContext())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockInventoryCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockItemQueries(s.mockCtrl)
	s.handler = api.NewItemHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/items", s.handler.CreateItem)
	s.router.GET("/items", s.handler.ListItems)
	s.router.GET("/items/:id", s.handler.GetItem)
	s.router.DELETE("/items/:id", s.handler.DeleteItem)
	s.router.PATCH("/items/:id/stock", s.handler.AdjustStock)
}

func (s *ItemHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestItemHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ItemHandlerTestSuite))
}

func chessSetView() *queries.ItemView {
	return &queries.ItemView{
		ID:          1,
		Name:        "Chess Set",
		Price:       decimal.RequireFromString("19.99"),
		StockSale:   5,
		StockRental: 3,
		ItemType:    "Both",
	}
}

func (s *ItemHandlerTestSuite) TestCreateItem() {
	body := map[string]any{
		"id": 1, "name": "Chess Set", "price": "19.99",
		"stock_sale": 5, "stock_rental": 3, "item_type": "Both",
	}

	s.Run("registers the item", func() {
		s.mockCommands.EXPECT().
			CreateItem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, input commands.CreateItemInput) (*queries.ItemView, error) {
				s.Equal(int64(1), input.ID)
				s.Equal("Chess Set", input.Name)
				s.Equal("Both", input.ItemType)
				return chessSetView(), nil
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items", body, "")

		var view queries.ItemView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &view)
		s.Equal("Chess Set", view.Name)
	})

	s.Run("duplicate id maps to 409", func() {
		s.mockCommands.EXPECT().
			CreateItem(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrItemAlreadyExists)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already exists")
	})

	s.Run("missing fields fail binding", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items", map[string]any{"id": 1}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *ItemHandlerTestSuite) TestAdjustStock() {
	body := map[string]any{"pool": "sale", "quantity": 2, "decrease": true}

	s.Run("adjusts the pool counter", func() {
		s.mockCommands.EXPECT().
			AdjustStock(gomock.Any(), commands.AdjustStockInput{
				ItemID: 1, Pool: item.PoolSale, Quantity: 2, Decrease: true,
			}).
			Return(chessSetView(), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/items/1/stock", body, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("insufficient stock maps to 409", func() {
		s.mockCommands.EXPECT().
			AdjustStock(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInsufficientStock)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/items/1/stock", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Insufficient stock")
	})

	s.Run("unknown item maps to 404", func() {
		s.mockCommands.EXPECT().
			AdjustStock(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrItemNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/items/99/stock", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Item not found")
	})
}

func (s *ItemHandlerTestSuite) TestGetAndDelete() {
	s.Run("get by id", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(chessSetView(), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items/1", nil, "")

		var view queries.ItemView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
		s.Equal(int64(1), view.ID)
	})

	s.Run("malformed id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items/abc", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid item ID format")
	})

	s.Run("delete", func() {
		s.mockCommands.EXPECT().
			DeleteItem(gomock.Any(), int64(1)).
			Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/items/1", nil, "")
		s.Equal(http.StatusNoContent, w.Code)
	})
}

func (s *ItemHandlerTestSuite) TestListItems() {
	s.Run("search filter", func() {
		s.mockQueries.EXPECT().
			Search(gomock.Any(), "chess").
			Return([]queries.ItemView{*chessSetView()}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items?search=chess", nil, "")

		var views []queries.ItemView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &views)
		s.Len(views, 1)
	})

	s.Run("availability filter", func() {
		s.mockQueries.EXPECT().
			ListAvailable(gomock.Any(), item.PoolRental).
			Return([]queries.ItemView{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items?available_for=rental", nil, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("invalid pool", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items?available_for=bulk", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid pool")
	})

	s.Run("low stock filter", func() {
		s.mockQueries.EXPECT().
			ListLowStock(gomock.Any(), 5).
			Return([]queries.ItemView{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items?low_stock=5", nil, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})
}
