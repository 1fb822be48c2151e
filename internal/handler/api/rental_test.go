//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"pos-backoffice/internal/handler/api"
	"pos-backoffice/internal/handler/middleware"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/commands"
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

type RentalHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRentalCommands
	mockQueries  *queriesmock.MockRentalQueries
	handler      *api.RentalHandler
}

func (s *RentalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.EmployeeContext())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRentalCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRentalQueries(s.mockCtrl)
	s.handler = api.NewRentalHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/rentals", s.handler.CreateRental)
	s.router.GET("/rentals", s.handler.ListRentals)
	s.router.GET("/rentals/:id", s.handler.GetRental)
	s.router.POST("/rentals/:id/return", s.handler.ProcessReturn)
}

func (s *RentalHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRentalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RentalHandlerTestSuite))
}

func rentalView(id uuid.UUID) *queries.RentalView {
	return &queries.RentalView{
		ID:            id,
		CustomerPhone: "0812345678",
		ItemID:        7,
		ItemName:      "Drill",
		Quantity:      1,
		UnitPrice:     decimal.RequireFromString("25.00"),
		RentalDate:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		LateFee:       decimal.Zero,
	}
}

func (s *RentalHandlerTestSuite) TestCreateRental() {
	body := map[string]any{"customer_phone": "0812345678", "item_id": 7, "quantity": 1}

	s.Run("creates a rental", func() {
		rentalID := uuid.New()
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, input commands.CreateRentalInput) (*queries.RentalView, error) {
				s.Equal("0812345678", input.CustomerPhone)
				s.Equal(int64(7), input.ItemID)
				s.Equal(1, input.Quantity)
				return rentalView(rentalID), nil
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rentals", body, "")

		var view queries.RentalView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &view)
		s.Equal(rentalID, view.ID)
		s.False(view.IsReturned)
	})

	s.Run("out of rental stock", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInsufficientStock)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rentals", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Insufficient stock")
	})

	s.Run("bad phone number", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInvalidPhoneNumber)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rentals", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "phone")
	})

	s.Run("missing body fields", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rentals", map[string]any{"item_id": 7}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *RentalHandlerTestSuite) TestProcessReturn() {
	rentalID := uuid.New()

	s.Run("settles the return", func() {
		returned := rentalView(rentalID)
		returned.IsReturned = true
		s.mockCommands.EXPECT().
			ProcessReturn(gomock.Any(), rentalID, gomock.Nil()).
			Return(&commands.ReturnResult{
				Rental:   returned,
				DaysLate: 2,
				LateFee:  decimal.RequireFromString("5.00"),
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rentals/"+rentalID.String()+"/return", nil, "")

		var result commands.ReturnResult
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &result)
		s.Equal(2, result.DaysLate)
		s.True(result.LateFee.Equal(decimal.RequireFromString("5.00")))
	})

	s.Run("already returned", func() {
		s.mockCommands.EXPECT().
			ProcessReturn(gomock.Any(), rentalID, gomock.Nil()).
			Return(nil, errs.ErrAlreadyReturned)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rentals/"+rentalID.String()+"/return", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already returned")
	})

	s.Run("unknown rental", func() {
		s.mockCommands.EXPECT().
			ProcessReturn(gomock.Any(), rentalID, gomock.Nil()).
			Return(nil, errs.ErrRentalNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rentals/"+rentalID.String()+"/return", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Rental not found")
	})
}

func (s *RentalHandlerTestSuite) TestListRentals() {
	s.Run("outstanding by phone", func() {
		s.mockQueries.EXPECT().
			ListOutstandingByPhone(gomock.Any(), "0812345678").
			Return([]queries.RentalView{*rentalView(uuid.New())}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rentals?phone=0812345678", nil, "")

		var views []queries.RentalView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &views)
		s.Len(views, 1)
	})

	s.Run("full history", func() {
		s.mockQueries.EXPECT().
			ListByPhone(gomock.Any(), "0812345678").
			Return([]queries.RentalView{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rentals?phone=0812345678&include_returned=true", nil, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("overdue", func() {
		s.mockQueries.EXPECT().
			ListOverdue(gomock.Any()).
			Return([]queries.RentalView{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rentals?overdue=true", nil, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("no filter", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rentals", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "phone number")
	})
}
