//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"pos-backoffice/internal/handler/api"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/queries"
	"pos-backoffice/tests/common/httptest"
	queriesmock "pos-backoffice/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CustomerHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockCustomerQueries
	handler     *api.CustomerHandler
}

func (s *CustomerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockCustomerQueries(s.mockCtrl)
	s.handler = api.NewCustomerHandler(s.mockQueries)

	s.router.GET("/customers", s.handler.ListCustomers)
}

func (s *CustomerHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCustomerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerHandlerTestSuite))
}

func customerView(phone string, outstanding int) queries.CustomerView {
	return queries.CustomerView{
		ID:                 uuid.New(),
		PhoneNumber:        phone,
		OutstandingRentals: outstanding,
		CreatedAt:          time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *CustomerHandlerTestSuite) TestListCustomers() {
	s.Run("lists every customer", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any()).
			Return([]queries.CustomerView{
				customerView("0811111111", 2),
				customerView("0822222222", 0),
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/customers", nil, "")

		var views []queries.CustomerView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &views)
		s.Require().Len(views, 2)
		s.Equal("0811111111", views[0].PhoneNumber)
		s.Equal(2, views[0].OutstandingRentals)
	})

	s.Run("outstanding filter queries open rentals only", func() {
		s.mockQueries.EXPECT().
			ListWithOutstandingRentals(gomock.Any()).
			Return([]queries.CustomerView{customerView("0811111111", 1)}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/customers?outstanding=true", nil, "")

		var views []queries.CustomerView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &views)
		s.Require().Len(views, 1)
		s.Equal(1, views[0].OutstandingRentals)
	})

	s.Run("read failure maps to 500", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any()).
			Return(nil, errs.ErrDatabaseOperationFailed)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/customers", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal server error")
	})
}
