package api

import (
	"net/http"

	"pos-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerQueries queries.CustomerQueries
}

func NewCustomerHandler(customerQueries queries.CustomerQueries) *CustomerHandler {
	return &CustomerHandler{customerQueries: customerQueries}
}

// @Summary List customers
// @Description List customers, optionally only those holding unreturned rentals
// @Tags customers
// @Produce json
// @Param outstanding query bool false "Only customers with outstanding rentals"
// @Success 200 {array} queries.CustomerView
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		views []queries.CustomerView
		err   error
	)
	if c.Query("outstanding") == "true" {
		views, err = h.customerQueries.ListWithOutstandingRentals(ctx)
	} else {
		views, err = h.customerQueries.List(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}
