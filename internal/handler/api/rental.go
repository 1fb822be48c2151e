package api

import (
	"errors"
	"net/http"

	"pos-backoffice/internal/handler/middleware"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/commands"
	"pos-backoffice/internal/usecase/queries"

	reqdto "pos-backoffice/internal/handler/dto/request"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RentalHandler struct {
	rentalCommands commands.RentalCommands
	rentalQueries  queries.RentalQueries
}

func NewRentalHandler(rentalCommands commands.RentalCommands, rentalQueries queries.RentalQueries) *RentalHandler {
	return &RentalHandler{
		rentalCommands: rentalCommands,
		rentalQueries:  rentalQueries,
	}
}

// @Summary Create rental
// @Description Check an item out to a customer, identified by phone number.
// @Description Rental stock is reserved immediately.
// @Tags rentals
// @Accept json
// @Produce json
// @Param X-Employee-ID header string false "Employee attribution"
// @Param request body reqdto.CreateRentalRequest true "Rental"
// @Success 201 {object} queries.RentalView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rentals [post]
func (h *RentalHandler) CreateRental(c *gin.Context) {
	var req reqdto.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.rentalCommands.Create(c.Request.Context(), commands.CreateRentalInput{
		CustomerPhone: req.CustomerPhone,
		ItemID:        req.ItemID,
		Quantity:      req.Quantity,
		EmployeeID:    middleware.GetEmployeeID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, errs.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock", "detail": insufficientStockDetail(err)})
		case errors.Is(err, errs.ErrInvalidPhoneNumber):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		case errors.Is(err, errs.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary Process return
// @Description Close a rental, release its stock and settle the late fee.
// @Description Returning twice fails without changing anything.
// @Tags rentals
// @Produce json
// @Param X-Employee-ID header string false "Employee attribution"
// @Param id path string true "Rental ID"
// @Success 200 {object} commands.ReturnResult
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rentals/{id}/return [post]
func (h *RentalHandler) ProcessReturn(c *gin.Context) {
	rentalID, ok := h.rentalID(c)
	if !ok {
		return
	}

	result, err := h.rentalCommands.ProcessReturn(c.Request.Context(), rentalID, middleware.GetEmployeeID(c))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRentalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
		case errors.Is(err, errs.ErrAlreadyReturned):
			c.JSON(http.StatusConflict, gin.H{"error": "Rental is already returned"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Get rental
// @Tags rentals
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} queries.RentalView
// @Failure 404 {object} map[string]string
// @Router /rentals/{id} [get]
func (h *RentalHandler) GetRental(c *gin.Context) {
	rentalID, ok := h.rentalID(c)
	if !ok {
		return
	}

	view, err := h.rentalQueries.GetByID(c.Request.Context(), rentalID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRentalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List rentals
// @Description List rentals for a customer phone number, outstanding ones
// @Description only by default, or every overdue rental with overdue=true
// @Tags rentals
// @Produce json
// @Param phone query string false "Customer phone number"
// @Param include_returned query bool false "Include returned rentals"
// @Param overdue query bool false "List overdue rentals instead"
// @Success 200 {array} queries.RentalView
// @Failure 400 {object} map[string]string
// @Router /rentals [get]
func (h *RentalHandler) ListRentals(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("overdue") == "true" {
		views, err := h.rentalQueries.ListOverdue(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, views)
		return
	}

	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a phone number or overdue=true"})
		return
	}

	var (
		views []queries.RentalView
		err   error
	)
	if c.Query("include_returned") == "true" {
		views, err = h.rentalQueries.ListByPhone(ctx, phone)
	} else {
		views, err = h.rentalQueries.ListOutstandingByPhone(ctx, phone)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *RentalHandler) rentalID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental ID format"})
		return uuid.Nil, false
	}
	return id, true
}
