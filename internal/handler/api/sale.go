package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pos-backoffice/internal/handler/middleware"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/commands"
	"pos-backoffice/internal/usecase/queries"

	reqdto "pos-backoffice/internal/handler/dto/request"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SaleHandler struct {
	saleCommands commands.SaleCommands
	saleQueries  queries.SaleQueries
}

func NewSaleHandler(saleCommands commands.SaleCommands, saleQueries queries.SaleQueries) *SaleHandler {
	return &SaleHandler{
		saleCommands: saleCommands,
		saleQueries:  saleQueries,
	}
}

// @Summary Open sale
// @Description Open an empty draft sale
// @Tags sales
// @Produce json
// @Param X-Employee-ID header string false "Employee attribution"
// @Success 201 {object} queries.SaleView
// @Router /sales [post]
func (h *SaleHandler) OpenSale(c *gin.Context) {
	view, err := h.saleCommands.Open(c.Request.Context(), middleware.GetEmployeeID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary Add item to sale
// @Description Add quantity of an item to a draft. Stock is not reserved
// @Description until finalize; the availability check here is advisory.
// @Tags sales
// @Accept json
// @Produce json
// @Param id path string true "Sale ID"
// @Param request body reqdto.AddSaleItemRequest true "Line"
// @Success 200 {object} queries.SaleView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sales/{id}/items [post]
func (h *SaleHandler) AddItem(c *gin.Context) {
	saleID, ok := h.saleID(c)
	if !ok {
		return
	}

	var req reqdto.AddSaleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.saleCommands.AddItem(c.Request.Context(), saleID, req.ItemID, req.Quantity)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Remove item from sale
// @Tags sales
// @Produce json
// @Param id path string true "Sale ID"
// @Param item_id path int true "Item ID"
// @Success 200 {object} queries.SaleView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sales/{id}/items/{item_id} [delete]
func (h *SaleHandler) RemoveItem(c *gin.Context) {
	saleID, ok := h.saleID(c)
	if !ok {
		return
	}
	itemID, ok := pathInt64(c, "item_id")
	if !ok {
		return
	}

	view, err := h.saleCommands.RemoveItem(c.Request.Context(), saleID, itemID)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Apply coupon
// @Description Apply a percentage coupon to the draft, replacing any prior one
// @Tags sales
// @Accept json
// @Produce json
// @Param id path string true "Sale ID"
// @Param request body reqdto.ApplyCouponRequest true "Coupon"
// @Success 200 {object} queries.SaleView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sales/{id}/coupon [post]
func (h *SaleHandler) ApplyCoupon(c *gin.Context) {
	saleID, ok := h.saleID(c)
	if !ok {
		return
	}

	var req reqdto.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.saleCommands.ApplyCoupon(c.Request.Context(), saleID, req.Code)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Finalize sale
// @Description Reserve stock for every line and close the sale. Fails as a
// @Description whole when any line lacks stock; the draft stays retryable.
// @Tags sales
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} queries.SaleView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sales/{id}/finalize [post]
func (h *SaleHandler) Finalize(c *gin.Context) {
	saleID, ok := h.saleID(c)
	if !ok {
		return
	}

	view, err := h.saleCommands.Finalize(c.Request.Context(), saleID)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get sale
// @Tags sales
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} queries.SaleView
// @Failure 404 {object} map[string]string
// @Router /sales/{id} [get]
func (h *SaleHandler) GetSale(c *gin.Context) {
	saleID, ok := h.saleID(c)
	if !ok {
		return
	}

	view, err := h.saleQueries.GetByID(c.Request.Context(), saleID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrSaleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List sales
// @Description List sales by employee or by creation date range
// @Tags sales
// @Produce json
// @Param employee_id query string false "Employee ID"
// @Param from query string false "Range start (RFC 3339)"
// @Param to query string false "Range end (RFC 3339)"
// @Success 200 {array} queries.SaleView
// @Failure 400 {object} map[string]string
// @Router /sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	ctx := c.Request.Context()

	if employeeParam := c.Query("employee_id"); employeeParam != "" {
		employeeID, err := uuid.Parse(employeeParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID format"})
			return
		}
		views, err := h.saleQueries.ListByEmployee(ctx, employeeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, views)
		return
	}

	from, okFrom := parseTimeQuery(c, "from")
	to, okTo := parseTimeQuery(c, "to")
	if !okFrom || !okTo {
		return
	}
	if from.IsZero() || to.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide employee_id or a from/to range"})
		return
	}

	views, err := h.saleQueries.ListByDateRange(ctx, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *SaleHandler) respondSaleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
	case errors.Is(err, errs.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.Is(err, errs.ErrSaleAlreadyFinalized):
		c.JSON(http.StatusConflict, gin.H{"error": "Sale is already finalized"})
	case errors.Is(err, errs.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock", "detail": insufficientStockDetail(err)})
	case errors.Is(err, errs.ErrEmptySale):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Sale has no line items"})
	case errors.Is(err, errs.ErrInvalidCoupon):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or inactive coupon"})
	case errors.Is(err, errs.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *SaleHandler) saleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func pathInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return 0, false
	}
	return v, true
}

func parseTimeQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format, expected RFC 3339"})
		return time.Time{}, false
	}
	return t, true
}
