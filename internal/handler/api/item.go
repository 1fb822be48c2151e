package api

import (
	"errors"
	"net/http"
	"strconv"

	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/commands"
	"pos-backoffice/internal/usecase/queries"

	reqdto "pos-backoffice/internal/handler/dto/request"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	inventoryCommands commands.InventoryCommands
	itemQueries       queries.ItemQueries
}

func NewItemHandler(inventoryCommands commands.InventoryCommands, itemQueries queries.ItemQueries) *ItemHandler {
	return &ItemHandler{
		inventoryCommands: inventoryCommands,
		itemQueries:       itemQueries,
	}
}

// @Summary Register item
// @Description Register a new catalog item with its starting stock
// @Tags items
// @Accept json
// @Produce json
// @Param request body reqdto.CreateItemRequest true "Item"
// @Success 201 {object} queries.ItemView
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.inventoryCommands.CreateItem(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Item already exists"})
		case errors.Is(err, errs.ErrInvalidItem):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid item"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary Delete item
// @Tags items
// @Param id path int true "Item ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	if err := h.inventoryCommands.DeleteItem(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Adjust stock
// @Description Restock or remove stock from one pool counter
// @Tags items
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body reqdto.AdjustStockRequest true "Adjustment"
// @Success 200 {object} queries.ItemView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /items/{id}/stock [patch]
func (h *ItemHandler) AdjustStock(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req reqdto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.inventoryCommands.AdjustStock(c.Request.Context(), req.ToInput(id))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, errs.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock", "detail": insufficientStockDetail(err)})
		case errors.Is(err, errs.ErrInvalidQuantity), errors.Is(err, errs.ErrInvalidItem):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid adjustment"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get item
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} queries.ItemView
// @Failure 404 {object} map[string]string
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	view, err := h.itemQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List items
// @Description List the catalog, optionally filtered by name search, pool
// @Description availability or low total stock
// @Tags items
// @Produce json
// @Param search query string false "Name substring"
// @Param available_for query string false "Pool (sale or rental)"
// @Param low_stock query int false "Low stock threshold"
// @Success 200 {array} queries.ItemView
// @Router /items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		views []queries.ItemView
		err   error
	)
	switch {
	case c.Query("search") != "":
		views, err = h.itemQueries.Search(ctx, c.Query("search"))
	case c.Query("available_for") != "":
		pool := item.Pool(c.Query("available_for"))
		if !pool.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pool"})
			return
		}
		views, err = h.itemQueries.ListAvailable(ctx, pool)
	case c.Query("low_stock") != "":
		threshold, convErr := strconv.Atoi(c.Query("low_stock"))
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid low stock threshold"})
			return
		}
		views, err = h.itemQueries.ListLowStock(ctx, threshold)
	default:
		views, err = h.itemQueries.List(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ItemHandler) itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return 0, false
	}
	return id, true
}

func insufficientStockDetail(err error) gin.H {
	var stockErr *item.InsufficientStockError
	if errors.As(err, &stockErr) {
		return gin.H{"item_id": stockErr.ItemID, "pool": string(stockErr.Pool)}
	}
	return nil
}
