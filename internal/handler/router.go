package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pos-backoffice/internal/handler/api"
	"pos-backoffice/internal/handler/middleware"
	"pos-backoffice/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, itemHandler *api.ItemHandler, saleHandler *api.SaleHandler, rentalHandler *api.RentalHandler, customerHandler *api.CustomerHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, itemHandler, saleHandler, rentalHandler, customerHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
	engine.Use(middleware.EmployeeContext())
}

func setupRoutes(engine *gin.Engine, itemHandler *api.ItemHandler, saleHandler *api.SaleHandler, rentalHandler *api.RentalHandler, customerHandler *api.CustomerHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		items := apiGroup.Group("/items")
		{
			addRoutes(items, []route{
				{Method: http.MethodPost, Path: "", Handler: itemHandler.CreateItem},
				{Method: http.MethodGet, Path: "", Handler: itemHandler.ListItems},
				{Method: http.MethodGet, Path: "/:id", Handler: itemHandler.GetItem},
				{Method: http.MethodDelete, Path: "/:id", Handler: itemHandler.DeleteItem},
				{Method: http.MethodPatch, Path: "/:id/stock", Handler: itemHandler.AdjustStock},
			})
		}

		sales := apiGroup.Group("/sales")
		{
			addRoutes(sales, []route{
				{Method: http.MethodPost, Path: "", Handler: saleHandler.OpenSale},
				{Method: http.MethodGet, Path: "", Handler: saleHandler.ListSales},
				{Method: http.MethodGet, Path: "/:id", Handler: saleHandler.GetSale},
				{Method: http.MethodPost, Path: "/:id/items", Handler: saleHandler.AddItem},
				{Method: http.MethodDelete, Path: "/:id/items/:item_id", Handler: saleHandler.RemoveItem},
				{Method: http.MethodPost, Path: "/:id/coupon", Handler: saleHandler.ApplyCoupon},
				{Method: http.MethodPost, Path: "/:id/finalize", Handler: saleHandler.Finalize},
			})
		}

		rentals := apiGroup.Group("/rentals")
		{
			addRoutes(rentals, []route{
				{Method: http.MethodPost, Path: "", Handler: rentalHandler.CreateRental},
				{Method: http.MethodGet, Path: "", Handler: rentalHandler.ListRentals},
				{Method: http.MethodGet, Path: "/:id", Handler: rentalHandler.GetRental},
				{Method: http.MethodPost, Path: "/:id/return", Handler: rentalHandler.ProcessReturn},
			})
		}

		customers := apiGroup.Group("/customers")
		{
			addRoutes(customers, []route{
				{Method: http.MethodGet, Path: "", Handler: customerHandler.ListCustomers},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
