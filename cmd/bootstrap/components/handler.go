package components

import (
	"pos-backoffice/internal/handler"
	"pos-backoffice/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewItemHandler,
		api.NewSaleHandler,
		api.NewRentalHandler,
		api.NewCustomerHandler,
	),
	fx.Invoke(handler.NewRouter),
)
