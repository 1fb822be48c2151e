package components

import (
	"pos-backoffice/internal/pkg/clock"
	"pos-backoffice/internal/usecase/commands"
	"pos-backoffice/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewInventoryCommands,
		commands.NewSaleCommands,
		commands.NewRentalCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewItemQueries,
		queries.NewSaleQueries,
		queries.NewRentalQueries,
		queries.NewCustomerQueries,
	),
)
