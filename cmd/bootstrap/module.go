package bootstrap

import (
	"pos-backoffice/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	EngineModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
