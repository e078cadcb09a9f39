package components

import (
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/config"
	"bookswap/internal/usecase"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.SuggestConfig {
		return cfg.Suggest
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRequestCommands,
		commands.NewExchangeCommands,
		commands.NewSuggestionCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRequestQueries,
		queries.NewExchangeQueries,
		queries.NewSuggestionQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
