package components

import (
	"bookswap/internal/infra/db"
	"bookswap/internal/infra/readstore"
	"bookswap/internal/infra/uow"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewRequestReadStore,
			fx.As(new(queries.RequestReadStore)),
		),
		fx.Annotate(
			readstore.NewExchangeReadStore,
			fx.As(new(queries.ExchangeReadStore)),
		),
		fx.Annotate(
			readstore.NewSuggestionReadStore,
			fx.As(new(queries.SuggestionReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
