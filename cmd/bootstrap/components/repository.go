package components

import (
	"lessonbook/internal/infra/readstore"
	repo_impl "lessonbook/internal/infra/repository"
	"lessonbook/internal/usecase/commands"
	"lessonbook/internal/usecase/queries"
	"lessonbook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewTxBeginner,
		fx.Annotate(
			repo_impl.NewLessonRepository,
			fx.As(new(commands.LessonRepository)),
		),
		fx.Annotate(
			repo_impl.NewOrderRepository,
			fx.As(new(commands.OrderRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewLessonReadStore,
			fx.As(new(queries.LessonReadStore)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
	),
)

func NewTxBeginner(pool *pgxpool.Pool) shared.TxBeginner {
	return pool
}
