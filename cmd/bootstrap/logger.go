package bootstrap

import (
	"log/slog"

	"go.uber.org/fx"

	"lessonbook/internal/handler/middleware"
	"lessonbook/internal/pkg/config"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
	fx.Invoke(slog.SetDefault),
)

func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
