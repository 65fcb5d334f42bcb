// Command server runs the postboard HTTP API.
package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/99minutos/postboard/internal/pkg/config"
	"github.com/99minutos/postboard/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "postboard",
	})

	fx.New(
		fx.Supply(cfg),
		fx.WithLogger(func() fxevent.Logger {
			return &fxLogger{log: logger.For(logger.Get(), "fx")}
		}),
		injectInfra(),
		injectRepo(),
		injectService(),
		injectDelivery(),
		fx.Invoke(startServer),
	).Run()
}
