package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/cokeke26/cotizador/internal/app"
	"github.com/cokeke26/cotizador/internal/app/config"
	"github.com/cokeke26/cotizador/internal/infra/logging"
)

func main() {
	log := logging.New("cotizador", "info", "json")

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}
	log = logging.New("cotizador", cfg.LogLevel, cfg.LogFormat)

	if err := app.Run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}
