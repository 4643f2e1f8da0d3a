// Command migrate applies the embedded goose migrations. Usage:
//
//	migrate [up|down|status]
package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/cokeke26/cotizador/internal/app/config"
	"github.com/cokeke26/cotizador/internal/infra/db/migrations"
	"github.com/cokeke26/cotizador/internal/infra/logging"
)

func main() {
	log := logging.New("migrate", "info", "console")

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Error().Err(err).Msg("open database")
		os.Exit(1)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Error().Err(err).Msg("set dialect")
		os.Exit(1)
	}

	ctx := context.Background()
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	default:
		log.Error().Str("command", command).Msg("unknown command")
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("migration failed")
		os.Exit(1)
	}
	log.Info().Str("command", command).Msg("migrations done")
}
