// Command fixroles backfills missing user roles and promotes the
// configured admin email. Run it once against a legacy database.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"notesmanager/config"
	"notesmanager/logging"
	"notesmanager/migrations"
	"notesmanager/repository"
	"notesmanager/utils"
)

func main() {
	if err := run(); err != nil {
		slog.Error("role migration failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load[config.MigrationConfig]()
	if err != nil {
		return err
	}
	if _, err := logging.Init(os.Stdout, cfg.App.LogLevel, cfg.App.Pretty); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := utils.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Warn("disconnect mongodb", slog.Any("error", err))
		}
	}()
	slog.Info("connected to mongodb", slog.String("db", cfg.Mongo.Database))

	users := repository.NewUserRepo(client.Database(cfg.Mongo.Database))
	if _, err := migrations.FixRoles(ctx, users, cfg.AdminEmail); err != nil {
		return err
	}

	slog.Info("role migration completed")
	return nil
}
