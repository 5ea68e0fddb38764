package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/wichananm65/spaceship-store/internal/config"
	"github.com/wichananm65/spaceship-store/internal/database"
	"github.com/wichananm65/spaceship-store/internal/logkey"
	"github.com/wichananm65/spaceship-store/internal/web"
)

const usage = `usage: migrate [up|down|version]

  up       apply all pending migrations (default)
  down     roll back the most recent migration
  version  print the current schema version
`

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	slog.SetDefault(web.NewLogger(os.Stderr, cfg.LogLevel, "text"))

	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set")
		os.Exit(2)
	}

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	if err := run(cmd, cfg.DatabaseURL); err != nil {
		slog.Error("migration failed", slog.String("command", cmd), slog.String(logkey.Error, err.Error()))
		os.Exit(1)
	}
}

func run(cmd, databaseURL string) error {
	mg, err := database.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer mg.Close()

	switch cmd {
	case "up":
		if err := mg.Up(); err != nil {
			return err
		}
	case "down":
		if err := mg.Down(); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	v, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	slog.Info("schema version", slog.Uint64("version", uint64(v)), slog.Bool("dirty", dirty))
	return nil
}
