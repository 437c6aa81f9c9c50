package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"finsight/internal/config"
	"finsight/internal/database"
	"finsight/internal/logger"

	"github.com/golang-migrate/migrate/v4"
)

const usage = "usage: migrate <up|down|version|force> [N]"

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	m, err := database.NewMigrate(cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer database.CloseMigrate(m)

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		log.Info("Migrations applied successfully")

	case "down":
		steps, err := stepArg(args, 1)
		if err != nil {
			return err
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Infof("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		log.Infof("Version: %d, Dirty: %v", version, dirty)

	case "force":
		if len(args) < 2 {
			return errors.New("force needs a version")
		}
		version, err := stepArg(args, 0)
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force failed: %w", err)
		}
		log.Infof("Forced version %d", version)

	default:
		return fmt.Errorf("unknown command: %s (%s)", args[0], usage)
	}

	return nil
}

// stepArg parses the optional numeric argument after the command.
func stepArg(args []string, fallback int) (int, error) {
	if len(args) < 2 {
		return fallback, nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count %q", args[1])
	}
	return n, nil
}
