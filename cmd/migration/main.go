// Command migration applies the SQL files under db/migrations with
// golang-migrate. It reads DB_URL and MIGRATIONS_DIR from the environment.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/cricket-fantasy/internal/config"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
)

type command struct {
	args string
	run  func(m *migrate.Migrate, args []string, logger *logging.Logger) error
}

var commands = map[string]command{
	"up": {run: func(m *migrate.Migrate, _ []string, logger *logging.Logger) error {
		return logChange(logger, m.Up(), "migrations applied")
	}},
	"down": {args: "[steps]", run: func(m *migrate.Migrate, args []string, logger *logging.Logger) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("down steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}
		return logChange(logger, m.Steps(-steps), "migrations rolled back", "steps", steps)
	}},
	"goto": {args: "<version>", run: func(m *migrate.Migrate, args []string, logger *logging.Logger) error {
		version, err := versionArg(args)
		if err != nil {
			return err
		}
		return logChange(logger, m.Migrate(version), "migrated", "version", version)
	}},
	"force": {args: "<version>", run: func(m *migrate.Migrate, args []string, logger *logging.Logger) error {
		version, err := versionArg(args)
		if err != nil {
			return err
		}
		if err := m.Force(int(version)); err != nil {
			return err
		}
		logger.Info("version forced", "version", version)
		return nil
	}},
	"version": {run: func(m *migrate.Migrate, _ []string, _ *logging.Logger) error {
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			fmt.Println("version: none")
		case err != nil:
			return err
		default:
			fmt.Printf("version: %d dirty: %t\n", version, dirty)
		}
		return nil
	}},
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage(os.Stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage(os.Stderr)
		return 2
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
	}
	cfg, err := config.LoadMigration()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := logging.NewJSON(cfg.LogLevel).With("component", "migration", "command", args[0])
	defer func() { _ = logger.Sync() }()

	source := "file://" + filepath.ToSlash(cfg.MigrationsDir)
	m, err := migrate.New(source, cfg.DatabaseURL)
	if err != nil {
		logger.Error("create migrator", "source", source, "error", err)
		return 1
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	if err := cmd.run(m, args[1:], logger); err != nil {
		logger.Error("migration failed", "error", err)
		return 1
	}
	return 0
}

// logChange treats ErrNoChange as success.
func logChange(logger *logging.Logger, err error, msg string, args ...any) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info(msg, args...)
	return nil
}

func versionArg(args []string) (uint, error) {
	if len(args) == 0 {
		return 0, errors.New("a version argument is required")
	}
	v, err := strconv.ParseUint(args[0], 10, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	return uint(v), nil
}

func usage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <command> [args]\n\ncommands:\n", name)
	for _, key := range []string{"up", "down", "goto", "force", "version"} {
		fmt.Fprintf(w, "  %s %s\n", key, commands[key].args)
	}
	fmt.Fprintf(w, "\nexample: %s goto 1775800200\n", name)
}
