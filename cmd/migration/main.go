package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/golf-tournament/internal/app"
	"github.com/riskibarqy/golf-tournament/internal/config"
	"github.com/riskibarqy/golf-tournament/internal/platform/logging"
)

var log = logging.Default()

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

type command struct {
	usage string
	run   func(m migrator, args []string, out io.Writer) error
}

var commands = map[string]command{
	"up": {usage: "up", run: func(m migrator, _ []string, _ io.Writer) error {
		return ignoreNoChange(m.Up(), "migrations applied")
	}},
	"down": {usage: "down [steps]", run: func(m migrator, args []string, _ io.Writer) error {
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		return ignoreNoChange(m.Steps(-steps), "migrations rolled back", "steps", steps)
	}},
	"goto": {usage: "goto <version>", run: func(m migrator, args []string, _ io.Writer) error {
		if len(args) == 0 {
			return fmt.Errorf("goto requires a target version")
		}
		target, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		return ignoreNoChange(m.Migrate(target), "migrated to version", "version", target)
	}},
	"force": {usage: "force <version>", run: func(m migrator, args []string, _ io.Writer) error {
		if len(args) == 0 {
			return fmt.Errorf("force requires a version")
		}
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		log.Info("forced migration version", "version", version)
		return nil
	}},
	"version": {usage: "version", run: func(m migrator, _ []string, out io.Writer) error {
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			_, err = fmt.Fprintln(out, "version: none\ndirty: false")
			return err
		case err != nil:
			return fmt.Errorf("read version: %w", err)
		}
		_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
		return err
	}},
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	name := strings.ToLower(strings.TrimSpace(os.Args[1]))
	if name == "migrate" {
		name = "goto"
	}
	cmd, ok := commands[name]
	if !ok {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if err := config.LoadDotEnv(); err != nil {
		fatal("load dotenv", err)
	}
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		fatal("DB_URL is required", nil)
	}
	migrationsDir, err := resolveMigrationsDir(os.Getenv)
	if err != nil {
		fatal("resolve migrations dir", err)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, app.NormalizeDBURL(dbURL, false, "golf-tournament-migration"))
	if err != nil {
		fatal("create migrator", err)
	}
	log.Info("migration source resolved", "command", name, "source", sourceURL)

	runErr := cmd.run(m, os.Args[2:], os.Stdout)
	closeMigrator(m)
	if runErr != nil {
		fatal(name+" failed", runErr)
	}
}

// ignoreNoChange logs msg on success and treats migrate.ErrNoChange as success.
func ignoreNoChange(err error, msg string, args ...any) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migration changes")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info(msg, args...)
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func fatal(msg string, err error) {
	if err != nil {
		log.Error(msg, "error", err)
	} else {
		log.Error(msg)
	}
	_ = log.Sync()
	os.Exit(1)
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Warn("close migration source failed", "error", srcErr)
	}
	if dbErr != nil {
		log.Warn("close migration db failed", "error", dbErr)
	}
}

// resolveMigrationsDir returns the first existing directory among MIGRATIONS_DIR,
// MIGRATIONS_PATH and the default locations.
func resolveMigrationsDir(getenv func(string) string) (string, error) {
	candidates := []string{
		getenv("MIGRATIONS_DIR"),
		getenv("MIGRATIONS_PATH"),
		"./db/migrations",
		"/app/db/migrations",
	}
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <%s> [args]\n", bin, strings.Join(names, "|"))
	for _, name := range names {
		fmt.Fprintf(w, "  %s %s\n", bin, commands[name].usage)
	}
	fmt.Fprintf(w, "example: %s goto 1776126000\n", bin)
}
