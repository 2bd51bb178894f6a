// Command migration manages the postgres schema of the cache_entries table used by
// CACHE_BACKEND=postgres. The sqlite backend creates its table on open.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"github.com/Dawichi/hexastats/internal/infrastructure/cachestore"
	"github.com/Dawichi/hexastats/internal/platform/logging"
)

const defaultMigrationsDir = "./db/migrations"

var migrationFile = regexp.MustCompile(`^(\d+)_[^.]+\.up\.sql$`)

type command struct {
	name  string
	steps int
	force uint
}

func main() {
	_ = godotenv.Load()

	logger := logging.New(logging.Options{
		Level:   logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")),
		Format:  logging.FormatConsole,
		Service: "hexastats-migration",
	})
	defer func() { _ = logger.Sync() }()

	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage(os.Stderr)
		os.Exit(2)
	}
	if err := run(cmd, logger, os.Stdout); err != nil {
		logger.Error("cache schema migration failed", "command", cmd.name, "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errors.New("missing command")
	}

	cmd := command{name: strings.ToLower(strings.TrimSpace(args[0])), steps: 1}
	rest := args[1:]
	switch cmd.name {
	case "up", "status":
		if len(rest) > 0 {
			return command{}, fmt.Errorf("%s takes no arguments", cmd.name)
		}
	case "down":
		if len(rest) > 0 {
			steps, err := strconv.Atoi(strings.TrimSpace(rest[0]))
			if err != nil || steps <= 0 {
				return command{}, fmt.Errorf("down steps must be a positive integer, got %q", rest[0])
			}
			cmd.steps = steps
		}
	case "force":
		if len(rest) != 1 {
			return command{}, errors.New("force requires a version argument")
		}
		version, err := strconv.ParseUint(strings.TrimSpace(rest[0]), 10, 32)
		if err != nil {
			return command{}, fmt.Errorf("invalid version %q: %w", rest[0], err)
		}
		cmd.force = uint(version)
	default:
		return command{}, fmt.Errorf("unknown command %q", cmd.name)
	}
	return cmd, nil
}

func run(cmd command, logger *logging.Logger, out io.Writer) error {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}
	dbURL = cachestore.NormalizeDBURL(dbURL, envBool("DB_DISABLE_PREPARED_BINARY_RESULT"))

	dir, err := filepath.Abs(firstNonEmpty(os.Getenv("MIGRATIONS_DIR"), defaultMigrationsDir))
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}
	latest, err := latestVersion(dir)
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	switch cmd.name {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-cmd.steps)
	case "force":
		err = m.Force(int(cmd.force))
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("cache schema already current")
		err = nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.name, err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		version, err = 0, nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	_, err = fmt.Fprintln(out, statusLine(version, dirty, latest))
	return err
}

// latestVersion returns the highest version among the up migrations in dir.
func latestVersion(dir string) (uint, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read migrations dir: %w", err)
	}

	var versions []uint64
	for _, e := range entries {
		match := migrationFile.FindStringSubmatch(e.Name())
		if e.IsDir() || match == nil {
			continue
		}
		v, err := strconv.ParseUint(match[1], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("migration %s: %w", e.Name(), err)
		}
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return 0, fmt.Errorf("no up migrations in %s", dir)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
	return uint(versions[len(versions)-1]), nil
}

func statusLine(version uint, dirty bool, latest uint) string {
	state := "current"
	switch {
	case dirty:
		state = "dirty, fix with force"
	case version == 0:
		state = "empty, run up"
	case version < latest:
		state = "behind, run up"
	case version > latest:
		state = "ahead of this build"
	}
	return fmt.Sprintf("hexastats cache schema: version=%d latest=%d (%s)", version, latest, state)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <up|down [steps]|status|force <version>>\n", name)
	fmt.Fprintln(w, "every command ends with the cache schema status line")
}
