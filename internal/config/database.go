package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// DatabaseURL is DBURL with the prepared-binary switch applied.
func (c Config) DatabaseURL() string {
	return normalizeDBURL(c.DBURL, c.DBDisablePreparedBinary)
}

// normalizeDBURL turns off binary results for prepared statements so the
// service works behind transaction poolers. An explicit value wins and
// key=value DSNs are returned unchanged.
func normalizeDBURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// Migration is the subset of settings the migration tool needs. It loads
// without the API's auth and job settings.
type Migration struct {
	DatabaseURL   string
	MigrationsDir string
	LogLevel      logging.Level
}

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

func LoadMigration() (Migration, error) {
	rawURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if rawURL == "" {
		return Migration{}, fmt.Errorf("DB_URL is required")
	}
	disable, err := getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", true)
	if err != nil {
		return Migration{}, err
	}

	dir, err := findMigrationsDir(append([]string{os.Getenv("MIGRATIONS_DIR")}, defaultMigrationDirs...))
	if err != nil {
		return Migration{}, err
	}

	return Migration{
		DatabaseURL:   normalizeDBURL(rawURL, disable),
		MigrationsDir: dir,
		LogLevel:      logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}

func findMigrationsDir(candidates []string) (string, error) {
	for _, candidate := range candidates {
		if candidate = strings.TrimSpace(candidate); candidate == "" {
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
	return "", fmt.Errorf("migrations directory not found in %v", candidates)
}
