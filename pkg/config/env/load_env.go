package env

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file from ENV_PATH, or defaultPath when ENV_PATH is
// unset. A missing file is an error only when env is "local" or empty.
func LoadDotEnv(env string, defaultPath string) error {
	path := String("ENV_PATH", defaultPath)
	if err := godotenv.Load(path); err != nil {
		if env == "local" || env == "" {
			slog.Error("Failed to load .env", "env", env, "path", path, "error", err)
			return fmt.Errorf("load %s: %w", path, err)
		}
		slog.Debug("No .env file, using process environment", "env", env, "path", path)
		return nil
	}
	slog.Info("Loaded .env", "path", path)
	return nil
}

// String returns the trimmed value of key, or def when unset or blank.
func String(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Bool parses key with strconv.ParseBool; unset means def.
func Bool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

// Int parses key as a decimal integer; unset means def.
func Int(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
