package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/nghiaugust/ballot-processing-system/pkg/config/env"
	"github.com/nghiaugust/ballot-processing-system/pkg/utils"
)

type Config struct {
	Env         string
	Port        string
	UseHttp2    bool
	CorsOrigins []string

	// RosterFile is the default roster for requests that carry none.
	RosterFile    string
	SeparateFlags bool
	Workers       int
	// LabelStoreURL enables dataset label lookups from Postgres.
	LabelStoreURL string
}

func LoadConfig() (*Config, error) {
	appEnv := os.Getenv("ENV")
	if err := env.LoadDotEnv(appEnv, "cmd/ballot_api/.env"); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	useHttp2, err := env.Bool("USE_HTTP2", false)
	if err != nil {
		return nil, err
	}

	port := env.String("PORT", "8080")
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := utils.SplitList(os.Getenv("CORS_ORIGINS"), ",")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	separate, err := env.Bool("SEPARATE_FLAGS", false)
	if err != nil {
		return nil, err
	}
	workers, err := env.Int("WORKERS", 1)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, errors.New("WORKERS must be at least 1")
	}

	return &Config{
		Env:           appEnv,
		Port:          port,
		UseHttp2:      useHttp2,
		CorsOrigins:   origins,
		RosterFile:    env.String("ROSTER_FILE", ""),
		SeparateFlags: separate,
		Workers:       workers,
		LabelStoreURL: env.String("LABEL_STORE_URL", ""),
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
