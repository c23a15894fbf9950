package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nghiaugust/ballot-processing-system/internal/api/router"
	"github.com/nghiaugust/ballot-processing-system/internal/api/server"
	"github.com/nghiaugust/ballot-processing-system/internal/eval/plan"
	labelpg "github.com/nghiaugust/ballot-processing-system/internal/labels/pg"
	pkgserver "github.com/nghiaugust/ballot-processing-system/pkg/server"
)

const labelStoreConnectTimeout = 10 * time.Second

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	routerOpts := []router.ScoreRouterOption{
		router.WithSeparateFlags(sCfg.SeparateFlags),
		router.WithWorkers(sCfg.Workers),
	}

	if sCfg.RosterFile != "" {
		roster, err := plan.LoadRosterFile(sCfg.RosterFile)
		if err != nil {
			slog.Error("Failed to load roster", "path", sCfg.RosterFile, "error", err)
			os.Exit(1)
		}
		routerOpts = append(routerOpts, router.WithRoster(roster))
		slog.Info("Default roster loaded", "names", roster.Len())
	} else {
		slog.Info("No default roster, requests must carry one")
	}

	var healthChecker pkgserver.HealthChecker = pkgserver.NewOkHealthChecker()
	var pool *labelpg.ConnectionPool
	if sCfg.LabelStoreURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), labelStoreConnectTimeout)
		pool, err = labelpg.NewConnectionPool(ctx, labelpg.PoolConfig{ConnStr: sCfg.LabelStoreURL})
		cancel()
		if err != nil {
			slog.Error("Failed to connect label store", "error", err)
			os.Exit(1)
		}
		healthChecker = pkgserver.NewCompositeHealthChecker(healthChecker, labelpg.NewHealthChecker(pool))
		routerOpts = append(routerOpts, router.WithLabelSource(labelpg.NewSource(pool)))
		slog.Info("Label store enabled")
	}

	s := server.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupMetrics("/metrics")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Ballot scoring API is running")
	})

	router.NewScoreRouter(s.Echo, routerOpts...).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if pool != nil {
		pool.Close()
	}
	if err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}
}
