package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nghiaugust/ballot-processing-system/internal/apperr"
	"github.com/nghiaugust/ballot-processing-system/internal/eval/plan"
	"github.com/nghiaugust/ballot-processing-system/internal/eval/runner"
	"github.com/nghiaugust/ballot-processing-system/internal/ingest"
	labelpg "github.com/nghiaugust/ballot-processing-system/internal/labels/pg"
	"github.com/nghiaugust/ballot-processing-system/internal/report"
)

func main() {
	cfg := parseFlags()
	if cfg.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	os.Exit(run(context.Background(), cfg))
}

func run(ctx context.Context, cfg cliConfig) int {
	mode, err := report.ParseMode(cfg.Mode)
	if err != nil {
		slog.Error("Invalid mode", "mode", cfg.Mode, "error", err)
		return 2
	}

	p, err := plan.LoadFromFile(cfg.PlanPath)
	if err != nil {
		slog.Error("Failed to load plan", "path", cfg.PlanPath, "error", err)
		return exitCode(err)
	}

	roster, err := p.LoadRoster()
	if err != nil {
		slog.Error("Failed to load roster", "error", err)
		return exitCode(err)
	}

	runCfg := runner.Config{
		Workers:       p.Scoring.Workers,
		SeparateFlags: p.Scoring.SeparateFlags || cfg.SeparateFlags,
	}
	if cfg.Workers > 0 {
		runCfg.Workers = cfg.Workers
	}

	datasets, cleanup, err := loadDatasets(ctx, p, cfg.Dataset)
	defer cleanup()
	if err != nil {
		slog.Error("Failed to load datasets", "error", err)
		return exitCode(err)
	}

	result, err := runner.New(runCfg, roster).RunAll(ctx, datasets)
	if err != nil {
		slog.Error("Evaluation failed", "error", err)
		return 1
	}

	output := p.Output
	if cfg.Output != "" {
		output = cfg.Output
	}
	if err := outputReport(result, mode, output); err != nil {
		slog.Error("Failed to write JSON report", "error", err)
		return 1
	}
	return 0
}

// loadDatasets loads the enabled datasets, or only the one named by only. A
// dataset that cannot be loaded is logged and kept as an empty entry carrying
// the failure, so the rest of the run is still scored and reported. It fails
// only when no selected dataset loads.
func loadDatasets(ctx context.Context, p *plan.Plan, only string) ([]*ingest.Dataset, func(), error) {
	cleanup := func() {}

	var selected []plan.Dataset
	needsStore := false
	for _, d := range p.EnabledDatasets() {
		if only != "" && d.Name != only {
			continue
		}
		selected = append(selected, d)
		needsStore = needsStore || d.LabelSource == plan.LabelSourcePostgres
	}
	if len(selected) == 0 {
		return nil, cleanup, apperr.NewValidation(fmt.Sprintf("no enabled dataset named %q", only))
	}

	var store *labelpg.Source
	if needsStore {
		pool, err := labelpg.NewConnectionPool(ctx, labelpg.PoolConfig{ConnStr: p.LabelStore.Connection})
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = pool.Close
		store = labelpg.NewSource(pool)
	}

	var (
		datasets []*ingest.Dataset
		loaded   int
		firstErr error
	)
	for _, d := range selected {
		var labels ingest.LabelSource = ingest.FileLabelSource{Path: d.Labels}
		if d.LabelSource == plan.LabelSourcePostgres {
			labels = store
		}

		ds, err := ingest.NewLoader(d.Name, ingest.NewResultCollector(d.Results), labels).Load(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, cleanup, ctx.Err()
			}
			slog.Warn("Skipping dataset", "dataset", d.Name, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			datasets = append(datasets, &ingest.Dataset{
				Name:   d.Name,
				Failed: []ingest.FailedFile{{Path: d.Results, Error: err.Error()}},
			})
			continue
		}
		loaded++
		datasets = append(datasets, ds)
	}
	if loaded == 0 {
		return nil, cleanup, fmt.Errorf("no dataset could be loaded: %w", firstErr)
	}
	return datasets, cleanup, nil
}

func outputReport(result *runner.RunResult, mode report.Mode, outputPath string) error {
	rpt := report.Generate(result, mode)
	report.WriteTable(rpt, os.Stdout)

	if outputPath == "" {
		return nil
	}
	if err := report.WriteJSON(rpt, outputPath); err != nil {
		return err
	}
	slog.Info("Report written", "path", outputPath, "run_id", rpt.Meta.RunID)
	return nil
}

// exitCode returns 2 for input the user can fix and 1 for everything else.
func exitCode(err error) int {
	if apperr.IsValidation(err) {
		return 2
	}
	return 1
}
