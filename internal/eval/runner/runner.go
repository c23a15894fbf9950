package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nghiaugust/ballot-processing-system/internal/ballot"
	"github.com/nghiaugust/ballot-processing-system/internal/ingest"
	"github.com/nghiaugust/ballot-processing-system/internal/joint"
)

// Observer is notified after each ballot is scored. Implementations must be
// safe for concurrent use when Workers > 1.
type Observer interface {
	BallotScored(dataset string, labelled bool, lines int)
}

type Runner struct {
	config    Config
	roster    ballot.Roster
	evaluator *joint.Evaluator
	observer  Observer
}

type Option func(*Runner)

func WithObserver(o Observer) Option {
	return func(r *Runner) {
		r.observer = o
	}
}

func New(cfg Config, roster ballot.Roster, opts ...Option) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	r := &Runner{
		config:    cfg,
		roster:    roster,
		evaluator: joint.NewEvaluator(roster),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Config() Config {
	return r.config
}

// RunAll scores every dataset in order and sums them into the overall result.
func (r *Runner) RunAll(ctx context.Context, datasets []*ingest.Dataset) (*RunResult, error) {
	rr := &RunResult{Config: r.config}
	for _, ds := range datasets {
		res, err := r.RunDataset(ctx, ds)
		if err != nil {
			return nil, fmt.Errorf("score dataset %q: %w", ds.Name, err)
		}
		rr.Datasets = append(rr.Datasets, res)
	}
	rr.Overall = newOverall(rr.Datasets)
	return rr, nil
}

// RunDataset folds the ballots of ds, split into at most Workers contiguous
// chunks. Partial results are merged in chunk order, so the outcome does not
// depend on the worker count.
func (r *Runner) RunDataset(ctx context.Context, ds *ingest.Dataset) (*DatasetResult, error) {
	start := time.Now()

	chunks := partition(ds.Ballots, r.config.Workers)
	partials := make([]*DatasetResult, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			part := &DatasetResult{Name: ds.Name}
			for _, b := range chunk {
				if err := gctx.Err(); err != nil {
					return err
				}
				r.scoreBallot(part, b, ds.Labels)
			}
			partials[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &DatasetResult{Name: ds.Name}
	for _, p := range partials {
		res.Merge(p)
	}
	res.Failed = append(res.Failed, ds.Failed...)
	res.FilesFound = ds.FilesFound
	res.Duration = time.Since(start)

	slog.Info("Dataset scored",
		"dataset", ds.Name,
		"ballots", res.TotalBallots(),
		"scored", res.Lines.ScoredBallots,
		"skipped", len(res.Skipped),
		"cer", res.Text.CER(),
		"wer", res.Text.WER(),
		"line_accuracy", res.Lines.LineAccuracy(),
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) scoreBallot(part *DatasetResult, b ballot.Ballot, labels ballot.LabelSet) {
	for _, line := range b.Lines {
		ref, _ := r.roster.Name(line.Seq)
		part.Text.Observe(ref, line.Name)
	}

	table, ok := labels.Lookup(b.ID)
	if r.observer != nil {
		r.observer.BallotScored(part.Name, ok, len(b.Lines))
	}
	if !ok {
		slog.Warn("Ballot has no labels, skipping flag and line metrics", "dataset", part.Name, "ballot", b.ID)
		part.Skipped = append(part.Skipped, b.ID)
		return
	}

	for _, line := range b.Lines {
		if truth, ok := table.At(line.Seq); ok {
			part.Flags.RecordLine(line.Flags.Agree, line.Flags.Disagree, truth.Agree, truth.Disagree)
		}
	}
	br := r.evaluator.EvaluateBallot(b, table)
	part.Lines.Add(br)
	part.Ballots = append(part.Ballots, br)
}

// partition splits items into at most n contiguous, non-empty chunks.
func partition[T any](items []T, n int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}
	size := (len(items) + n - 1) / n
	chunks := make([][]T, 0, n)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
