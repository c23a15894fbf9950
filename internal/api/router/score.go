package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nghiaugust/ballot-processing-system/internal/apperr"
	"github.com/nghiaugust/ballot-processing-system/internal/ballot"
	"github.com/nghiaugust/ballot-processing-system/internal/eval/runner"
	"github.com/nghiaugust/ballot-processing-system/internal/ingest"
	"github.com/nghiaugust/ballot-processing-system/internal/metrics"
	"github.com/nghiaugust/ballot-processing-system/internal/rate"
	"github.com/nghiaugust/ballot-processing-system/internal/report"
)

// RequestDataset is the dataset name of every ad-hoc evaluation.
const RequestDataset = "request"

type ScoreRouter struct {
	e             *echo.Echo
	roster        *ballot.Roster
	labels        ingest.LabelSource
	separateFlags bool
	workers       int
}

type ScoreRouterOption func(*ScoreRouter)

// WithRoster sets the roster used when a request carries none.
func WithRoster(r ballot.Roster) ScoreRouterOption {
	return func(sr *ScoreRouter) {
		sr.roster = &r
	}
}

func WithLabelSource(src ingest.LabelSource) ScoreRouterOption {
	return func(sr *ScoreRouter) {
		sr.labels = src
	}
}

func WithSeparateFlags(on bool) ScoreRouterOption {
	return func(sr *ScoreRouter) {
		sr.separateFlags = on
	}
}

func WithWorkers(n int) ScoreRouterOption {
	return func(sr *ScoreRouter) {
		sr.workers = n
	}
}

func NewScoreRouter(e *echo.Echo, opts ...ScoreRouterOption) *ScoreRouter {
	r := &ScoreRouter{e: e, workers: runner.DefaultWorkers}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ScoreRouter) Bind() {
	v1 := r.e.Group("/v1")
	v1.POST("/text/score", r.scoreTextHandler)
	v1.POST("/ballots/evaluate", r.evaluateHandler)
}

func (r *ScoreRouter) scoreTextHandler(c echo.Context) error {
	var req TextScoreRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	start := time.Now()
	ref, hyp := deref(req.Reference), deref(req.Hypothesis)
	score := rate.Score(ref, hyp)
	resp := TextScoreResponse{
		Reference:  ref,
		Hypothesis: hyp,
		Char:       score.Char,
		Word:       score.Word,
		CER:        score.Char.Rate(),
		WER:        score.Word.Rate(),
		ExactMatch: score.Exact,
		CharOps:    rate.TracePair(ref, hyp, rate.Char).String(),
		WordOps:    rate.TracePair(ref, hyp, rate.Word).String(),
	}
	metrics.ScoreDuration.WithLabelValues("text").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, resp)
}

func (r *ScoreRouter) evaluateHandler(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	mode, err := report.ParseMode(req.Mode)
	if err != nil {
		return err
	}
	roster, err := r.resolveRoster(req.Roster)
	if err != nil {
		return err
	}
	ds, err := r.buildDataset(c, &req)
	if err != nil {
		return err
	}

	cfg := runner.Config{Workers: r.workers, SeparateFlags: r.separateFlags}
	if req.SeparateFlags != nil {
		cfg.SeparateFlags = *req.SeparateFlags
	}

	start := time.Now()
	rr, err := runner.New(cfg, roster, runner.WithObserver(metrics.BallotObserver{})).
		RunAll(c.Request().Context(), []*ingest.Dataset{ds})
	if err != nil {
		return fmt.Errorf("evaluate ballots: %w", err)
	}
	metrics.ScoreDuration.WithLabelValues("ballots").Observe(time.Since(start).Seconds())
	metrics.ObserveDataset(RequestDataset, rr.Overall.Text.CER(), rr.Overall.Lines.LineAccuracy())

	return c.JSON(http.StatusOK, report.Generate(rr, mode))
}

func (r *ScoreRouter) resolveRoster(names []string) (ballot.Roster, error) {
	if len(names) > 0 {
		return ballot.NewRoster(names), nil
	}
	if r.roster == nil {
		return ballot.Roster{}, apperr.NewValidation("request has no roster and no default roster is configured")
	}
	return *r.roster, nil
}

func (r *ScoreRouter) buildDataset(c echo.Context, req *EvaluateRequest) (*ingest.Dataset, error) {
	if len(req.Ballots) == 0 {
		return nil, apperr.NewValidation("request has no ballots")
	}

	ds := &ingest.Dataset{
		Name:       RequestDataset,
		Ballots:    make([]ballot.Ballot, 0, len(req.Ballots)),
		Labels:     make(ballot.LabelSet, len(req.Ballots)),
		FilesFound: len(req.Ballots),
	}

	var stored ballot.LabelSet
	if req.Dataset != "" {
		if r.labels == nil {
			return nil, apperr.NewValidation("dataset labels requested but no label store is configured")
		}
		var err error
		stored, err = r.labels.Load(c.Request().Context(), req.Dataset)
		if err != nil {
			return nil, fmt.Errorf("load labels for dataset %q: %w", req.Dataset, err)
		}
	}

	seen := make(map[string]bool, len(req.Ballots))
	for i, b := range req.Ballots {
		if b.ID == "" {
			return nil, apperr.NewValidation(fmt.Sprintf("ballot at index %d has no id", i))
		}
		if seen[b.ID] {
			return nil, apperr.NewValidation(fmt.Sprintf("ballot %q appears twice", b.ID))
		}
		seen[b.ID] = true

		ds.Ballots = append(ds.Ballots, b.toBallot())
		if table := b.labelTable(); table != nil {
			ds.Labels[b.ID] = table
		} else if t, ok := stored.Lookup(b.ID); ok {
			ds.Labels[b.ID] = t
		}
	}
	return ds, nil
}
