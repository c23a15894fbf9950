package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/nghiaugust/ballot-processing-system/internal/ballot"
	"github.com/nghiaugust/ballot-processing-system/internal/ingest/collector"
)

// FailedFile records a result file that could not be read or decoded.
type FailedFile struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Dataset is the scoring input of one named dataset.
type Dataset struct {
	Name       string
	Ballots    []ballot.Ballot
	Labels     ballot.LabelSet
	FilesFound int
	Failed     []FailedFile
}

// Loader assembles a Dataset from a result collector and a label source.
type Loader struct {
	name      string
	collector collector.Collector[ballot.Ballot]
	labels    LabelSource
}

func NewLoader(name string, c collector.Collector[ballot.Ballot], labels LabelSource) *Loader {
	return &Loader{name: name, collector: c, labels: labels}
}

// Load reads every ballot and the label set. Unreadable result files are logged
// and listed in Failed. A missing label file is listed there too and leaves the
// dataset unlabelled, so it still gets text metrics. Only a missing results
// directory or a failing label store fails the load.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	var failed []FailedFile
	labels, err := l.labels.Load(ctx, l.name)
	if err != nil {
		var pathErr *fs.PathError
		if !errors.Is(err, fs.ErrNotExist) || !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load labels for dataset %q: %w", l.name, err)
		}
		slog.Warn("Label file missing, scoring text metrics only", "dataset", l.name, "path", pathErr.Path)
		failed = append(failed, FailedFile{Path: pathErr.Path, Error: err.Error()})
		labels = ballot.LabelSet{}
	}

	results, err := l.collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect results for dataset %q: %w", l.name, err)
	}

	ds := &Dataset{Name: l.name, Labels: labels, Failed: failed}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res, ok := <-results:
			if !ok {
				slog.Info("Dataset loaded",
					"dataset", l.name,
					"files", ds.FilesFound,
					"ballots", len(ds.Ballots),
					"failed", len(ds.Failed),
					"duration", time.Since(start))
				return ds, nil
			}
			ds.FilesFound++
			if res.Err != nil {
				slog.Warn("Skipping result file", "dataset", l.name, "path", res.Source, "error", res.Err)
				ds.Failed = append(ds.Failed, FailedFile{Path: res.Source, Error: res.Err.Error()})
				continue
			}
			ds.Ballots = append(ds.Ballots, res.Result)
		}
	}
}
