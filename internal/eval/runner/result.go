package runner

import (
	"time"

	"github.com/nghiaugust/ballot-processing-system/internal/confusion"
	"github.com/nghiaugust/ballot-processing-system/internal/ingest"
	"github.com/nghiaugust/ballot-processing-system/internal/joint"
	"github.com/nghiaugust/ballot-processing-system/internal/rate"
)

// DatasetResult holds the summed counts of one dataset. Every ratio is derived
// from these counts on demand.
type DatasetResult struct {
	Name  string
	Text  rate.Totals
	Flags confusion.FlagScorer
	Lines joint.Totals
	// Ballots lists the verdicts of labelled ballots in ingestion order.
	Ballots []joint.BallotResult
	// Skipped names ballots left out of flag and line metrics for lack of labels.
	Skipped    []string
	Failed     []ingest.FailedFile
	FilesFound int
	Duration   time.Duration
}

// TotalBallots counts every ingested ballot, labelled or not.
func (d *DatasetResult) TotalBallots() int {
	return len(d.Ballots) + len(d.Skipped)
}

// Merge sums o into d. Ballot lists are appended in argument order.
func (d *DatasetResult) Merge(o *DatasetResult) {
	d.Text = d.Text.Merge(o.Text)
	d.Flags = d.Flags.Merge(o.Flags)
	d.Lines = d.Lines.Merge(o.Lines)
	d.Ballots = append(d.Ballots, o.Ballots...)
	d.Skipped = append(d.Skipped, o.Skipped...)
	d.Failed = append(d.Failed, o.Failed...)
	d.FilesFound += o.FilesFound
	d.Duration += o.Duration
}

type RunResult struct {
	Datasets []*DatasetResult
	// Overall sums every dataset's counts; its ratios are never averages of dataset ratios.
	Overall *DatasetResult
	Config  Config
}

const OverallName = "overall"

func newOverall(datasets []*DatasetResult) *DatasetResult {
	overall := &DatasetResult{Name: OverallName}
	for _, d := range datasets {
		overall.Merge(d)
	}
	return overall
}
