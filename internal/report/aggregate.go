package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/nghiaugust/ballot-processing-system/internal/confusion"
	"github.com/nghiaugust/ballot-processing-system/internal/eval/runner"
	"github.com/nghiaugust/ballot-processing-system/internal/joint"
)

// Generate turns summed run counts into a report. Per-ballot detail is kept
// for each dataset but not repeated in the overall section.
func Generate(rr *runner.RunResult, mode Mode) *Report {
	r := &Report{
		Meta: Meta{
			RunID:       uuid.New(),
			Version:     Version,
			Timestamp:   time.Now().UTC(),
			Environment: NewEnvironmentInfo(),
		},
		Config: Config{
			Mode:          mode,
			Workers:       rr.Config.Workers,
			SeparateFlags: rr.Config.SeparateFlags,
		},
		Datasets: make([]DatasetReport, 0, len(rr.Datasets)),
	}

	for _, d := range rr.Datasets {
		r.Datasets = append(r.Datasets, datasetReport(d, mode, rr.Config.SeparateFlags, true))
	}
	if rr.Overall != nil {
		r.Overall = datasetReport(rr.Overall, mode, rr.Config.SeparateFlags, false)
	}
	return r
}

func datasetReport(d *runner.DatasetResult, mode Mode, separate, withBallots bool) DatasetReport {
	dr := DatasetReport{
		Name: d.Name,
		Stats: Stats{
			FilesFound:     d.FilesFound,
			TotalBallots:   d.TotalBallots(),
			ScoredBallots:  d.Lines.ScoredBallots,
			SkippedBallots: d.Skipped,
			Duration:       d.Duration.Round(time.Microsecond).String(),
		},
	}
	for _, f := range d.Failed {
		dr.Stats.FailedFiles = append(dr.Stats.FailedFiles, FailedFile{Path: f.Path, Error: f.Error})
	}

	if mode.Text() {
		dr.Text = &TextReport{
			CER:              d.Text.CER(),
			WER:              d.Text.WER(),
			SequenceAccuracy: d.Text.SequenceAccuracy(),
			Sequences:        d.Text.Sequences,
			CorrectSequences: d.Text.CorrectSequences,
			Char:             d.Text.Char,
			Word:             d.Text.Word,
		}
	}

	if mode.Flags() {
		fr := &FlagsReport{Pooled: flagMetrics(d.Flags.Pooled())}
		if separate {
			agree := flagMetrics(d.Flags.Agree)
			disagree := flagMetrics(d.Flags.Disagree)
			fr.Agree, fr.Disagree = &agree, &disagree
		}
		dr.Flags = fr
	}

	if mode.Lines() {
		dr.Lines = linesReport(d, withBallots)
	}
	return dr
}

func flagMetrics(m confusion.Matrix) FlagMetrics {
	s := m.Summarize()
	return FlagMetrics{
		TP:        m.TP,
		FP:        m.FP,
		FN:        m.FN,
		TN:        m.TN,
		Precision: s.Precision,
		Recall:    s.Recall,
		F1:        s.F1,
		Accuracy:  s.Accuracy,
	}
}

var breakdownKinds = []joint.ErrorKind{joint.NameOnly, joint.FlagsOnly, joint.NameAndFlags}

func linesReport(d *runner.DatasetResult, withBallots bool) *LinesReport {
	t := d.Lines
	lr := &LinesReport{
		TotalLines:         t.TotalLines,
		CorrectLines:       t.CorrectLines,
		IncorrectLines:     t.IncorrectLines(),
		LineAccuracy:       t.LineAccuracy(),
		PerfectBallots:     t.PerfectBallots,
		BallotAccuracy:     t.BallotAccuracy(),
		MeanLinesPerBallot: t.MeanLinesPerBallot(),
		Breakdown:          make([]ErrorShare, 0, len(breakdownKinds)),
	}
	counts := map[joint.ErrorKind]int{
		joint.NameOnly:     t.NameOnlyErrors,
		joint.FlagsOnly:    t.FlagsOnlyErrors,
		joint.NameAndFlags: t.BothErrors,
	}
	for _, k := range breakdownKinds {
		lr.Breakdown = append(lr.Breakdown, ErrorShare{Kind: k.String(), Count: counts[k], Share: t.ErrorShare(k)})
	}

	if !withBallots {
		return lr
	}
	for _, b := range d.Ballots {
		br := BallotReport{
			BallotID:     b.BallotID,
			CorrectLines: b.CorrectLines,
			TotalLines:   b.TotalLines,
			Accuracy:     b.LineAccuracy(),
			Lines:        make([]LineReport, 0, len(b.Lines)),
		}
		for _, l := range b.Lines {
			trueName := l.TrueName
			if !l.InRoster {
				trueName = NotInRoster
			}
			br.Lines = append(br.Lines, LineReport{
				Seq:           l.Seq,
				PredictedName: l.PredictedName,
				TrueName:      trueName,
				NameCorrect:   l.NameCorrect,
				FlagsCorrect:  l.FlagsCorrect,
				LineCorrect:   l.LineCorrect,
			})
		}
		lr.Ballots = append(lr.Ballots, br)
	}
	return lr
}
