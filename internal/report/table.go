package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Ballot OCR Evaluation ===\n")
	fmt.Fprintf(tw, "Run %s (mode %s, workers %d)\n", r.Meta.RunID, r.Config.Mode, r.Config.Workers)

	for i := range r.Datasets {
		writeDataset(tw, &r.Datasets[i], "Dataset: "+r.Datasets[i].Name)
	}
	if len(r.Datasets) > 1 {
		writeDataset(tw, &r.Overall, "Overall")
	}
	writeStats(tw, r)

	tw.Flush()
}

func writeDataset(tw *tabwriter.Writer, d *DatasetReport, title string) {
	fmt.Fprintf(tw, "\n--- %s ---\n\n", title)
	if d.Text != nil {
		writeTextTable(tw, d.Text)
	}
	if d.Flags != nil {
		writeFlagsTable(tw, d.Flags)
	}
	if d.Lines != nil {
		writeLinesSummary(tw, d.Lines)
		if len(d.Lines.Ballots) > 0 {
			writeBallotTable(tw, d.Lines.Ballots)
			writeLineErrors(tw, d.Lines.Ballots)
		}
	}
}

func writeTextTable(tw *tabwriter.Writer, t *TextReport) {
	fmt.Fprintf(tw, "Text Recognition (%d sequences)\n\n", t.Sequences)

	writeHeader(tw, "Level", "Rate", "S", "D", "I", "N")
	fmt.Fprintln(tw, strings.Join([]string{
		"char", fmtRate(t.CER),
		fmt.Sprint(t.Char.Substitutions), fmt.Sprint(t.Char.Deletions), fmt.Sprint(t.Char.Insertions), fmt.Sprint(t.Char.RefLength),
	}, "\t"))
	fmt.Fprintln(tw, strings.Join([]string{
		"word", fmtRate(t.WER),
		fmt.Sprint(t.Word.Substitutions), fmt.Sprint(t.Word.Deletions), fmt.Sprint(t.Word.Insertions), fmt.Sprint(t.Word.RefLength),
	}, "\t"))
	fmt.Fprintf(tw, "\nSequence accuracy\t%s\t(%d/%d)\n\n", fmtRate(t.SequenceAccuracy), t.CorrectSequences, t.Sequences)
}

func writeFlagsTable(tw *tabwriter.Writer, f *FlagsReport) {
	fmt.Fprintf(tw, "Flag Detection\n\n")

	writeHeader(tw, "Flag", "TP", "FP", "FN", "TN", "Precision", "Recall", "F1", "Accuracy")
	writeFlagRow(tw, "pooled", f.Pooled)
	if f.Agree != nil {
		writeFlagRow(tw, "agree", *f.Agree)
	}
	if f.Disagree != nil {
		writeFlagRow(tw, "disagree", *f.Disagree)
	}
	fmt.Fprintln(tw)
}

func writeFlagRow(tw *tabwriter.Writer, name string, m FlagMetrics) {
	fmt.Fprintln(tw, strings.Join([]string{
		name,
		fmt.Sprint(m.TP), fmt.Sprint(m.FP), fmt.Sprint(m.FN), fmt.Sprint(m.TN),
		fmt.Sprintf("%.4f", m.Precision),
		fmt.Sprintf("%.4f", m.Recall),
		fmt.Sprintf("%.4f", m.F1),
		fmt.Sprintf("%.4f", m.Accuracy),
	}, "\t"))
}

func writeLinesSummary(tw *tabwriter.Writer, l *LinesReport) {
	fmt.Fprintf(tw, "Line Correctness\n\n")

	fmt.Fprintf(tw, "Line accuracy\t%s\t(%d/%d)\n", fmtRate(l.LineAccuracy), l.CorrectLines, l.TotalLines)
	fmt.Fprintf(tw, "Ballot accuracy\t%s\t(%d perfect)\n", fmtRate(l.BallotAccuracy), l.PerfectBallots)
	fmt.Fprintf(tw, "Lines per ballot\t%.2f\t\n\n", l.MeanLinesPerBallot)

	writeHeader(tw, "Error", "Lines", "Share")
	for _, e := range l.Breakdown {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Kind, e.Count, fmtPercent(e.Share))
	}
	fmt.Fprintf(tw, "total\t%d\t\n\n", l.IncorrectLines)
}

func writeBallotTable(tw *tabwriter.Writer, ballots []BallotReport) {
	fmt.Fprintf(tw, "Per-Ballot Results\n\n")

	writeHeader(tw, "Ballot", "Correct", "Accuracy")
	for _, b := range ballots {
		fmt.Fprintf(tw, "%s\t%d/%d\t%s\n", b.BallotID, b.CorrectLines, b.TotalLines, fmtPercent(b.Accuracy))
	}
	fmt.Fprintln(tw)
}

func writeLineErrors(tw *tabwriter.Writer, ballots []BallotReport) {
	var rows []string
	for _, b := range ballots {
		for _, l := range b.Lines {
			if l.LineCorrect {
				continue
			}
			rows = append(rows, strings.Join([]string{
				b.BallotID,
				fmt.Sprint(l.Seq),
				quoted(l.PredictedName),
				l.TrueName,
				mark(l.NameCorrect),
				mark(l.FlagsCorrect),
			}, "\t"))
		}
	}
	if len(rows) == 0 {
		return
	}

	fmt.Fprintf(tw, "Incorrect Lines\n\n")
	writeHeader(tw, "Ballot", "STT", "Predicted", "Truth", "Name", "Flags")
	for _, row := range rows {
		fmt.Fprintln(tw, row)
	}
	fmt.Fprintln(tw)
}

func writeStats(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "\n--- Run Statistics ---\n\n")

	writeHeader(tw, "Dataset", "Files", "Failed", "Ballots", "Scored", "Skipped", "Duration")
	for _, d := range r.Datasets {
		s := d.Stats
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			d.Name, s.FilesFound, len(s.FailedFiles), s.TotalBallots, s.ScoredBallots, len(s.SkippedBallots), s.Duration)
	}
	fmt.Fprintln(tw)

	for _, d := range r.Datasets {
		if len(d.Stats.SkippedBallots) > 0 {
			fmt.Fprintf(tw, "Skipped in %s (no labels): %s\n", d.Name, strings.Join(d.Stats.SkippedBallots, ", "))
		}
		for _, f := range d.Stats.FailedFiles {
			fmt.Fprintf(tw, "Failed in %s: %s: %s\n", d.Name, f.Path, f.Error)
		}
	}
}

func writeHeader(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	sep := make([]string, len(cols))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
}

func fmtRate(v float64) string {
	return fmt.Sprintf("%.4f (%.2f%%)", v, v*100)
}

func fmtPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func quoted(s string) string {
	return fmt.Sprintf("%q", s)
}

func mark(ok bool) string {
	if ok {
		return "ok"
	}
	return "x"
}
