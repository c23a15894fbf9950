// Package joint decides whether whole ballot lines were read correctly: a line
// is correct only when its name matches the roster and both flags match the labels.
package joint

import (
	"github.com/nghiaugust/ballot-processing-system/internal/ballot"
	"github.com/nghiaugust/ballot-processing-system/internal/rate"
)

// ErrorKind classifies an incorrect line. Every incorrect line has exactly one kind.
type ErrorKind int

const (
	NoError ErrorKind = iota
	NameOnly
	FlagsOnly
	NameAndFlags
)

func (k ErrorKind) String() string {
	switch k {
	case NameOnly:
		return "name_only"
	case FlagsOnly:
		return "flags_only"
	case NameAndFlags:
		return "both"
	default:
		return "none"
	}
}

// LineResult is the verdict for one line.
type LineResult struct {
	Seq           int    `json:"stt"`
	PredictedName string `json:"predicted_name"`
	// TrueName is empty when Seq is outside the roster.
	TrueName     string `json:"true_name"`
	InRoster     bool   `json:"in_roster"`
	NameCorrect  bool   `json:"name_correct"`
	FlagsCorrect bool   `json:"flags_correct"`
	LineCorrect  bool   `json:"line_correct"`
}

// ErrorKind reports how the line is wrong, if it is.
func (r LineResult) ErrorKind() ErrorKind {
	switch {
	case r.LineCorrect:
		return NoError
	case !r.NameCorrect && !r.FlagsCorrect:
		return NameAndFlags
	case !r.NameCorrect:
		return NameOnly
	default:
		return FlagsOnly
	}
}

// BallotResult holds the line verdicts of one labelled ballot.
type BallotResult struct {
	BallotID     string       `json:"ballot_id"`
	TotalLines   int          `json:"total_lines"`
	CorrectLines int          `json:"correct_lines"`
	Lines        []LineResult `json:"lines"`
}

// LineAccuracy is CorrectLines/TotalLines, 0 for a ballot without lines.
func (b BallotResult) LineAccuracy() float64 {
	return ratio(b.CorrectLines, b.TotalLines)
}

// Perfect reports whether every line of a non-empty ballot is correct.
func (b BallotResult) Perfect() bool {
	return b.TotalLines > 0 && b.CorrectLines == b.TotalLines
}

// Evaluator scores lines against a roster. It holds no mutable state.
type Evaluator struct {
	roster ballot.Roster
}

func NewEvaluator(roster ballot.Roster) *Evaluator {
	return &Evaluator{roster: roster}
}

// EvaluateLine checks one line. Sequence numbers outside the roster make the
// name incorrect; outside the label table they make the flags incorrect.
func (e *Evaluator) EvaluateLine(line ballot.Line, labels ballot.LabelTable) LineResult {
	res := LineResult{Seq: line.Seq, PredictedName: line.Name}

	if name, ok := e.roster.Name(line.Seq); ok {
		res.TrueName = name
		res.InRoster = true
		res.NameCorrect = rate.ExactMatch(name, line.Name)
	}
	if truth, ok := labels.At(line.Seq); ok {
		res.FlagsCorrect = line.Flags == truth
	}
	res.LineCorrect = res.NameCorrect && res.FlagsCorrect
	return res
}

// EvaluateBallot checks every line of b against its label table.
func (e *Evaluator) EvaluateBallot(b ballot.Ballot, labels ballot.LabelTable) BallotResult {
	res := BallotResult{
		BallotID:   b.ID,
		TotalLines: len(b.Lines),
		Lines:      make([]LineResult, 0, len(b.Lines)),
	}
	for _, line := range b.Lines {
		lr := e.EvaluateLine(line, labels)
		if lr.LineCorrect {
			res.CorrectLines++
		}
		res.Lines = append(res.Lines, lr)
	}
	return res
}

// Totals aggregates line verdicts over scored ballots only.
type Totals struct {
	ScoredBallots   int `json:"scored_ballots"`
	PerfectBallots  int `json:"perfect_ballots"`
	TotalLines      int `json:"total_lines"`
	CorrectLines    int `json:"correct_lines"`
	NameOnlyErrors  int `json:"name_only_errors"`
	FlagsOnlyErrors int `json:"flags_only_errors"`
	BothErrors      int `json:"both_errors"`
}

// Add folds one ballot into t.
func (t *Totals) Add(b BallotResult) {
	t.ScoredBallots++
	if b.Perfect() {
		t.PerfectBallots++
	}
	t.TotalLines += b.TotalLines
	t.CorrectLines += b.CorrectLines
	for _, l := range b.Lines {
		switch l.ErrorKind() {
		case NameOnly:
			t.NameOnlyErrors++
		case FlagsOnly:
			t.FlagsOnlyErrors++
		case NameAndFlags:
			t.BothErrors++
		}
	}
}

// Merge returns the sum of two partial totals.
func (t Totals) Merge(o Totals) Totals {
	return Totals{
		ScoredBallots:   t.ScoredBallots + o.ScoredBallots,
		PerfectBallots:  t.PerfectBallots + o.PerfectBallots,
		TotalLines:      t.TotalLines + o.TotalLines,
		CorrectLines:    t.CorrectLines + o.CorrectLines,
		NameOnlyErrors:  t.NameOnlyErrors + o.NameOnlyErrors,
		FlagsOnlyErrors: t.FlagsOnlyErrors + o.FlagsOnlyErrors,
		BothErrors:      t.BothErrors + o.BothErrors,
	}
}

// IncorrectLines is the size of the set split by the error breakdown.
func (t Totals) IncorrectLines() int {
	return t.TotalLines - t.CorrectLines
}

// LineAccuracy is the corpus fraction of fully correct lines.
func (t Totals) LineAccuracy() float64 {
	return ratio(t.CorrectLines, t.TotalLines)
}

// BallotAccuracy is the fraction of scored ballots with every line correct.
func (t Totals) BallotAccuracy() float64 {
	return ratio(t.PerfectBallots, t.ScoredBallots)
}

// MeanLinesPerBallot is 0 when no ballot was scored.
func (t Totals) MeanLinesPerBallot() float64 {
	return ratio(t.TotalLines, t.ScoredBallots)
}

// ErrorShare returns the fraction of incorrect lines that have kind k.
func (t Totals) ErrorShare(k ErrorKind) float64 {
	var n int
	switch k {
	case NameOnly:
		n = t.NameOnlyErrors
	case FlagsOnly:
		n = t.FlagsOnlyErrors
	case NameAndFlags:
		n = t.BothErrors
	default:
		return 0
	}
	return ratio(n, t.IncorrectLines())
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
