package report

import (
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/nghiaugust/ballot-processing-system/internal/align"
)

const Version = "1"

// NotInRoster stands in for the true name of a line whose sequence number has no roster entry.
const NotInRoster = "N/A"

type Report struct {
	Meta     Meta            `json:"meta"`
	Config   Config          `json:"config"`
	Datasets []DatasetReport `json:"datasets"`
	Overall  DatasetReport   `json:"overall"`
}

type Meta struct {
	RunID       uuid.UUID       `json:"run_id"`
	Version     string          `json:"version"`
	Timestamp   time.Time       `json:"timestamp"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

type Config struct {
	Mode          Mode `json:"mode"`
	Workers       int  `json:"workers"`
	SeparateFlags bool `json:"separate_flags"`
}

type DatasetReport struct {
	Name  string       `json:"name"`
	Stats Stats        `json:"stats"`
	Text  *TextReport  `json:"text,omitempty"`
	Flags *FlagsReport `json:"flags,omitempty"`
	Lines *LinesReport `json:"lines,omitempty"`
}

type Stats struct {
	FilesFound     int          `json:"files_found"`
	FailedFiles    []FailedFile `json:"failed_files,omitempty"`
	TotalBallots   int          `json:"total_ballots"`
	ScoredBallots  int          `json:"scored_ballots"`
	SkippedBallots []string     `json:"skipped_ballots,omitempty"`
	Duration       string       `json:"duration"`
}

type FailedFile struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type TextReport struct {
	CER              float64          `json:"cer"`
	WER              float64          `json:"wer"`
	SequenceAccuracy float64          `json:"sequence_accuracy"`
	Sequences        int              `json:"sequences"`
	CorrectSequences int              `json:"correct_sequences"`
	Char             align.EditCounts `json:"char"`
	Word             align.EditCounts `json:"word"`
}

type FlagsReport struct {
	Pooled   FlagMetrics  `json:"pooled"`
	Agree    *FlagMetrics `json:"agree,omitempty"`
	Disagree *FlagMetrics `json:"disagree,omitempty"`
}

type FlagMetrics struct {
	TP        int     `json:"tp"`
	FP        int     `json:"fp"`
	FN        int     `json:"fn"`
	TN        int     `json:"tn"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Accuracy  float64 `json:"accuracy"`
}

type LinesReport struct {
	TotalLines         int            `json:"total_lines"`
	CorrectLines       int            `json:"correct_lines"`
	IncorrectLines     int            `json:"incorrect_lines"`
	LineAccuracy       float64        `json:"line_accuracy"`
	PerfectBallots     int            `json:"perfect_ballots"`
	BallotAccuracy     float64        `json:"ballot_accuracy"`
	MeanLinesPerBallot float64        `json:"mean_lines_per_ballot"`
	Breakdown          []ErrorShare   `json:"error_breakdown"`
	Ballots            []BallotReport `json:"ballots,omitempty"`
}

type ErrorShare struct {
	Kind  string  `json:"kind"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

type BallotReport struct {
	BallotID     string       `json:"ballot_id"`
	CorrectLines int          `json:"correct_lines"`
	TotalLines   int          `json:"total_lines"`
	Accuracy     float64      `json:"accuracy"`
	Lines        []LineReport `json:"lines"`
}

type LineReport struct {
	Seq           int    `json:"stt"`
	PredictedName string `json:"predicted_name"`
	TrueName      string `json:"true_name"`
	NameCorrect   bool   `json:"name_correct"`
	FlagsCorrect  bool   `json:"flags_correct"`
	LineCorrect   bool   `json:"line_correct"`
}
