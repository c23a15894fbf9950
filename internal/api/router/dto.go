package router

import (
	"github.com/nghiaugust/ballot-processing-system/internal/align"
	"github.com/nghiaugust/ballot-processing-system/internal/ballot"
)

type TextScoreRequest struct {
	Reference  *string `json:"reference"`
	Hypothesis *string `json:"hypothesis"`
}

type TextScoreResponse struct {
	Reference  string           `json:"reference"`
	Hypothesis string           `json:"hypothesis"`
	Char       align.EditCounts `json:"char"`
	Word       align.EditCounts `json:"word"`
	CER        float64          `json:"cer"`
	WER        float64          `json:"wer"`
	ExactMatch bool             `json:"exact_match"`
	CharOps    string           `json:"char_ops"`
	WordOps    string           `json:"word_ops"`
}

type EvaluateRequest struct {
	Roster []string `json:"roster"`
	// Dataset names the label-store dataset used for ballots without inline labels.
	Dataset       string      `json:"dataset"`
	Mode          string      `json:"mode"`
	SeparateFlags *bool       `json:"separate_flags"`
	Ballots       []BallotDTO `json:"ballots"`
}

type BallotDTO struct {
	ID     string     `json:"id"`
	Lines  []LineDTO  `json:"lines"`
	Labels []LabelDTO `json:"labels"`
}

type LineDTO struct {
	Stt      int     `json:"stt"`
	Name     *string `json:"name"`
	Agree    bool    `json:"agree"`
	Disagree bool    `json:"disagree"`
}

type LabelDTO struct {
	Agree    bool `json:"agree"`
	Disagree bool `json:"disagree"`
}

func (b BallotDTO) toBallot() ballot.Ballot {
	out := ballot.Ballot{ID: b.ID, Lines: make([]ballot.Line, 0, len(b.Lines))}
	for _, l := range b.Lines {
		out.Lines = append(out.Lines, ballot.Line{
			Seq:   l.Stt,
			Name:  deref(l.Name),
			Flags: ballot.Flags{Agree: l.Agree, Disagree: l.Disagree},
		})
	}
	return out
}

// labelTable is nil when the ballot carries no inline labels, including an
// empty list, so the label store can still supply them.
func (b BallotDTO) labelTable() ballot.LabelTable {
	if len(b.Labels) == 0 {
		return nil
	}
	table := make(ballot.LabelTable, 0, len(b.Labels))
	for _, l := range b.Labels {
		table = append(table, ballot.Flags{Agree: l.Agree, Disagree: l.Disagree})
	}
	return table
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
