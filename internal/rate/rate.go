// Package rate turns reference/hypothesis string pairs into character and word
// edit counts and folds them into corpus-level CER, WER and exact-match accuracy.
package rate

import (
	"fmt"
	"strings"

	"github.com/nghiaugust/ballot-processing-system/internal/align"
	"github.com/nghiaugust/ballot-processing-system/internal/apperr"
	"github.com/nghiaugust/ballot-processing-system/internal/textnorm"
)

// Mode selects the token unit used for alignment.
type Mode int

const (
	// Char aligns one token per character (CER).
	Char Mode = iota
	// Word aligns one token per whitespace-delimited word (WER).
	Word
)

func (m Mode) String() string {
	switch m {
	case Char:
		return "char"
	case Word:
		return "word"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "char"/"cer" and "word"/"wer", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "char", "cer":
		return Char, nil
	case "word", "wer":
		return Word, nil
	default:
		return 0, apperr.NewValidation(fmt.Sprintf("unknown comparison mode %q, expected char or word", s))
	}
}

// ScorePair normalizes both strings, tokenizes them according to mode and
// returns the alignment counts.
func ScorePair(reference, hypothesis string, mode Mode) align.EditCounts {
	ref, hyp := textnorm.Normalize(reference), textnorm.Normalize(hypothesis)
	if mode == Word {
		return align.Align(strings.Fields(ref), strings.Fields(hyp))
	}
	return align.Align([]rune(ref), []rune(hyp))
}

// TracePair is ScorePair returning the chosen alignment instead of its counts.
func TracePair(reference, hypothesis string, mode Mode) align.Script {
	ref, hyp := textnorm.Normalize(reference), textnorm.Normalize(hypothesis)
	if mode == Word {
		return align.Trace(strings.Fields(ref), strings.Fields(hyp))
	}
	return align.Trace([]rune(ref), []rune(hyp))
}

// ExactMatch reports whether the normalized forms are identical.
func ExactMatch(reference, hypothesis string) bool {
	return textnorm.Equal(reference, hypothesis)
}

// PairScore is everything one pair contributes to Totals.
type PairScore struct {
	Char  align.EditCounts `json:"char"`
	Word  align.EditCounts `json:"word"`
	Exact bool             `json:"exact_match"`
}

// Score evaluates one pair in both modes.
func Score(reference, hypothesis string) PairScore {
	return PairScore{
		Char:  ScorePair(reference, hypothesis, Char),
		Word:  ScorePair(reference, hypothesis, Word),
		Exact: ExactMatch(reference, hypothesis),
	}
}

// Totals accumulates PairScores. The zero value is ready to use.
type Totals struct {
	Char             align.EditCounts `json:"char"`
	Word             align.EditCounts `json:"word"`
	Sequences        int              `json:"sequences"`
	CorrectSequences int              `json:"correct_sequences"`
}

// Add folds one pair score into t.
func (t *Totals) Add(p PairScore) {
	t.Char = t.Char.Add(p.Char)
	t.Word = t.Word.Add(p.Word)
	t.Sequences++
	if p.Exact {
		t.CorrectSequences++
	}
}

// Observe scores a pair, folds it into t and returns the pair's score.
func (t *Totals) Observe(reference, hypothesis string) PairScore {
	p := Score(reference, hypothesis)
	t.Add(p)
	return p
}

// Merge returns the element-wise sum of two partial totals.
func (t Totals) Merge(o Totals) Totals {
	return Totals{
		Char:             t.Char.Add(o.Char),
		Word:             t.Word.Add(o.Word),
		Sequences:        t.Sequences + o.Sequences,
		CorrectSequences: t.CorrectSequences + o.CorrectSequences,
	}
}

// CER is the corpus character error rate, 0 when no reference characters were seen.
func (t Totals) CER() float64 { return t.Char.Rate() }

// WER is the corpus word error rate, 0 when no reference words were seen.
func (t Totals) WER() float64 { return t.Word.Rate() }

// SequenceAccuracy is the fraction of pairs that matched exactly.
func (t Totals) SequenceAccuracy() float64 {
	if t.Sequences == 0 {
		return 0
	}
	return float64(t.CorrectSequences) / float64(t.Sequences)
}
