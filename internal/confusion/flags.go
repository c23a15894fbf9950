package confusion

// FlagScorer scores the two checkbox flags of ballot lines. It keeps one
// matrix per flag; Pooled is their element-wise sum.
type FlagScorer struct {
	Agree    Matrix `json:"agree"`
	Disagree Matrix `json:"disagree"`
}

// RecordLine adds one ballot line: one record for "agree" and one for "disagree".
func (f *FlagScorer) RecordLine(predAgree, predDisagree, trueAgree, trueDisagree bool) {
	f.Agree.Record(predAgree, trueAgree)
	f.Disagree.Record(predDisagree, trueDisagree)
}

// Pooled returns both flags accumulated into one matrix.
func (f FlagScorer) Pooled() Matrix {
	return f.Agree.Merge(f.Disagree)
}

// Merge returns the per-flag sum of two partial scorers.
func (f FlagScorer) Merge(o FlagScorer) FlagScorer {
	return FlagScorer{
		Agree:    f.Agree.Merge(o.Agree),
		Disagree: f.Disagree.Merge(o.Disagree),
	}
}
