// Package ballot defines the typed entries that flow from ingestion into scoring.
package ballot

// Flags are the two checkbox states of one ballot line. They are independent:
// both, neither or either may be set.
type Flags struct {
	Agree    bool `json:"agree" yaml:"agree"`
	Disagree bool `json:"disagree" yaml:"disagree"`
}

// Line is one recognized ballot row.
type Line struct {
	// Seq is the 1-based sequence number that indexes the roster and the label table.
	Seq   int    `json:"stt"`
	Name  string `json:"name"`
	Flags Flags  `json:"flags"`
}

// Ballot is one recognized ballot instance.
type Ballot struct {
	ID    string `json:"id"`
	Lines []Line `json:"lines"`
}

// LabelTable holds the ground-truth flags of one ballot; position i labels Seq i+1.
type LabelTable []Flags

// At returns the labels for a 1-based sequence number.
func (t LabelTable) At(seq int) (Flags, bool) {
	if seq < 1 || seq > len(t) {
		return Flags{}, false
	}
	return t[seq-1], true
}

// LabelSet maps ballot IDs to their label tables.
type LabelSet map[string]LabelTable

// Lookup returns the label table for id. A ballot counts as labelled only when
// its table exists and is non-empty.
func (s LabelSet) Lookup(id string) (LabelTable, bool) {
	t, ok := s[id]
	if !ok || len(t) == 0 {
		return nil, false
	}
	return t, true
}
