package ballot

// Roster is the fixed, ordered list of canonical names; entry i is the
// ground-truth name of sequence number i+1. A Roster is immutable once built.
type Roster struct {
	names []string
}

// NewRoster copies names into a new roster.
func NewRoster(names []string) Roster {
	cp := make([]string, len(names))
	copy(cp, names)
	return Roster{names: cp}
}

// Name returns the canonical name of a 1-based sequence number.
func (r Roster) Name(seq int) (string, bool) {
	if seq < 1 || seq > len(r.names) {
		return "", false
	}
	return r.names[seq-1], true
}

func (r Roster) Len() int { return len(r.names) }

// Names returns a copy of the roster entries.
func (r Roster) Names() []string {
	cp := make([]string, len(r.names))
	copy(cp, r.names)
	return cp
}
