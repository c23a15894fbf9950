// Package align computes minimum edit-distance alignments between two token
// sequences and classifies every edit as a substitution, deletion or insertion.
//
// The full (len(ref)+1) x (len(hyp)+1) cost grid is kept so the alignment can
// be traced back, which makes memory quadratic in the input lengths. Names and
// short phrases are far below any practical limit; callers aligning whole pages
// should keep that cost in mind.
package align

// EditCounts is the S/D/I decomposition of one alignment together with the
// reference length N used as the rate denominator.
type EditCounts struct {
	Substitutions int `json:"substitutions" yaml:"substitutions"`
	Deletions     int `json:"deletions" yaml:"deletions"`
	Insertions    int `json:"insertions" yaml:"insertions"`
	RefLength     int `json:"ref_length" yaml:"ref_length"`
}

// Errors returns S+D+I, which equals the edit distance of the alignment.
func (c EditCounts) Errors() int {
	return c.Substitutions + c.Deletions + c.Insertions
}

// Add sums two counts element-wise.
func (c EditCounts) Add(o EditCounts) EditCounts {
	return EditCounts{
		Substitutions: c.Substitutions + o.Substitutions,
		Deletions:     c.Deletions + o.Deletions,
		Insertions:    c.Insertions + o.Insertions,
		RefLength:     c.RefLength + o.RefLength,
	}
}

// Rate returns (S+D+I)/N, or 0 when N is 0.
func (c EditCounts) Rate() float64 {
	if c.RefLength == 0 {
		return 0
	}
	return float64(c.Errors()) / float64(c.RefLength)
}

// Op is a single step of an alignment.
type Op byte

const (
	Match      Op = '='
	Substitute Op = 'S'
	Delete     Op = 'D'
	Insert     Op = 'I'
)

// Script is an alignment in reference order.
type Script []Op

func (s Script) String() string {
	b := make([]byte, len(s))
	for i, op := range s {
		b[i] = byte(op)
	}
	return string(b)
}

// Counts tallies the script. refLength is recovered from the ops that consume
// a reference token.
func (s Script) Counts() EditCounts {
	var c EditCounts
	for _, op := range s {
		switch op {
		case Match:
			c.RefLength++
		case Substitute:
			c.Substitutions++
			c.RefLength++
		case Delete:
			c.Deletions++
			c.RefLength++
		case Insert:
			c.Insertions++
		}
	}
	return c
}

// Align returns the edit counts of the minimum-cost alignment of hyp against ref.
//
// When several alignments share the minimum cost the backtrace prefers, at
// every cell, the diagonal move, then deletion, then insertion. The total
// S+D+I never depends on that choice but the split does.
func Align[T comparable](ref, hyp []T) EditCounts {
	c := EditCounts{RefLength: len(ref)}
	backtrace(ref, hyp, costGrid(ref, hyp), func(op Op) {
		switch op {
		case Substitute:
			c.Substitutions++
		case Delete:
			c.Deletions++
		case Insert:
			c.Insertions++
		}
	})
	return c
}

// Trace returns the alignment chosen by Align as an ordered script.
func Trace[T comparable](ref, hyp []T) Script {
	ops := make(Script, 0, max(len(ref), len(hyp)))
	backtrace(ref, hyp, costGrid(ref, hyp), func(op Op) {
		ops = append(ops, op)
	})
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}

// Distance returns the unit-cost Levenshtein distance between ref and hyp.
func Distance[T comparable](ref, hyp []T) int {
	return costGrid(ref, hyp)[len(ref)][len(hyp)]
}

func costGrid[T comparable](ref, hyp []T) [][]int {
	dist := make([][]int, len(ref)+1)
	dist[0] = make([]int, len(hyp)+1)
	for j := range dist[0] {
		dist[0][j] = j
	}
	for i := 1; i <= len(ref); i++ {
		dist[i] = make([]int, len(hyp)+1)
		dist[i][0] = i
		for j := 1; j <= len(hyp); j++ {
			del := dist[i-1][j] + 1
			ins := dist[i][j-1] + 1
			sub := dist[i-1][j-1] + cost(ref[i-1], hyp[j-1])
			dist[i][j] = min(sub, del, ins)
		}
	}
	return dist
}

// backtrace walks from the bottom-right cell to the origin and reports each
// step in reverse reference order.
func backtrace[T comparable](ref, hyp []T, dist [][]int, visit func(Op)) {
	i, j := len(ref), len(hyp)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && dist[i][j] == dist[i-1][j-1]+cost(ref[i-1], hyp[j-1]):
			if ref[i-1] == hyp[j-1] {
				visit(Match)
			} else {
				visit(Substitute)
			}
			i--
			j--
		case i > 0 && dist[i][j] == dist[i-1][j]+1:
			visit(Delete)
			i--
		default:
			visit(Insert)
			j--
		}
	}
}

func cost[T comparable](a, b T) int {
	if a == b {
		return 0
	}
	return 1
}
