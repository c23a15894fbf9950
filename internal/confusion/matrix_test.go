package confusion

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix_Record(t *testing.T) {
	tests := []struct {
		name              string
		predicted, actual bool
		want              Matrix
	}{
		{name: "true positive", predicted: true, actual: true, want: Matrix{TP: 1}},
		{name: "false positive", predicted: true, actual: false, want: Matrix{FP: 1}},
		{name: "false negative", predicted: false, actual: true, want: Matrix{FN: 1}},
		{name: "true negative", predicted: false, actual: false, want: Matrix{TN: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Matrix
			m.Record(tt.predicted, tt.actual)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestMatrix_Summarize(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want Summary
	}{
		{name: "empty", m: Matrix{}, want: Summary{}},
		{name: "only negatives", m: Matrix{TN: 4}, want: Summary{Accuracy: 1}},
		{name: "perfect", m: Matrix{TP: 3, TN: 1}, want: Summary{Precision: 1, Recall: 1, F1: 1, Accuracy: 1}},
		{name: "no predicted positives", m: Matrix{FN: 2, TN: 2}, want: Summary{Accuracy: 0.5}},
		{
			name: "mixed",
			m:    Matrix{TP: 6, FP: 2, FN: 3, TN: 9},
			want: Summary{
				Precision: 0.75,
				Recall:    6.0 / 9.0,
				F1:        2 * 0.75 * (6.0 / 9.0) / (0.75 + 6.0/9.0),
				Accuracy:  0.75,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Summarize()
			assert.InDelta(t, tt.want.Precision, got.Precision, 1e-12)
			assert.InDelta(t, tt.want.Recall, got.Recall, 1e-12)
			assert.InDelta(t, tt.want.F1, got.F1, 1e-12)
			assert.InDelta(t, tt.want.Accuracy, got.Accuracy, 1e-12)
		})
	}
}

func TestMatrix_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		var m Matrix
		calls := rng.Intn(40)
		for i := 0; i < calls; i++ {
			m.Record(rng.Intn(2) == 1, rng.Intn(2) == 1)
		}

		require.Equal(t, calls, m.Total())
		s := m.Summarize()
		for _, v := range []float64{s.Precision, s.Recall, s.F1, s.Accuracy} {
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestFlagScorer(t *testing.T) {
	t.Run("correct agree line adds one TP and one TN", func(t *testing.T) {
		var f FlagScorer
		f.RecordLine(true, false, true, false)
		assert.Equal(t, Matrix{TP: 1, TN: 1}, f.Pooled())
		assert.Equal(t, Matrix{TP: 1}, f.Agree)
		assert.Equal(t, Matrix{TN: 1}, f.Disagree)
	})

	t.Run("pooled equals a single shared matrix", func(t *testing.T) {
		lines := [][4]bool{
			{true, false, true, false},
			{false, true, true, false},
			{true, true, false, true},
			{false, false, false, false},
		}

		var f FlagScorer
		var shared Matrix
		for _, l := range lines {
			f.RecordLine(l[0], l[1], l[2], l[3])
			shared.Record(l[0], l[2])
			shared.Record(l[1], l[3])
		}

		assert.Equal(t, shared, f.Pooled())
		assert.Equal(t, 2*len(lines), f.Pooled().Total())
	})

	t.Run("merge", func(t *testing.T) {
		var a, b FlagScorer
		a.RecordLine(true, false, true, true)
		b.RecordLine(false, true, false, true)

		merged := a.Merge(b)
		assert.Equal(t, Matrix{TP: 1, TN: 1}, merged.Agree)
		assert.Equal(t, Matrix{TP: 1, FN: 1}, merged.Disagree)
	})
}
