// Package confusion accumulates binary classification outcomes and derives
// precision, recall, F1 and accuracy from them.
package confusion

// Matrix holds running TP/FP/FN/TN counts. The zero value is an empty matrix.
type Matrix struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TN int `json:"tn"`
}

// Record classifies one (predicted, actual) pair.
func (m *Matrix) Record(predicted, actual bool) {
	switch {
	case predicted && actual:
		m.TP++
	case predicted && !actual:
		m.FP++
	case !predicted && actual:
		m.FN++
	default:
		m.TN++
	}
}

// Total is the number of recorded pairs.
func (m Matrix) Total() int {
	return m.TP + m.FP + m.FN + m.TN
}

// Merge returns the element-wise sum of m and o.
func (m Matrix) Merge(o Matrix) Matrix {
	return Matrix{
		TP: m.TP + o.TP,
		FP: m.FP + o.FP,
		FN: m.FN + o.FN,
		TN: m.TN + o.TN,
	}
}

// Summary is the set of ratios derived from a Matrix. Every ratio whose
// denominator is zero is reported as 0.
type Summary struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Accuracy  float64 `json:"accuracy"`
}

// Summarize derives precision, recall, F1 and accuracy.
func (m Matrix) Summarize() Summary {
	var s Summary
	if m.TP+m.FP > 0 {
		s.Precision = float64(m.TP) / float64(m.TP+m.FP)
	}
	if m.TP+m.FN > 0 {
		s.Recall = float64(m.TP) / float64(m.TP+m.FN)
	}
	if s.Precision+s.Recall > 0 {
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}
	if total := m.Total(); total > 0 {
		s.Accuracy = float64(m.TP+m.TN) / float64(total)
	}
	return s
}
