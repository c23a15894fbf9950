package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "only whitespace", in: " \t\n ", want: ""},
		{name: "already canonical", in: "OLIVER JOHNSON", want: "OLIVER JOHNSON"},
		{name: "lower case", in: "oliver johnson", want: "OLIVER JOHNSON"},
		{name: "surrounding space", in: "  Emily Harris ", want: "EMILY HARRIS"},
		{name: "internal runs", in: "EMILY  \t HARRIS", want: "EMILY HARRIS"},
		{name: "newlines", in: "GRACE\nMITCHELL\r\n", want: "GRACE MITCHELL"},
		{name: "unicode whitespace", in: "DANIEL\u00a0\u2003PARKER", want: "DANIEL PARKER"},
		{name: "vietnamese diacritics", in: "nguyễn văn an", want: "NGUYỄN VĂN AN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "  a  b ", "Oliver\tJohnSOM", "nguyễn  văn", "x"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizePtr(t *testing.T) {
	assert.Equal(t, "", NormalizePtr(nil))

	s := " sophia  miller"
	assert.Equal(t, "SOPHIA MILLER", NormalizePtr(&s))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("EMILY HARRIS", "EMILY  HARRIS "))
	assert.True(t, Equal("", "   "))
	assert.False(t, Equal("OLIVER JOHNSON", "OLIVER JOHNSOM"))
}
