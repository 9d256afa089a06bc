package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/lemmago/lemma"
)

func TestRankTieBreak(t *testing.T) {
	out := []lemma.Lemma{
		{Text: "c", Weight: 1, RuleID: 3},
		{Text: "a", Weight: 1, RuleID: 1},
		{Text: "b", Weight: 2, RuleID: 9},
	}
	res := rank(out, Options{})
	assert.Equal(t, "b", res[0].Text)
	assert.Equal(t, "a", res[1].Text)
	assert.Equal(t, "c", res[2].Text)
	assert.InDelta(t, 0.5, res[0].Weight, 1e-9)
	assert.InDelta(t, 0.25, res[2].Weight, 1e-9)
}

func TestRankZeroWeights(t *testing.T) {
	out := []lemma.Lemma{{Text: "a"}, {Text: "b"}}
	res := rank(out, Options{MinProbability: 0.5})
	assert.Len(t, res, 2)
}

func TestCountDistortions(t *testing.T) {
	assert.Equal(t, 0, countDistortions([]uint16{1, 2}, []uint16{1, 2}))
	assert.Equal(t, 1, countDistortions([]uint16{1, 2, 3}, []uint16{1, 5}))
	assert.Equal(t, 0, countDistortions([]uint16{0, 2}, []uint16{1, 5}))
}
