//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNGrams(t *testing.T) {
	tt := []string{"a", "b", "c"}
	assert.Equal(t, [][]string{{"a", "b"}, {"b", "c"}}, Bigrams(tt))
	assert.Equal(t, [][]string{{"a", "b", "c"}}, Trigrams(tt))
	assert.Empty(t, NGrams(tt, 4))

	fd := NGramFreq(strings.Fields("a b a b"), 2)
	assert.Equal(t, 2, fd.Count("a b"))
	assert.Equal(t, 1, fd.Count("b a"))
}

func finder() *BigramCollocationFinder {
	return NewBigramCollocationFinder(strings.Fields("new york is big . new york is old . i like new shoes ."))
}

func TestCollocationMeasures(t *testing.T) {
	f := finder()
	assert.Equal(t, 12, f.Len())
	f.ApplyFreqFilter(2)
	require.Equal(t, 2, f.Len())

	rf, err := f.ScoreNgrams("raw_freq")
	require.NoError(t, err)
	assert.Equal(t, Bigram{"new", "york"}, rf[0].Bigram)
	assert.InDelta(t, 2.0/15.0, rf[0].Score, 1e-9)
	assert.Equal(t, 2, rf[0].Count)

	pmi, err := f.Nbest("pmi", 1)
	require.NoError(t, err)
	require.Len(t, pmi, 1)
	assert.Equal(t, "york is", pmi[0].Bigram.String())
	assert.InDelta(t, math.Log2(7.5), pmi[0].Score, 1e-9)

	sc, err := f.ScoreNgrams("student_t")
	require.NoError(t, err)
	for _, s := range sc {
		if s.Bigram == (Bigram{"new", "york"}) {
			assert.InDelta(t, 1.6/math.Sqrt(2), s.Score, 1e-6)
		}
	}

	sc, err = f.ScoreNgrams("chi_sq")
	require.NoError(t, err)
	for _, s := range sc {
		if s.Bigram == (Bigram{"new", "york"}) {
			assert.InDelta(t, 15.0*576.0/936.0, s.Score, 1e-6)
		}
	}

	sc, err = f.ScoreNgrams("likelihood_ratio")
	require.NoError(t, err)
	for _, s := range sc {
		assert.Positive(t, s.Score)
	}

	_, err = f.ScoreNgrams("vibes")
	assert.ErrorIs(t, err, ErrUnknownMeasure)
}

func TestWordFilter(t *testing.T) {
	f := finder()
	f.ApplyFreqFilter(2)
	f.ApplyWordFilter(func(w string) bool { return len(w) < 3 })
	sc, err := f.Nbest("pmi", 0)
	require.NoError(t, err)
	require.Len(t, sc, 1)
	assert.Equal(t, Bigram{"new", "york"}, sc[0].Bigram)
}
