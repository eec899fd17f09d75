//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcordance(t *testing.T) {
	ci := NewConcordanceIndex(strings.Fields("the quick brown fox jumps over the lazy dog and the Fox sleeps"))
	cl, total := ci.Lines("fox", 30, 0)
	require.Equal(t, 2, total)
	require.Len(t, cl, 2)
	assert.Equal(t, " quick brown fox jumps over t", cl[0].Line)
	assert.Equal(t, 3, cl[0].Offset)
	assert.Equal(t, "Fox", cl[1].Query)
	for _, l := range cl {
		assert.Equal(t, 12, utf8.RuneCountInString(l.Left))
	}

	cl, total = ci.Lines("fox", 30, 1)
	assert.Equal(t, 2, total)
	assert.Len(t, cl, 1)

	var b bytes.Buffer
	ci.Print(&b, "fox", 30, 0)
	assert.True(t, strings.HasPrefix(b.String(), "Displaying 2 of 2 matches:\n"))

	b.Reset()
	ci.Print(&b, "cat", 30, 0)
	assert.Equal(t, "No matches\n", b.String())

	// a tiny width must not panic
	assert.NotPanics(t, func() { ci.Lines("sleeps", 3, 0) })
}

func sampletext() *Text {
	return NewText("pets", WordTokens("the cat sat. the dog sat. the cat ran. the dog ran. the bird flew"))
}

func TestSimilarAndContexts(t *testing.T) {
	tx := sampletext()
	assert.Equal(t, []string{"dog"}, tx.Similar("cat", 5))
	assert.Nil(t, tx.Similar("zebra", 5))
	assert.Equal(t, []string{"the_ran", "the_sat"}, tx.CommonContexts([]string{"cat", "dog"}, 0))
	assert.Nil(t, tx.CommonContexts([]string{"cat", "zebra"}, 0))
	assert.Equal(t, "<Text: pets>", tx.String())
}

func TestCountVocabDispersion(t *testing.T) {
	tx := sampletext()
	assert.Equal(t, 5, tx.Count("the"))
	assert.Equal(t, 4, tx.Count("."))
	assert.Equal(t, 19, tx.Vocab().N())

	d := tx.Dispersion([]string{"cat", "Dog"})
	assert.Equal(t, []int{1, 9}, d["cat"])
	assert.Equal(t, []int{5, 13}, d["Dog"])

	cl, total := tx.ConcordanceList("bird", 40, 0)
	assert.Equal(t, 1, total)
	assert.Equal(t, "bird", cl[0].Query)
}

func TestCollocations(t *testing.T) {
	tx := NewText("ny", WordTokens("New York is big. New York is old. I like New York."))
	cc := tx.Collocations(10, []string{"is"})
	require.Len(t, cc, 1)
	assert.Equal(t, "New York", cc[0].Bigram.String())
	assert.Equal(t, 3, cc[0].Count)
}
