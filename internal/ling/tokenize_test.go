//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordTokens(t *testing.T) {
	got := WordTokens("Don't panic, it’s only Dr. Smith's car.")
	want := []string{"Do", "n't", "panic", ",", "it", "'s", "only", "Dr", ".", "Smith", "'s", "car", "."}
	assert.Equal(t, want, got)

	got = WordTokens("The U.S. spent $3.5 billion--wow!")
	want = []string{"The", "U.S.", "spent", "$", "3.5", "billion", "--", "wow", "!"}
	assert.Equal(t, want, got)

	assert.Empty(t, WordTokens("   "))
}

func TestSentences(t *testing.T) {
	s := "Dr. Smith went to Washington. He arrived at 3.5 p.m. today! Was it late? Yes."
	want := []string{"Dr. Smith went to Washington.", "He arrived at 3.5 p.m. today!", "Was it late?", "Yes."}
	assert.Equal(t, want, Sentences(s, false))

	assert.Equal(t, []string{"First part;", "second part:", "third"}, Sentences("First part; second part: third", true))
	assert.Equal(t, []string{"First part; second part: third"}, Sentences("First part; second part: third", false))
}

func TestWordsAndDiversity(t *testing.T) {
	assert.Equal(t, []string{"the", "dog"}, Words([]string{"The", "U.S.", "dog", "'s", "3"}))
	assert.InDelta(t, 0.75, LexicalDiversity([]string{"a", "b", "a", "c"}), 1e-9)
	assert.Zero(t, LexicalDiversity(nil))
}

func TestNormalise(t *testing.T) {
	assert.Equal(t, "cafe", Normalise("café", true))
	assert.Equal(t, "café", Normalise("café", false))
	assert.Equal(t, "straße", Lower("STRAßE"))
}
