//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexicon() *Lemmatizer {
	return NewLemmatizer(NewFreqDist("car", "car", "cars", "mouse", "run", "study", "studies", "box", "big", "use"))
}

func TestLemmatize(t *testing.T) {
	lz := lexicon()
	tests := []struct {
		word, pos, want string
	}{
		{"cars", "n", "car"},
		{"Cars", "", "car"},
		{"mice", "n", "mouse"},
		{"studies", "n", "study"},
		{"boxes", "n", "box"},
		{"running", "v", "run"},
		{"used", "v", "use"},
		{"went", "v", "go"},
		{"bigger", "a", "big"},
		{"better", "a", "good"},
		{"glass", "n", "glass"},
		{"zorbs", "n", "zorbs"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lz.Lemmatize(tt.word, tt.pos), tt.word)
	}
}

func TestCandidates(t *testing.T) {
	assert.Contains(t, Candidates("running", "v"), "run")
	assert.Contains(t, Candidates("studies", "n"), "study")
	assert.Equal(t, []string{"mouse"}, Candidates("mice", "n"))
	assert.Empty(t, Candidates("quickly", "r"))
}

func TestLemmaTieBreak(t *testing.T) {
	// "taxes" --> "taxe" or "tax"; equal counts go to the shorter form
	lz := NewLemmatizer(NewFreqDist("taxe", "tax"))
	assert.Equal(t, "tax", lz.Lemmatize("taxes", "n"))
	lz = NewLemmatizer(NewFreqDist("taxe", "taxe", "tax"))
	assert.Equal(t, "taxe", lz.Lemmatize("taxes", "n"))
}

func TestLemmatizeTagged(t *testing.T) {
	lz := lexicon()
	tagged := []TaggedToken{{"The", "DT"}, {"mice", "NNS"}, {"went", "VBD"}, {",", ","}}
	wi := lz.LemmatizeTagged(tagged)
	assert.Len(t, wi, 4)
	assert.Equal(t, "the", wi[0].Lemma)
	assert.Equal(t, "mouse", wi[1].Lemma)
	assert.Equal(t, "go", wi[2].Lemma)
	assert.Equal(t, ",", wi[3].Lemma)
	assert.Equal(t, "NNS", wi[1].Tag)

	fd := LemmaFreq(wi)
	assert.Equal(t, 3, fd.N())
	assert.Equal(t, 1, fd.Count("go"))
}
