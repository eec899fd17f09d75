//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify(t *testing.T) {
	tests := map[string]string{
		"NNS": "NOUN", "VBD": "VERB", "MD": "VERB", "JJR": "ADJ", "RB": "ADV", "WRB": "ADV",
		"PRP$": "PRON", "DT": "DET", "IN": "ADP", "CD": "NUM", "CC": "CONJ", "TO": "PRT", ",": ".", "FW": "X",
	}
	for tag, want := range tests {
		assert.Equal(t, want, Simplify(tag), tag)
	}
	assert.Equal(t, "n", WordNetPOS("NNP"))
	assert.Equal(t, "v", WordNetPOS("VBG"))
	assert.Equal(t, "a", WordNetPOS("JJ"))
	assert.Equal(t, "r", WordNetPOS("RBR"))
	assert.Equal(t, "", WordNetPOS("DT"))
}

func TestTagFreqAndFilter(t *testing.T) {
	tagged := []TaggedToken{{"dogs", "NNS"}, {"bark", "VBP"}, {"at", "IN"}, {"Rome", "NNP"}}
	fd := TagFreq(tagged, true)
	assert.Equal(t, 2, fd.Count("NOUN"))
	assert.Equal(t, 1, TagFreq(tagged, false).Count("NNP"))

	nn := FilterTags(tagged, "NN")
	assert.Len(t, nn, 2)
	assert.Equal(t, "dogs/NNS", nn[0].String())
	assert.Len(t, FilterTags(tagged, "NN", "VB"), 3)
}

func TestProseTagger(t *testing.T) {
	tagged, err := NewProseTagger().Tag("The dog barked loudly at the mailman.")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(tagged), 7)
	assert.Equal(t, "The", tagged[0].Text)
	assert.Equal(t, "DET", Simplify(tagged[0].Tag))

	var nouns []string
	for _, n := range FilterTags(tagged, "NN") {
		nouns = append(nouns, n.Text)
	}
	assert.Contains(t, nouns, "dog")
}
