//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"testing"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testdocs = []string{
	"The rocket launch reached orbit. Rocket engines roared.",
	"The orbit of the moon; rocket science.",
	"Engines and brakes on the car. Car dealers sell car parts.",
	"The car engine needs oil.",
}

func testopts() Options {
	o := DefaultOptions()
	o.MinDF = 2
	o.MaxDF = 1
	return o
}

func TestAnalyse(t *testing.T) {
	got := Analyse("The Rocket's 2 engines: a roar!", gen.ToSet(EnglishStops), 2)
	assert.Equal(t, []string{"rocket", "engines", "roar"}, got)
	assert.Equal(t, []string{"engines"}, Analyse("rocket engines", nil, 7))
}

func TestVectorise(t *testing.T) {
	d, err := Vectorise(testdocs, testopts())
	require.NoError(t, err)

	nt, nd := d.Dims()
	assert.Equal(t, 4, nt)
	assert.Equal(t, 4, nd)
	assert.ElementsMatch(t, []string{"car", "engines", "orbit", "rocket"}, d.Vocab)
	assert.Equal(t, []float64{4, 2, 4, 1}, d.DocLengths)
	assert.InDelta(t, 0.5, d.Density(), 1e-9)

	tt := d.TopTerms(1)
	require.Len(t, tt, 1)
	assert.Equal(t, str.WordCount{Word: "car", Count: 4}, tt[0])

	car := d.Index("car")
	require.GreaterOrEqual(t, car, 0)
	assert.Equal(t, 3.0, d.Counts.At(car, 2))
	assert.Equal(t, 4.0, d.TermFreq[car])
	assert.Equal(t, -1, d.Index("moon"))

	r, c := d.Matrix.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 4, c)
}

func TestVectoriseLimits(t *testing.T) {
	o := testopts()
	o.MaxFeatures = 2
	d, err := Vectorise(testdocs, o)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"car", "rocket"}, d.Vocab)

	o = testopts()
	o.MaxDF = 0.4
	_, err = Vectorise(testdocs, o)
	assert.ErrorIs(t, err, ErrVocabularyEmpty)

	o = testopts()
	o.MinDF = 0.5 // two of the four docs
	d, err = Vectorise(testdocs, o)
	require.NoError(t, err)
	assert.Len(t, d.Vocab, 4)

	o.Weighting = "bm25"
	_, err = Vectorise(testdocs, o)
	assert.Error(t, err)

	_, err = Vectorise(nil, testopts())
	assert.ErrorIs(t, err, ErrVocabularyEmpty)
}

func TestTfidfAndTransform(t *testing.T) {
	o := testopts()
	o.Weighting = WTTFIDF
	d, err := Vectorise(testdocs, o)
	require.NoError(t, err)
	assert.Equal(t, WTTFIDF, d.Weighting)

	car := d.Index("car")
	assert.Equal(t, 3.0, d.Counts.At(car, 2))
	assert.NotEqual(t, 3.0, d.Matrix.At(car, 2))

	held, err := d.Transform([]string{"rocket car car zeppelin"})
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, held.DocLengths)
	assert.Equal(t, 2.0, held.Counts.At(car, 0))
	assert.Equal(t, 2.0, held.TermFreq[car])
	assert.Equal(t, d.Vocab, held.Vocab)
}

func TestLSA(t *testing.T) {
	d, err := Vectorise(testdocs, testopts())
	require.NoError(t, err)

	res, err := LSA(d, 2, 3)
	require.NoError(t, err)
	assert.Len(t, res.Concepts, 2)
	assert.Len(t, res.Concepts[0], 3)
	r, c := res.DocSpace.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 4, c)

	// more terms asked for than there are concepts: every term of the vocabulary comes back once
	res, err = LSA(d, 2, 10)
	require.NoError(t, err)
	for _, cc := range res.Concepts {
		assert.ElementsMatch(t, d.Vocab, cc)
	}

	res, err = LSA(d, 1, 2)
	require.NoError(t, err)
	assert.Len(t, res.Concepts[0], 2)

	_, err = LSA(d, 9, 3)
	assert.Error(t, err)
}
