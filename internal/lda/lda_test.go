//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var fruit = []string{"apple banana", "apple banana", "apple cherry", "cherry date"}

func fruitdtm(t *testing.T) *vec.DTM {
	o := vec.DefaultOptions()
	o.MinDF = 1
	o.MaxDF = 1
	o.Stops = nil
	d, err := vec.Vectorise(fruit, o)
	require.NoError(t, err)
	return d
}

// handmade - topic 0 is apple+banana, topic 1 is cherry+banana
func handmade(t *testing.T, d *vec.DTM) *Model {
	tt := mat.NewDense(2, len(d.Vocab), nil)
	set := func(topic int, w string, v float64) {
		i := d.Index(w)
		require.GreaterOrEqual(t, i, 0)
		tt.Set(topic, i, v)
	}
	set(0, "apple", 0.6)
	set(0, "banana", 0.3)
	set(0, "cherry", 0.05)
	set(0, "date", 0.05)
	set(1, "cherry", 0.5)
	set(1, "banana", 0.4)
	set(1, "apple", 0.05)
	set(1, "date", 0.05)

	dt := mat.NewDense(4, 2, []float64{
		0.9, 0.1,
		0.8, 0.2,
		0.3, 0.7,
		0.1, 0.9,
	})
	return Restore("hand", d.Vocab, dt, tt, d.DocLengths, d.TermFreq, DefaultOptions(), time.Now())
}

func TestReports(t *testing.T) {
	d := fruitdtm(t)
	m := handmade(t, d)
	assert.Equal(t, 2, m.K)

	tw, err := m.TopWords(0, 2)
	require.NoError(t, err)
	require.Len(t, tw, 2)
	assert.Equal(t, "apple", tw[0].Word)
	assert.InDelta(t, 0.6, tw[0].Score, 1e-9)
	assert.Equal(t, 3, tw[0].Count)
	assert.Equal(t, "banana", tw[1].Word)

	_, err = m.TopWords(2, 2)
	assert.ErrorIs(t, err, ErrNoSuchTopic)
	_, err = m.TopWords(-1, 2)
	assert.ErrorIs(t, err, ErrNoSuchTopic)

	assert.Equal(t, [][]string{{"apple", "banana"}, {"cherry", "banana"}}, m.TopicTable(2))

	dom, err := m.DominantTopic(2)
	require.NoError(t, err)
	assert.Equal(t, 1, dom)
	_, err = m.DominantTopic(4)
	assert.ErrorIs(t, err, ErrNoSuchDoc)

	assert.Equal(t, []int{2, 2}, m.DocsPerTopic())

	w := m.TopicWeights()
	assert.InDelta(t, 1.0, w[0], 1e-9)
	assert.InDelta(t, 1.9/2.1, w[1], 1e-9)

	td, err := m.TopDocuments(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []DocScore{{Doc: 3, Weight: 0.9}, {Doc: 2, Weight: 0.7}}, td)
	_, err = m.TopDocuments(5, 1)
	assert.ErrorIs(t, err, ErrNoSuchTopic)

	var b bytes.Buffer
	m.PrintTopics(&b, 2)
	assert.Equal(t, "Topic #0: apple banana\nTopic #1: cherry banana\n", b.String())
}

func TestCoherence(t *testing.T) {
	d := fruitdtm(t)
	m := handmade(t, d)
	c, err := m.Coherence(d, 2)
	require.NoError(t, err)
	// apple+banana share both of banana's docs: log((2+1)/3); cherry+banana never meet: log((0+1)/2)
	assert.InDelta(t, 0.0, c[0], 1e-9)
	assert.InDelta(t, math.Log(0.5), c[1], 1e-9)

	s := m.Summarise(2, d)
	assert.Equal(t, 4, s.Docs)
	assert.Equal(t, 4, s.Terms)
	assert.Len(t, s.Coherence, 2)
	assert.Nil(t, m.Summarise(2, nil).Coherence)
}

func TestNormRows(t *testing.T) {
	n := normrows(mat.NewDense(2, 2, []float64{1, 3, 0, 0}))
	assert.Equal(t, []float64{0.25, 0.75}, n.RawRowView(0))
	assert.Equal(t, []float64{0.5, 0.5}, n.RawRowView(1))

	dt := doctopics(mat.NewDense(2, 3, []float64{1, 1, 3, 1, 3, 1}), []float64{4, 0, 4})
	r, c := dt.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, []float64{0.5, 0.5}, dt.RawRowView(1))
	assert.Equal(t, []float64{0.75, 0.25}, dt.RawRowView(2))
}

func TestFit(t *testing.T) {
	var docs []string
	for i := 0; i < 20; i++ {
		docs = append(docs, strings.Repeat("rocket orbit launch moon ", 3), strings.Repeat("car engine brakes road ", 3))
	}
	o := vec.DefaultOptions()
	o.MinDF = 1
	d, err := vec.Vectorise(docs, o)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Topics = 2
	opts.Iterations = 20
	m, err := Fit(d, opts)
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)

	r, c := m.DocTopic.Dims()
	assert.Equal(t, 40, r)
	assert.Equal(t, 2, c)
	for i := 0; i < r; i++ {
		assert.InDelta(t, 1.0, mat.Sum(m.DocTopic.RowView(i)), 1e-6)
	}
	r, c = m.TopicTerm.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 8, c)

	dpt := m.DocsPerTopic()
	assert.Equal(t, 40, dpt[0]+dpt[1])

	held, err := d.Transform([]string{"rocket moon", "brakes road"})
	require.NoError(t, err)
	x, err := m.Transform(held)
	require.NoError(t, err)
	r, _ = x.Dims()
	assert.Equal(t, 2, r)

	opts.Topics = 0
	_, err = Fit(d, opts)
	assert.ErrorIs(t, err, ErrBadTopics)
}
