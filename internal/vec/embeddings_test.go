//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/e-gun/wego/pkg/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbours(t *testing.T) {
	embs := embedding.Embeddings{
		{Word: "rocket", Dim: 2, Vector: []float64{1, 0}},
		{Word: "missile", Dim: 2, Vector: []float64{0.9, 0.1}},
		{Word: "car", Dim: 2, Vector: []float64{0, 1}},
		{Word: "truck", Dim: 2, Vector: []float64{0.1, 0.9}},
		{Word: "bus", Dim: 2, Vector: []float64{0.2, 0.8}},
	}
	e, err := NewEmbeddings(MODELW2V, embs)
	require.NoError(t, err)

	// no Norm was supplied: NewEmbeddings has to fill it in
	for _, v := range e.Vectors {
		assert.Greater(t, v.Norm, 0.0, v.Word)
	}

	nn, err := e.Neighbours("rocket", 4)
	require.NoError(t, err)
	require.NotEmpty(t, nn)
	assert.Equal(t, "missile", nn[0].Word)
	assert.Greater(t, nn[0].Similarity, nn[len(nn)-1].Similarity)

	// far more neighbours than the vocabulary holds: only real words come back
	nn, err = e.Neighbours("rocket", 12)
	require.NoError(t, err)
	require.Len(t, nn, 3)
	for i, n := range nn {
		assert.NotEmpty(t, n.Word)
		assert.Equal(t, uint(i+1), n.Rank)
		assert.False(t, math.IsNaN(n.Similarity))
	}
	assert.Equal(t, []string{"missile", "bus", "truck"}, []string{nn[0].Word, nn[1].Word, nn[2].Word})

	_, err = e.Neighbours("zeppelin", 4)
	assert.Error(t, err)

	g := e.NeighbourGraph("car", 4)
	assert.Contains(t, g, "car")

	_, err = NewEmbeddings(MODELW2V, nil)
	assert.ErrorIs(t, err, ErrNoVectors)
}

func TestReadVecConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := readvecconfig(dir, vv.CONFIGVECTORW2V, DefaultW2VVectors)
	assert.Equal(t, DefaultW2VVectors.Dim, cfg.Dim)
	// second pass reads what the first one wrote
	cfg = readvecconfig(dir, vv.CONFIGVECTORW2V, DefaultW2VVectors)
	assert.Equal(t, DefaultW2VVectors.Window, cfg.Window)
	assert.Equal(t, DefaultGloveVectors, readvecconfig("", vv.CONFIGVECTORGLOVE, DefaultGloveVectors))
}

func TestBuildTextBlock(t *testing.T) {
	tb := BuildTextBlock([]string{"The Rocket flies.", "A car"}, EnglishStops)
	assert.Equal(t, "rocket flies \ncar \n", tb)
}

func TestTrainEmbeddings(t *testing.T) {
	if testing.Short() {
		t.Skip("trains a model")
	}
	var docs []string
	for i := 0; i < 50; i++ {
		docs = append(docs, strings.Repeat("rocket orbit launch moon ", 5), strings.Repeat("car engine brakes road ", 5))
	}
	type result struct {
		e   *Embeddings
		err error
	}
	done := make(chan result, 1)
	go func() {
		e, err := TrainEmbeddings(docs, EnglishStops, EmbeddingOptions{MinCount: 1, Dim: 10, Iter: 2})
		done <- result{e, err}
	}()

	var r result
	select {
	case r = <-done:
	case <-time.After(2 * time.Minute):
		t.Fatal("TrainEmbeddings() never returned")
	}
	require.NoError(t, r.err)
	e := r.e
	assert.Len(t, e.Vectors, 8)
	nn, err := e.Neighbours("rocket", 4)
	require.NoError(t, err)
	assert.NotEmpty(t, nn)
}
