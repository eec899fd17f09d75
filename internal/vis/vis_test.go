//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"bytes"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/lda"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func toymodel() *lda.Model {
	vocab := []string{"apple", "banana", "carrot", "date"}
	tt := mat.NewDense(2, 4, []float64{
		0.5, 0.4, 0.05, 0.05,
		0.05, 0.05, 0.5, 0.4,
	})
	dt := mat.NewDense(4, 2, []float64{
		0.9, 0.1,
		0.8, 0.2,
		0.1, 0.9,
		0.2, 0.8,
	})
	return lda.Restore("toy", vocab, dt, tt, []float64{10, 10, 10, 30}, []float64{12, 8, 15, 25}, lda.DefaultOptions(), time.Now())
}

func TestPrepare(t *testing.T) {
	p, err := Prepare(toymodel(), 3, 0.6, 0.01)
	require.NoError(t, err)

	// topic freqs: 24 vs 36, so the second topic is shown first
	assert.Equal(t, []int{2, 1}, p.TopicOrder)
	require.Len(t, p.Coords, 2)
	assert.InDelta(t, 60, p.Coords[0].Freq, 1e-9)
	assert.InDelta(t, 40, p.Coords[1].Freq, 1e-9)
	assert.Equal(t, 1, p.Coords[0].Topic)
	assert.Equal(t, 2, p.Coords[0].Orig)
	assert.Equal(t, 1, p.Coords[1].Orig)
	for i, c := range p.Coords {
		assert.Equal(t, p.TopicOrder[i], c.Orig)
	}

	// the estimated in-topic frequencies add back up to the observed ones
	for w := range p.Vocab {
		s := 0.0
		for k := 0; k < p.K; k++ {
			s += p.TopicTermFreq[k][w]
		}
		assert.InDelta(t, p.TermFreq[w], s, 1e-9)
	}

	assert.Len(t, p.DefaultTerms, 3)
	assert.Len(t, p.TopicTerms, 2)
	for _, ti := range p.DefaultTerms {
		assert.Equal(t, DEFAULTCAT, ti.Category)
		assert.Equal(t, ti.Total, ti.Freq)
	}

	// two points: the map distance is the divergence itself
	d := p.Distances[0][1]
	assert.Positive(t, d)
	assert.InDelta(t, d, math.Abs(p.Coords[0].X-p.Coords[1].X), 1e-6)
	assert.InDelta(t, 0, p.Coords[0].Y, 1e-6)
	assert.NotEmpty(t, p.TokenTable)
}

func TestRelevant(t *testing.T) {
	p, err := Prepare(toymodel(), 4, 0.6, 0.01)
	require.NoError(t, err)

	// display topic 1 is model topic 1: carrot and date
	tt, err := p.Relevant(1, 1, 2)
	require.NoError(t, err)
	require.Len(t, tt, 2)
	assert.Equal(t, "carrot", tt[0].Term)
	assert.Equal(t, "date", tt[1].Term)
	assert.Equal(t, "Topic1", tt[0].Category)

	tt, err = p.Relevant(1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, "carrot", tt[0].Term)

	tt, err = p.Relevant(2, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "apple", tt[0].Term)

	_, err = p.Relevant(3, 0.5, 5)
	assert.ErrorIs(t, err, lda.ErrNoSuchTopic)
	_, err = p.Relevant(1, 1.5, 5)
	assert.ErrorIs(t, err, ErrBadLambda)
	_, err = Prepare(toymodel(), 3, -1, 0.01)
	assert.ErrorIs(t, err, ErrBadLambda)
}

func TestPreparedJSON(t *testing.T) {
	p, err := Prepare(toymodel(), 3, 0.6, 0.01)
	require.NoError(t, err)
	b, err := p.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"mdsDat"`)

	q, err := LoadPrepared(b)
	require.NoError(t, err)
	assert.Equal(t, p.TopicOrder, q.TopicOrder)
	tt, err := q.Relevant(1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "carrot", tt[0].Term)

	_, err = LoadPrepared([]byte("{"))
	assert.Error(t, err)
}

func TestJensenShannon(t *testing.T) {
	a := []float64{0.5, 0.5, 0}
	b := []float64{0, 0, 1}
	assert.InDelta(t, 0, JensenShannon(a, a), 1e-12)
	assert.InDelta(t, math.Ln2, JensenShannon(a, b), 1e-12)
	c := []float64{0.2, 0.3, 0.5}
	assert.InDelta(t, JensenShannon(a, c), JensenShannon(c, a), 1e-12)
}

func TestPCoA(t *testing.T) {
	// a 3-4-5 triangle comes back with its distances intact
	pts := [][2]float64{{0, 0}, {3, 0}, {0, 4}}
	dist := make([][]float64, 3)
	for i := range dist {
		dist[i] = make([]float64, 3)
		for j := range dist[i] {
			dist[i][j] = math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])
		}
	}
	xy := pcoa(dist)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			got := math.Hypot(xy[i][0]-xy[j][0], xy[i][1]-xy[j][1])
			assert.InDelta(t, dist[i][j], got, 1e-6)
		}
	}
	assert.Len(t, pcoa([][]float64{{0}}), 1)
}

func TestCharts(t *testing.T) {
	p, err := Prepare(toymodel(), 3, 0.6, 0.01)
	require.NoError(t, err)

	wcl := str.WCList{{Word: "the", Count: 5}, {Word: "cat", Count: 2}}
	html, err := Fragment(
		FreqLine("freq", wcl, true),
		FreqBar("bars", wcl),
		Dispersion("disp", []string{"cat"}, map[string][]int{"cat": {1, 9}}, 19),
		IntertopicMap(p),
		TermBars(p, 1, p.TopicTerms[0]),
		TermBars(p, 0, p.DefaultTerms),
		TopicBars("weights", "weight", []float64{1, 0.5}),
	)
	require.NoError(t, err)
	assert.Equal(t, 7, strings.Count(html, "echarts.init("))
	assert.NotContains(t, html, "__f__")
	assert.NotContains(t, html, "<html>")

	nn := map[string][]vec.Neighbour{
		"rocket":  {{Word: "missile", Rank: 1, Similarity: 0.9}, {Word: "orbit", Rank: 2, Similarity: 0.7}},
		"missile": {{Word: "rocket", Rank: 1, Similarity: 0.9}, {Word: "warhead", Rank: 2, Similarity: 0.8}},
	}
	g := NeighbourGraph("rocket", "w2v", nn, true)
	var buf bytes.Buffer
	require.NoError(t, Standalone(&buf, "neighbours", g))
	assert.Contains(t, buf.String(), "<html>")
	assert.Contains(t, buf.String(), "<title>neighbours</title>")
	assert.Contains(t, buf.String(), "warhead")

	dir := t.TempDir()
	path, err := WriteHTML(dir, "g.html", "neighbours", NeighbourGraph("rocket", "", nn, false))
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "warhead")
}

func TestDocMap(t *testing.T) {
	_, err := DocMap(toymodel(), nil, DocMapOptions{})
	require.NoError(t, err)

	small := lda.Restore("s", []string{"a"}, mat.NewDense(2, 1, []float64{1, 1}), mat.NewDense(1, 1, []float64{1}),
		[]float64{1, 1}, []float64{2}, lda.DefaultOptions(), time.Now())
	_, err = DocMap(small, nil, DocMapOptions{})
	assert.ErrorIs(t, err, ErrTooFewDocs)

	pts := []DocPoint{{Doc: 0, X: 1, Y: 2, Topic: 0, Label: "sci.space/01"}, {Doc: 1, X: -1, Y: 0, Topic: 1}}
	html, err := Fragment(DocMapChart(pts, 2))
	require.NoError(t, err)
	assert.Contains(t, html, "sci.space/01")
	assert.Contains(t, html, "doc 1")
}
