//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"errors"
	"fmt"

	"github.com/danaugrs/go-tsne/tsne"
	"github.com/e-gun/CorpusWorkshop/internal/lda"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"
)

var ErrTooFewDocs = errors.New("too few documents to map")

// DocPoint - one document placed by t-SNE; Topic is its dominant topic
type DocPoint struct {
	Doc   int     `json:"doc"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Topic int     `json:"topic"`
	Label string  `json:"label"`
}

// DocMapOptions - zero values get the vv defaults
type DocMapOptions struct {
	Perplexity   float64
	LearningRate float64
	MaxIter      int
	Verbose      bool
}

// DocMap - t-SNE of the doc-topic matrix down to two dimensions; labels are optional and matched by position
func DocMap(m *lda.Model, labels []string, o DocMapOptions) ([]DocPoint, error) {
	const (
		MINDOCS = 4
		MSG1    = "DocMap(): %d docs; perplexity %.1f"
	)

	nd, _ := m.DocTopic.Dims()
	if nd < MINDOCS {
		return nil, fmt.Errorf("%d docs: %w", nd, ErrTooFewDocs)
	}

	if o.Perplexity <= 0 {
		o.Perplexity = vv.TSNEPERPLEX
	}
	if o.LearningRate <= 0 {
		o.LearningRate = vv.TSNELEARNRT
	}
	if o.MaxIter <= 0 {
		o.MaxIter = vv.TSNEMAXITER
	}
	// the perplexity has to stay well under the number of points
	o.Perplexity = min(o.Perplexity, max(2, float64(nd-1)/3))

	Msg.PEEK(fmt.Sprintf(MSG1, nd, o.Perplexity))

	// Y is the label for each row in the matrix
	doclabels := make([]float64, nd)
	pts := make([]DocPoint, nd)
	for d := 0; d < nd; d++ {
		w, _ := m.DominantTopic(d)
		doclabels[d] = float64(w)
		pts[d] = DocPoint{Doc: d, Topic: w}
		if d < len(labels) {
			pts[d].Label = labels[d]
		}
	}

	wv := mat.DenseCopyOf(m.DocTopic)
	t := tsne.NewTSNE(2, o.Perplexity, o.LearningRate, o.MaxIter, o.Verbose)
	t.EmbedData(wv, nil)

	for d := range pts {
		pts[d].X = t.Y.At(d, 0)
		pts[d].Y = t.Y.At(d, 1)
	}
	return pts, nil
}

// DocMapChart - the documents coloured by their dominant topic: one series per topic
func DocMapChart(pts []DocPoint, k int) *charts.Scatter {
	const (
		TITLE  = "Documents by dominant topic (t-SNE)"
		SERIES = "Topic #%d"
		SYMSZ  = 8
	)

	series := make([][]opts.ScatterData, k)
	for _, p := range pts {
		if p.Topic < 0 || p.Topic >= k {
			continue
		}
		name := p.Label
		if name == "" {
			name = fmt.Sprintf("doc %d", p.Doc)
		}
		series[p.Topic] = append(series[p.Topic], opts.ScatterData{
			Name:       name,
			Value:      []float32{round(p.X), round(p.Y)},
			SymbolSize: SYMSZ,
		})
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(globals(TITLE, fmt.Sprintf("%d documents", len(pts)))...)
	sc.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Scale: true}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: true}),
		charts.WithLegendOpts(opts.Legend{Show: true, Bottom: BOTTALIGN}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Formatter: "{b}"}),
	)
	for t, s := range series {
		sc.AddSeries(fmt.Sprintf(SERIES, t), s)
	}
	return sc
}
