//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"fmt"
	"math"
	"strconv"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vec"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

//
// GRAPHING
//

// see also: https://echarts.apache.org/en/option.html

const (
	LEFTALIGN = "20"
	BOTTALIGN = "3%"
	SAVETYPE  = "png" // svg requires specific chart initialization
	SAVESTR   = "Save to file..."
	PRECISON  = 4
)

// globals - title, toolbox, size and tooltip; every chart here starts from these
func globals(title string, subtitle string) []charts.GlobalOpts {
	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Name:  title,
		Title: SAVESTR, // get chinese if ""
	}

	tbo := opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Left:    LEFTALIGN,
		Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs},
	}

	tit := opts.Title{
		Title:    title,
		Subtitle: subtitle,
		Left:     "center",
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: ChartWidth, Height: ChartHeight}),
		charts.WithTitleOpts(tit),
		charts.WithToolboxOpts(tbo),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	}
}

func round(val float64) float32 {
	ratio := math.Pow(10, float64(PRECISON))
	return float32(math.Round(val*ratio) / ratio)
}

// FreqLine - counts of the most common samples, or their running total if cumulative is set
func FreqLine(title string, wcl str.WCList, cumulative bool) *charts.Line {
	const (
		YCOUNT = "Counts"
		YCUMUL = "Cumulative Counts"
	)

	x := make([]string, len(wcl))
	y := make([]opts.LineData, len(wcl))
	t := 0
	for i, w := range wcl {
		x[i] = w.Word
		t += w.Count
		if cumulative {
			y[i] = opts.LineData{Value: t}
		} else {
			y[i] = opts.LineData{Value: w.Count}
		}
	}

	yn := YCOUNT
	if cumulative {
		yn = YCUMUL
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globals(title, "")...)
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: "Samples", AxisLabel: &opts.AxisLabel{Show: true, Interval: "0", Rotate: 90}}),
		charts.WithYAxisOpts(opts.YAxis{Name: yn}),
	)
	line.SetXAxis(x).AddSeries(yn, y)
	return line
}

// FreqBar - a bar for each of the samples
func FreqBar(title string, wcl str.WCList) *charts.Bar {
	x := make([]string, len(wcl))
	y := make([]opts.BarData, len(wcl))
	for i, w := range wcl {
		x[i] = w.Word
		y[i] = opts.BarData{Value: w.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globals(title, "")...)
	bar.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: true, Interval: "0", Rotate: 60}}),
	)
	bar.SetXAxis(x).AddSeries("count", y)
	return bar
}

// Dispersion - where in the text each word turns up; one row per word
func Dispersion(title string, words []string, offsets map[string][]int, ntokens int) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(globals(title, fmt.Sprintf("%d tokens", ntokens))...)
	sc.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: "Word Offset", Type: "value", Min: 0, Max: ntokens}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: words}),
	)

	for i, w := range words {
		pts := make([]opts.ScatterData, len(offsets[w]))
		for j, o := range offsets[w] {
			pts[j] = opts.ScatterData{Name: w, Value: []int{o, i}, Symbol: "rect", SymbolSize: 6}
		}
		sc.AddSeries(w, pts)
	}
	return sc
}

// IntertopicMap - the topics as bubbles on their two principal coordinates; area follows the share of the tokens
func IntertopicMap(p *Prepared) *charts.Scatter {
	const (
		TITLE   = "Intertopic Distance Map (via multidimensional scaling)"
		MAXSYM  = 90
		MINSYM  = 8
		SERIES  = "topics"
		LABELAT = "inside"
	)

	maxfreq := 0.0
	for _, c := range p.Coords {
		maxfreq = max(maxfreq, c.Freq)
	}

	pts := make([]opts.ScatterData, len(p.Coords))
	for i, c := range p.Coords {
		sz := MINSYM
		if maxfreq > 0 {
			sz = max(MINSYM, int(math.Sqrt(c.Freq/maxfreq)*MAXSYM))
		}
		pts[i] = opts.ScatterData{
			Name:       strconv.Itoa(c.Topic),
			Value:      []float32{round(c.X), round(c.Y), round(c.Freq)},
			SymbolSize: sz,
		}
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(globals(TITLE, fmt.Sprintf("%d topics", p.K))...)
	sc.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: "PC1", Type: "value", Scale: true}),
		charts.WithYAxisOpts(opts.YAxis{Name: "PC2", Type: "value", Scale: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Formatter: "topic {b}: {c}"}),
	)
	sc.AddSeries(SERIES, pts,
		charts.WithLabelOpts(opts.Label{Show: true, Position: LABELAT, Formatter: "{b}"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "rgba(31,119,180,0.5)", BorderColor: "#1f77b4"}),
	)
	return sc
}

// TermBars - the overall frequency of each term with the share estimated to fall within the topic stacked on it;
// topic 0 means the default (salient) terms
func TermBars(p *Prepared, topic int, terms []TermInfo) *charts.Bar {
	const (
		TITLE1 = "Top-%d Most Salient Terms"
		TITLE2 = "Top-%d Most Relevant Terms for Topic %d (%.1f%% of tokens)"
		SUBTTL = "λ = %.2f"
		INTOP  = "Estimated term frequency within the selected topic"
		REST   = "Overall term frequency"
	)

	title := fmt.Sprintf(TITLE1, len(terms))
	if topic > 0 && topic <= len(p.Coords) {
		title = fmt.Sprintf(TITLE2, len(terms), topic, p.Coords[topic-1].Freq)
	}

	// bottom up so that the best term sits at the top once the axes are swapped
	n := len(terms)
	x := make([]string, n)
	in := make([]opts.BarData, n)
	rest := make([]opts.BarData, n)
	for i, t := range terms {
		j := n - 1 - i
		x[j] = t.Term
		f := t.Freq
		if topic == 0 {
			f = 0
		}
		in[j] = opts.BarData{Value: round(f)}
		rest[j] = opts.BarData{Value: round(math.Max(0, t.Total-f))}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globals(title, fmt.Sprintf(SUBTTL, p.Lambda))...)
	bar.SetGlobalOptions(
		charts.WithLegendOpts(opts.Legend{Show: true, Bottom: BOTTALIGN}),
		charts.WithYAxisOpts(opts.YAxis{AxisLabel: &opts.AxisLabel{Show: true, Interval: "0"}}),
	)
	bar.SetXAxis(x).
		AddSeries(INTOP, in, charts.WithBarChartOpts(opts.BarChart{Stack: "term"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#d62728"})).
		AddSeries(REST, rest, charts.WithBarChartOpts(opts.BarChart{Stack: "term"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#aec7e8"}))
	bar.XYReversal()
	return bar
}

// TopicBars - one bar per topic: weights, dominant-document counts, coherence...
func TopicBars(title string, series string, vals []float64) *charts.Bar {
	x := make([]string, len(vals))
	y := make([]opts.BarData, len(vals))
	for i, v := range vals {
		x[i] = fmt.Sprintf("Topic #%d", i)
		y[i] = opts.BarData{Value: round(v)}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(globals(title, "")...)
	bar.SetXAxis(x).AddSeries(series, y)
	return bar
}

// NeighbourGraph - a force layout of the nearest neighbours of coreword; extended adds the neighbours of the
// neighbours as peripheral nodes
func NeighbourGraph(coreword string, settings string, nn map[string][]vec.Neighbour, extended bool) *charts.Graph {
	const (
		SYMSIZE       = 25
		PERIPHSYMSZ   = 15
		SIZEDISTORT   = 2.25
		REPULSION     = 6000
		GRAVITY       = .15
		EDGELEN       = 40
		EDGEFNTSZ     = 8
		SERIESNAME    = ""
		LAYOUTTYPE    = "force"
		LABELPOSITON  = "right"
		DOTCOLOR      = "hsla(236, 33%, 40%, 1)"
		PERIPHCOLOR   = "hsla(286, 33%, 40%, 1)"
		LINECURVINESS = 0       // from 0 to 1, but non-zero will double-up the lines...
		LINETYPE      = "solid" // "solid", "dashed", "dotted"
		TITLESTR      = "Nearest neighbors of »%s«"
	)

	graph := charts.NewGraph()
	graph.SetGlobalOptions(globals(fmt.Sprintf(TITLESTR, coreword), settings)...)

	var gnn []opts.GraphNode
	var gll []opts.GraphLink
	valuelabel := opts.EdgeLabel{Show: true, FontSize: EDGEFNTSZ, Formatter: "{c}"}
	dot := &opts.ItemStyle{Color: DOTCOLOR}
	periph := &opts.ItemStyle{Color: PERIPHCOLOR}

	// find the max similarity: this will let you adjust bubble size so that most similar are biggest
	var maxsim float64
	for _, w := range nn[coreword] {
		maxsim = max(maxsim, w.Similarity)
	}
	if maxsim == 0 {
		maxsim = 1
	}

	used := make(map[string]bool)

	// the center point
	gnn = append(gnn, opts.GraphNode{Name: coreword, Value: 0, SymbolSize: fmt.Sprintf("%.4f", SYMSIZE*SIZEDISTORT), ItemStyle: dot})
	used[coreword] = true

	// the words directly related to this word
	for _, w := range nn[coreword] {
		sizemod := fmt.Sprintf("%.4f", ((w.Similarity/maxsim)*SIZEDISTORT)*SYMSIZE)
		gnn = append(gnn, opts.GraphNode{Name: w.Word, Value: round(w.Similarity), SymbolSize: sizemod, ItemStyle: dot})
		gll = append(gll, opts.GraphLink{Source: coreword, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
		used[w.Word] = true
	}

	// the relationships between the other words
	coreterms := gen.ToSet(gen.SortedKeys(nn))
	for _, t := range gen.SortedKeys(nn) {
		if t == coreword {
			continue
		}
		for _, w := range nn[t] {
			_, core := coreterms[w.Word]
			if !core && !extended {
				continue
			}
			if !used[w.Word] {
				gnn = append(gnn, opts.GraphNode{Name: w.Word, Value: round(w.Similarity), SymbolSize: PERIPHSYMSZ, ItemStyle: periph})
				used[w.Word] = true
			}
			gll = append(gll, opts.GraphLink{Source: t, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
		}
	}

	graph.AddSeries(SERIESNAME, gnn, gll,
		charts.WithLabelOpts(
			opts.Label{
				Show:     true,
				Position: LABELPOSITON,
			},
		),
		charts.WithLineStyleOpts(
			opts.LineStyle{
				Curveness: LINECURVINESS,
				Type:      LINETYPE,
			}),
		charts.WithGraphChartOpts(
			// cf. https://echarts.apache.org/en/option.html#series-graph
			opts.GraphChart{
				Layout: LAYOUTTYPE,
				Force: &opts.GraphForce{
					Repulsion:  REPULSION,
					Gravity:    GRAVITY,
					EdgeLength: EDGELEN,
				},
				Roam:               true,
				FocusNodeAdjacency: true,
			},
		),
	)
	return graph
}
