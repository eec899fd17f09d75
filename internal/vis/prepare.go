//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/lda"
	"gonum.org/v1/gonum/mat"
)

const (
	DEFAULTCAT = "Default"
	TOPICCAT   = "Topic%d"
)

var ErrBadLambda = errors.New("lambda must be between 0 and 1")

// TopicCoord - one bubble of the intertopic distance map; Topic is the display number (1 is the largest), Orig the model topic (1-based, as in TopicOrder)
type TopicCoord struct {
	Topic int     `json:"topics"`
	Orig  int     `json:"orig"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Freq  float64 `json:"Freq"` // percentage of all tokens
}

// TermInfo - one row of a term table; for "Default" rows Freq == Total
type TermInfo struct {
	Term      string  `json:"Term"`
	Category  string  `json:"Category"`
	Freq      float64 `json:"Freq"`
	Total     float64 `json:"Total"`
	LogProb   float64 `json:"logprob"`
	LogLift   float64 `json:"loglift"`
	Relevance float64 `json:"relevance"`
	Saliency  float64 `json:"saliency,omitempty"`
}

// TokenShare - how a term's occurrences are spread over the topics
type TokenShare struct {
	Term  string  `json:"Term"`
	Topic int     `json:"Topic"`
	Freq  float64 `json:"Freq"`
}

// Prepared - everything the topic browser needs; the matrices are kept so that any lambda can be asked for later.
// Phi and TopicTermFreq rows are in display order.
type Prepared struct {
	ModelID       string       `json:"modelid"`
	K             int          `json:"k"`
	R             int          `json:"R"`
	Lambda        float64      `json:"lambda"`
	LambdaStep    float64      `json:"lambdastep"`
	TopicOrder    []int        `json:"topic.order"` // display position --> model topic (1-based)
	Coords        []TopicCoord `json:"mdsDat"`
	DefaultTerms  []TermInfo   `json:"tinfo"`
	TopicTerms    [][]TermInfo `json:"topicterms"`
	TokenTable    []TokenShare `json:"token.table"`
	Vocab         []string     `json:"vocab"`
	TermFreq      []float64    `json:"termfreq"`
	TermProp      []float64    `json:"termprop"`
	Saliency      []float64    `json:"saliency"`
	Phi           [][]float64  `json:"phi"`
	TopicTermFreq [][]float64  `json:"ttf"`
	Distances     [][]float64  `json:"distances"`
}

// Prepare - topic proportions, an MDS map of the topics, salient terms, and the per-topic term tables at lambda
func Prepare(m *lda.Model, r int, lambda float64, lambdastep float64) (*Prepared, error) {
	if lambda < 0 || lambda > 1 {
		return nil, ErrBadLambda
	}
	if r < 1 {
		r = 30
	}
	nd, k := m.DocTopic.Dims()
	_, nv := m.TopicTerm.Dims()
	if nv != len(m.Vocab) || nv != len(m.TermFreq) || nd != len(m.DocLengths) {
		return nil, fmt.Errorf("Prepare(): model dimensions do not agree: %d docs, %d lengths, %d terms, %d vocab",
			nd, len(m.DocLengths), nv, len(m.Vocab))
	}

	// [a] topic frequencies from the document lengths
	topicfreq := make([]float64, k)
	for d := 0; d < nd; d++ {
		for t, v := range m.DocTopic.RawRowView(d) {
			topicfreq[t] += v * m.DocLengths[d]
		}
	}
	total := 0.0
	for _, f := range topicfreq {
		total += f
	}
	if total == 0 {
		return nil, errors.New("Prepare(): the documents are empty")
	}

	order := gen.ArgSortDesc(topicfreq)

	p := &Prepared{
		ModelID:    m.ID,
		K:          k,
		R:          min(r, nv),
		Lambda:     lambda,
		LambdaStep: lambdastep,
		Vocab:      m.Vocab,
		TermFreq:   m.TermFreq,
	}

	// [b] reorder everything by topic size
	topicprop := make([]float64, k)
	p.Phi = make([][]float64, k)
	p.TopicOrder = make([]int, k)
	for i, t := range order {
		topicprop[i] = topicfreq[t] / total
		p.Phi[i] = slices.Clone(m.TopicTerm.RawRowView(t))
		p.TopicOrder[i] = t + 1
	}

	// [c] term proportions and the estimated term frequency within each topic
	tfsum := 0.0
	for _, f := range m.TermFreq {
		tfsum += f
	}
	p.TermProp = make([]float64, nv)
	for w, f := range m.TermFreq {
		p.TermProp[w] = f / tfsum
	}

	p.TopicTermFreq = make([][]float64, k)
	for t := range p.Phi {
		p.TopicTermFreq[t] = make([]float64, nv)
		for w := range p.Phi[t] {
			p.TopicTermFreq[t][w] = p.Phi[t][w] * topicprop[t] * total
		}
	}
	// make the columns add up to the observed frequencies
	for w := 0; w < nv; w++ {
		cs := 0.0
		for t := 0; t < k; t++ {
			cs += p.TopicTermFreq[t][w]
		}
		if cs == 0 {
			continue
		}
		for t := 0; t < k; t++ {
			p.TopicTermFreq[t][w] *= m.TermFreq[w] / cs
		}
	}

	// [d] saliency: p(w) * KL(p(t|w) || p(t))
	p.Saliency = make([]float64, nv)
	for w := 0; w < nv; w++ {
		cs := 0.0
		for t := 0; t < k; t++ {
			cs += p.Phi[t][w]
		}
		if cs == 0 {
			continue
		}
		dist := 0.0
		for t := 0; t < k; t++ {
			ptw := p.Phi[t][w] / cs
			if ptw > 0 && topicprop[t] > 0 {
				dist += ptw * math.Log(ptw/topicprop[t])
			}
		}
		p.Saliency[w] = p.TermProp[w] * dist
	}

	// [e] default term table
	for _, w := range gen.ArgSortDesc(p.Saliency)[:p.R] {
		p.DefaultTerms = append(p.DefaultTerms, TermInfo{
			Term:     m.Vocab[w],
			Category: DEFAULTCAT,
			Freq:     m.TermFreq[w],
			Total:    m.TermFreq[w],
			LogProb:  safelog(p.TermProp[w]),
			LogLift:  0,
			Saliency: p.Saliency[w],
		})
	}

	// [f] per-topic tables
	p.TopicTerms = make([][]TermInfo, k)
	for t := 1; t <= k; t++ {
		tt, _ := p.Relevant(t, lambda, p.R)
		p.TopicTerms[t-1] = tt
	}

	// [g] intertopic distances
	p.Distances = jsdistances(p.Phi)
	xy := pcoa(p.Distances)
	p.Coords = make([]TopicCoord, k)
	for i := range p.Coords {
		p.Coords[i] = TopicCoord{Topic: i + 1, Orig: order[i] + 1, X: xy[i][0], Y: xy[i][1], Freq: topicprop[i] * 100}
	}

	p.TokenTable = p.tokentable()
	return p, nil
}

// Relevant - the top r terms of a display topic (1..K) ranked by lambda * log p(w|t) + (1-lambda) * log lift
func (p *Prepared) Relevant(topic int, lambda float64, r int) ([]TermInfo, error) {
	if topic < 1 || topic > p.K {
		return nil, fmt.Errorf("topic %d of %d: %w", topic, p.K, lda.ErrNoSuchTopic)
	}
	if lambda < 0 || lambda > 1 {
		return nil, ErrBadLambda
	}

	phi := p.Phi[topic-1]
	rel := make([]float64, len(phi))
	for w := range phi {
		lp := safelog(phi[w])
		lift := safelog(phi[w]) - safelog(p.TermProp[w])
		rel[w] = lambda*lp + (1-lambda)*lift
	}

	idx := gen.ArgSortDesc(rel)
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case rel[a] > rel[b]:
			return -1
		case rel[a] < rel[b]:
			return 1
		}
		return strings.Compare(p.Vocab[a], p.Vocab[b])
	})
	if r > 0 && r < len(idx) {
		idx = idx[:r]
	}

	cat := fmt.Sprintf(TOPICCAT, topic)
	out := make([]TermInfo, len(idx))
	for i, w := range idx {
		out[i] = TermInfo{
			Term:      p.Vocab[w],
			Category:  cat,
			Freq:      p.TopicTermFreq[topic-1][w],
			Total:     p.TermFreq[w],
			LogProb:   safelog(phi[w]),
			LogLift:   safelog(phi[w]) - safelog(p.TermProp[w]),
			Relevance: rel[w],
		}
	}
	return out, nil
}

// tokentable - for every term on show: the share of it that each topic accounts for
func (p *Prepared) tokentable() []TokenShare {
	shown := make(map[string]struct{})
	for _, ti := range p.DefaultTerms {
		shown[ti.Term] = struct{}{}
	}
	for _, tt := range p.TopicTerms {
		for _, ti := range tt {
			shown[ti.Term] = struct{}{}
		}
	}

	var out []TokenShare
	for w, term := range p.Vocab {
		if _, ok := shown[term]; !ok || p.TermFreq[w] == 0 {
			continue
		}
		for t := 0; t < p.K; t++ {
			if f := p.TopicTermFreq[t][w]; f >= 0.5 {
				out = append(out, TokenShare{Term: term, Topic: t + 1, Freq: f / p.TermFreq[w]})
			}
		}
	}
	return out
}

// JSON - the whole thing, ready for the browser or the store
func (p *Prepared) JSON() ([]byte, error) {
	return json.Marshal(p)
}

// LoadPrepared - the inverse of JSON()
func LoadPrepared(b []byte) (*Prepared, error) {
	var p Prepared
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("LoadPrepared(): %w", err)
	}
	return &p, nil
}

func safelog(f float64) float64 {
	if f <= 0 {
		return math.Log(1e-12)
	}
	return math.Log(f)
}

// JensenShannon - the symmetric divergence between two distributions (natural log)
func JensenShannon(p, q []float64) float64 {
	ps, qs := sum(p), sum(q)
	if ps == 0 || qs == 0 {
		return 0
	}
	js := 0.0
	for i := range p {
		a, b := p[i]/ps, q[i]/qs
		m := (a + b) / 2
		if a > 0 {
			js += 0.5 * a * math.Log(a/m)
		}
		if b > 0 {
			js += 0.5 * b * math.Log(b/m)
		}
	}
	return js
}

func sum(ff []float64) float64 {
	s := 0.0
	for _, f := range ff {
		s += f
	}
	return s
}

func jsdistances(phi [][]float64) [][]float64 {
	k := len(phi)
	d := make([][]float64, k)
	for i := range d {
		d[i] = make([]float64, k)
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			d[i][j] = JensenShannon(phi[i], phi[j])
			d[j][i] = d[i][j]
		}
	}
	return d
}

// pcoa - classical multidimensional scaling down to two dimensions
func pcoa(dist [][]float64) [][2]float64 {
	n := len(dist)
	out := make([][2]float64, n)
	if n < 2 {
		return out
	}

	// B = -1/2 * H D² H where H is the centering matrix
	sq := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sq.Set(i, j, dist[i][j]*dist[i][j])
		}
	}
	h := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := -1 / float64(n)
			if i == j {
				v += 1
			}
			h.Set(i, j, v)
		}
	}
	var hd, b mat.Dense
	hd.Mul(h, sq)
	b.Mul(&hd, h)
	b.Scale(-0.5, &b)

	bs := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			bs.SetSym(i, j, (b.At(i, j)+b.At(j, i))/2)
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(bs, true); !ok {
		return out
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	// eigenvalues come back in ascending order
	for c := 0; c < 2 && c < n; c++ {
		ix := n - 1 - c
		ev := vals[ix]
		if ev < 1e-12 {
			continue
		}
		s := math.Sqrt(ev)
		for i := 0; i < n; i++ {
			out[i][c] = vecs.At(i, ix) * s
		}
	}
	return out
}
