//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vec"
	"gonum.org/v1/gonum/mat"
)

// DocScore - a document and how much of it belongs to a topic
type DocScore struct {
	Doc    int     `json:"doc"`
	Weight float64 `json:"weight"`
}

// Summary - what the web layer and the store want to know about a model
type Summary struct {
	ID           string     `json:"id"`
	K            int        `json:"k"`
	Docs         int        `json:"docs"`
	Terms        int        `json:"terms"`
	Weighting    string     `json:"weighting"`
	Created      time.Time  `json:"created"`
	Options      Options    `json:"options"`
	Topics       [][]string `json:"topics"`
	DocsPerTopic []int      `json:"docspertopic"`
	Weights      []float64  `json:"weights"`
	Coherence    []float64  `json:"coherence,omitempty"`
}

func (m *Model) checktopic(topic int) error {
	if topic < 0 || topic >= m.K {
		return fmt.Errorf("topic %d of %d: %w", topic, m.K, ErrNoSuchTopic)
	}
	return nil
}

// TopWords - the n most probable words of a topic; Score is p(w|t)
func (m *Model) TopWords(topic int, n int) (str.WCList, error) {
	if err := m.checktopic(topic); err != nil {
		return nil, err
	}
	row := m.TopicTerm.RawRowView(topic)
	idx := gen.ArgSortDesc(row)
	if n > 0 && n < len(idx) {
		idx = idx[:n]
	}
	out := make(str.WCList, len(idx))
	for i, j := range idx {
		out[i] = str.WordCount{Word: m.Vocab[j], Score: row[j]}
		if j < len(m.TermFreq) {
			out[i].Count = int(m.TermFreq[j])
		}
	}
	return out, nil
}

// TopicTable - the top n words of every topic
func (m *Model) TopicTable(n int) [][]string {
	tt := make([][]string, m.K)
	for t := 0; t < m.K; t++ {
		ww, _ := m.TopWords(t, n)
		for _, w := range ww {
			tt[t] = append(tt[t], w.Word)
		}
	}
	return tt
}

// PrintTopics - "Topic #0: word word word..."
func (m *Model) PrintTopics(w io.Writer, n int) {
	for t, ww := range m.TopicTable(n) {
		_, _ = fmt.Fprintf(w, "Topic #%d: %s\n", t, strings.Join(ww, " "))
	}
}

// DominantTopic - the heaviest topic of a document
func (m *Model) DominantTopic(doc int) (int, error) {
	d, _ := m.DocTopic.Dims()
	if doc < 0 || doc >= d {
		return 0, fmt.Errorf("document %d of %d: %w", doc, d, ErrNoSuchDoc)
	}
	row := m.DocTopic.RawRowView(doc)
	return gen.ArgSortDesc(row)[0], nil
}

// DocsPerTopic - N documents have topic X as their dominant topic
func (m *Model) DocsPerTopic() []int {
	counter := make([]int, m.K)
	d, _ := m.DocTopic.Dims()
	for doc := 0; doc < d; doc++ {
		w, _ := m.DominantTopic(doc)
		counter[w]++
	}
	return counter
}

// TopicWeights - scaled total accumulated weight of each topic; the heaviest is 1
func (m *Model) TopicWeights() []float64 {
	counter := make([]float64, m.K)
	d, _ := m.DocTopic.Dims()
	for doc := 0; doc < d; doc++ {
		for t, v := range m.DocTopic.RawRowView(doc) {
			counter[t] += v
		}
	}
	high := 0.0
	for _, c := range counter {
		high = max(high, c)
	}
	if high == 0 {
		return counter
	}
	for i := range counter {
		counter[i] /= high
	}
	return counter
}

// TopDocuments - the n documents that most belong to a topic
func (m *Model) TopDocuments(topic int, n int) ([]DocScore, error) {
	if err := m.checktopic(topic); err != nil {
		return nil, err
	}
	col := mat.Col(nil, topic, m.DocTopic)
	idx := gen.ArgSortDesc(col)
	if n > 0 && n < len(idx) {
		idx = idx[:n]
	}
	out := make([]DocScore, len(idx))
	for i, j := range idx {
		out[i] = DocScore{Doc: j, Weight: col[j]}
	}
	return out, nil
}

// Coherence - UMass coherence of the top words of each topic; closer to 0 is better
func (m *Model) Coherence(dtm *vec.DTM, topn int) ([]float64, error) {
	if len(dtm.Vocab) != len(m.Vocab) {
		return nil, fmt.Errorf("Coherence(): vocabulary of %d terms; model has %d", len(dtm.Vocab), len(m.Vocab))
	}

	// document sets for every word that is a top word somewhere
	_, nd := dtm.Counts.Dims()
	docsets := make(map[int]map[int]struct{})
	tops := make([][]int, m.K)
	for t := 0; t < m.K; t++ {
		idx := gen.ArgSortDesc(m.TopicTerm.RawRowView(t))
		tops[t] = idx[:min(topn, len(idx))]
		for _, w := range tops[t] {
			if _, ok := docsets[w]; ok {
				continue
			}
			ds := make(map[int]struct{})
			for d := 0; d < nd; d++ {
				if dtm.Counts.At(w, d) > 0 {
					ds[d] = struct{}{}
				}
			}
			docsets[w] = ds
		}
	}

	scores := make([]float64, m.K)
	for t, ww := range tops {
		s := 0.0
		for i := 1; i < len(ww); i++ {
			for j := 0; j < i; j++ {
				dj := docsets[ww[j]]
				if len(dj) == 0 {
					continue
				}
				co := 0
				for d := range docsets[ww[i]] {
					if _, ok := dj[d]; ok {
						co++
					}
				}
				s += math.Log((float64(co) + 1) / float64(len(dj)))
			}
		}
		scores[t] = s
	}
	return scores, nil
}

// Summarise - the headline numbers; coherence is only filled in if dtm is not nil
func (m *Model) Summarise(n int, dtm *vec.DTM) Summary {
	d, _ := m.DocTopic.Dims()
	s := Summary{
		ID:           m.ID,
		K:            m.K,
		Docs:         d,
		Terms:        len(m.Vocab),
		Weighting:    m.Weighting,
		Created:      m.Created,
		Options:      m.Options,
		Topics:       m.TopicTable(n),
		DocsPerTopic: m.DocsPerTopic(),
		Weights:      m.TopicWeights(),
	}
	if dtm != nil {
		s.Coherence, _ = m.Coherence(dtm, n)
	}
	return s
}
