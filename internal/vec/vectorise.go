//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/ling"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/e-gun/nlp"
	"gonum.org/v1/gonum/mat"
)

const (
	WTCOUNT = "count"
	WTTFIDF = "tfidf"
)

var (
	ErrVocabularyEmpty = errors.New("no terms survived the vectoriser settings")
	termre             = regexp.MustCompile(`\p{L}{2,}`)
)

// Options - MinDF below 1 is a proportion of the documents, otherwise a document count;
// MaxDF up to 1 is a proportion, above 1 a count
type Options struct {
	MinDF       float64  `json:"mindf"`
	MaxDF       float64  `json:"maxdf"`
	MaxFeatures int      `json:"maxfeatures"` // 0 means "all of them"
	Stops       []string `json:"-"`
	Weighting   string   `json:"weighting"`
	MinTokenLen int      `json:"mintokenlen"`
}

func DefaultOptions() Options {
	return Options{
		MinDF:       vv.VECMINDF,
		MaxDF:       vv.VECMAXDF,
		MaxFeatures: vv.VECMAXFEATURES,
		Stops:       EnglishStops,
		Weighting:   vv.VECWEIGHTING,
		MinTokenLen: 2,
	}
}

// DTM - the document-term matrix and what was learned while building it
type DTM struct {
	Matrix     mat.Matrix // terms x docs; raw counts or tf-idf
	Counts     mat.Matrix // terms x docs; always raw counts
	Vocab      []string   // index order
	DocLengths []float64  // tokens kept per doc
	TermFreq   []float64  // corpus count per term
	Weighting  string
	Vectoriser *nlp.CountVectoriser
	Options    Options
	nonzero    int
	tfidf      *nlp.TfidfTransformer
	keep       map[string]struct{}
	stops      map[string]struct{}
}

// Analyse - lower-case; words of 2+ letters; no stop words; nothing shorter than minlen
func Analyse(doc string, stops map[string]struct{}, minlen int) []string {
	found := termre.FindAllString(ling.Lower(doc), -1)
	out := found[:0]
	for _, w := range found {
		if _, s := stops[w]; s {
			continue
		}
		if utf8.RuneCountInString(w) < minlen {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Vectorise - docs --> DTM: analyse, prune by document frequency, cap the vocabulary, then count (and weight)
func Vectorise(docs []string, opts Options) (*DTM, error) {
	const (
		FAIL1 = "Vectorise() could not count the documents: %w"
		FAIL2 = "Vectorise() could not weight the documents: %w"
		MSG1  = "Vectorise(): %d docs; %d terms seen; %d kept"
	)

	if opts.Weighting == "" {
		opts.Weighting = WTCOUNT
	}
	if opts.Weighting != WTCOUNT && opts.Weighting != WTTFIDF {
		return nil, fmt.Errorf("unknown weighting '%s'", opts.Weighting)
	}

	stops := gen.ToSet(opts.Stops)
	analysed := make([][]string, len(docs))
	df := make(map[string]int)
	tf := make(map[string]int)
	for i, d := range docs {
		analysed[i] = Analyse(d, stops, opts.MinTokenLen)
		seen := make(map[string]struct{})
		for _, w := range analysed[i] {
			tf[w]++
			if _, ok := seen[w]; !ok {
				seen[w] = struct{}{}
				df[w]++
			}
		}
	}

	nd := float64(len(docs))
	lo := opts.MinDF
	if lo < 1 {
		lo = math.Ceil(lo * nd)
	}
	hi := opts.MaxDF
	if hi <= 0 {
		hi = nd
	} else if hi <= 1 {
		hi = math.Floor(hi * nd)
	}
	// lo > hi leaves nothing and so ErrVocabularyEmpty
	candidates := make(map[string]int)
	for w, n := range df {
		if float64(n) >= lo && float64(n) <= hi {
			candidates[w] = tf[w]
		}
	}

	ranked := str.SortedWordCounts(candidates)
	if opts.MaxFeatures > 0 && len(ranked) > opts.MaxFeatures {
		ranked = ranked[:opts.MaxFeatures]
	}
	if len(ranked) == 0 {
		return nil, ErrVocabularyEmpty
	}

	keep := make(map[string]struct{}, len(ranked))
	for _, r := range ranked {
		keep[r.Word] = struct{}{}
	}

	dtm := &DTM{Weighting: opts.Weighting, Options: opts, keep: keep, stops: stops}
	filtered := dtm.filter(analysed)

	dtm.Vectoriser = nlp.NewCountVectoriser()
	counts, err := dtm.Vectoriser.FitTransform(filtered...)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}
	dtm.Counts = counts
	dtm.Matrix = counts

	if opts.Weighting == WTTFIDF {
		dtm.tfidf = nlp.NewTfidfTransformer()
		w, e := dtm.tfidf.FitTransform(counts)
		if e != nil {
			return nil, fmt.Errorf(FAIL2, e)
		}
		dtm.Matrix = w
	}

	dtm.Vocab = make([]string, len(dtm.Vectoriser.Vocabulary))
	for k, v := range dtm.Vectoriser.Vocabulary {
		dtm.Vocab[v] = k
	}
	dtm.TermFreq = make([]float64, len(dtm.Vocab))
	for i, w := range dtm.Vocab {
		dtm.TermFreq[i] = float64(tf[w])
	}

	Msg.PEEK(fmt.Sprintf(MSG1, len(docs), len(tf), len(dtm.Vocab)))
	return dtm, nil
}

// filter - keep only vocabulary terms; sets DocLengths and the nonzero count as it goes
func (d *DTM) filter(analysed [][]string) []string {
	d.DocLengths = make([]float64, len(analysed))
	d.nonzero = 0
	filtered := make([]string, len(analysed))
	for i, ww := range analysed {
		var sb strings.Builder
		distinct := make(map[string]struct{})
		for _, w := range ww {
			if _, ok := d.keep[w]; !ok {
				continue
			}
			sb.WriteString(w)
			sb.WriteString(" ")
			distinct[w] = struct{}{}
			d.DocLengths[i]++
		}
		d.nonzero += len(distinct)
		filtered[i] = sb.String()
	}
	return filtered
}

// Transform - vectorise unseen docs against this vocabulary (and these idf weights)
func (d *DTM) Transform(docs []string) (*DTM, error) {
	analysed := make([][]string, len(docs))
	for i, doc := range docs {
		analysed[i] = Analyse(doc, d.stops, d.Options.MinTokenLen)
	}

	nd := &DTM{Vocab: d.Vocab, Weighting: d.Weighting, Vectoriser: d.Vectoriser, Options: d.Options,
		tfidf: d.tfidf, keep: d.keep, stops: d.stops}
	filtered := nd.filter(analysed)

	counts, err := d.Vectoriser.Transform(filtered...)
	if err != nil {
		return nil, fmt.Errorf("DTM.Transform(): %w", err)
	}
	nd.Counts = counts
	nd.Matrix = counts
	if d.tfidf != nil {
		if nd.Matrix, err = d.tfidf.Transform(counts); err != nil {
			return nil, fmt.Errorf("DTM.Transform(): %w", err)
		}
	}

	nd.TermFreq = make([]float64, len(d.Vocab))
	r, c := counts.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			nd.TermFreq[i] += counts.At(i, j)
		}
	}
	return nd, nil
}

// Dims - (terms, docs)
func (d *DTM) Dims() (int, int) {
	return len(d.Vocab), len(d.DocLengths)
}

// Density - the share of the cells that are not zero
func (d *DTM) Density() float64 {
	t, n := d.Dims()
	if t*n == 0 {
		return 0
	}
	return float64(d.nonzero) / float64(t*n)
}

// TopTerms - the n most frequent terms in the corpus
func (d *DTM) TopTerms(n int) str.WCList {
	mp := make(map[string]int, len(d.Vocab))
	for i, w := range d.Vocab {
		mp[w] = int(d.TermFreq[i])
	}
	wcl := str.SortedWordCounts(mp)
	if n > 0 && n < len(wcl) {
		wcl = wcl[:n]
	}
	return wcl
}

// Index - the row of term w; -1 if it is not in the vocabulary
func (d *DTM) Index(w string) int {
	if i, ok := d.Vectoriser.Vocabulary[w]; ok {
		return i
	}
	return -1
}
