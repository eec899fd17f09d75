//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/e-gun/wego/pkg/embedding"
	"github.com/e-gun/wego/pkg/embedding/embutil"
	"github.com/e-gun/wego/pkg/model"
	"github.com/e-gun/wego/pkg/model/glove"
	"github.com/e-gun/wego/pkg/model/lexvec"
	"github.com/e-gun/wego/pkg/model/modelutil/vector"
	"github.com/e-gun/wego/pkg/model/word2vec"
	"github.com/e-gun/wego/pkg/search"
)

var (
	DefaultW2VVectors = word2vec.Options{
		BatchSize:          1024,
		Dim:                125,
		DocInMemory:        true,
		Goroutines:         20,
		Initlr:             0.025,
		Iter:               15,
		LogBatch:           100000,
		MaxCount:           -1,
		MaxDepth:           150,
		MinCount:           10,
		MinLR:              0.0000025,
		ModelType:          "skipgram", // "cbow" results are not so hot
		NegativeSampleSize: 5,
		OptimizerType:      "hs",
		SubsampleThreshold: 0.001,
		ToLower:            false,
		UpdateLRBatch:      100000,
		Verbose:            false,
		Window:             8,
	}
	DefaultLexVecVectors = lexvec.Options{
		BatchSize:          1024,
		Dim:                125,
		DocInMemory:        true,
		Goroutines:         20,
		Initlr:             0.025,
		Iter:               15,
		LogBatch:           100000,
		MaxCount:           -1,
		MinCount:           10,
		MinLR:              0.025 * 1.0e-4,
		NegativeSampleSize: 5,
		RelationType:       "ppmi", // "co" will fail to model
		Smooth:             0.75,
		SubsampleThreshold: 1.0e-3,
		ToLower:            false,
		UpdateLRBatch:      100000,
		Verbose:            false,
		Window:             8,
	}
	DefaultGloveVectors = glove.Options{
		Alpha:              0.55,
		BatchSize:          1024,
		CountType:          "inc", // we panic on "prox"
		Dim:                75,
		DocInMemory:        true,
		Goroutines:         20,
		Initlr:             0.025,
		Iter:               25,
		LogBatch:           100000,
		MaxCount:           -1,
		MinCount:           10,
		SolverType:         "adagrad",
		SubsampleThreshold: 0.001,
		ToLower:            false,
		Verbose:            false,
		Window:             8,
		Xmax:               90,
	}
)

const (
	MODELW2V    = "w2v"
	MODELGLOVE  = "glove"
	MODELLEXVEC = "lexvec"
)

var ErrNoVectors = errors.New("the model produced no vectors")

// EmbeddingOptions - zero values leave the defaults (or the user's config file) alone
type EmbeddingOptions struct {
	Model     string
	ConfigDir string // "" means "do not read or write config files"
	MinCount  int
	Dim       int
	Iter      int
	Window    int
}

// Embeddings - trained word vectors and a searcher over them
type Embeddings struct {
	Model    string
	Vectors  embedding.Embeddings
	searcher *search.Searcher
}

// Neighbour - a word and its cosine similarity to the query
type Neighbour struct {
	Word       string  `json:"word"`
	Rank       uint    `json:"rank"`
	Similarity float64 `json:"similarity"`
}

// readvecconfig - read fn in dir into a copy of def; if fn does not exist, write def there
func readvecconfig[T any](dir string, fn string, def T) T {
	const (
		ERR1 = "readvecconfig() failed to parse "
		MSG1 = "wrote default vector configuration file "
		MSG2 = "read vector configuration from "
	)

	if dir == "" {
		return def
	}
	p := filepath.Join(dir, fn)

	if _, err := os.Stat(p); err != nil {
		content, e := json.MarshalIndent(def, vv.JSONINDENT, vv.JSONINDENT)
		if e == nil {
			e = os.WriteFile(p, content, vv.WRITEPERMS)
		}
		if e == nil {
			Msg.PEEK(MSG1 + fn)
		}
		return def
	}

	vc := def
	content, err := os.ReadFile(p)
	if err == nil {
		err = json.Unmarshal(content, &vc)
	}
	if err != nil {
		Msg.CRIT(ERR1 + fn)
		return def
	}
	Msg.TMI(MSG2 + fn)
	return vc
}

// override - non-zero EmbeddingOptions win
func override(n *int, v int) {
	if v > 0 {
		*n = v
	}
}

// newmodel - a wego model of the requested type; returns the iteration count for reporting
func newmodel(o EmbeddingOptions) (model.Model, int, error) {
	switch o.Model {
	case MODELGLOVE:
		cfg := readvecconfig(o.ConfigDir, vv.CONFIGVECTORGLOVE, DefaultGloveVectors)
		cfg.Goroutines = runtime.NumCPU()
		override(&cfg.MinCount, o.MinCount)
		override(&cfg.Dim, o.Dim)
		override(&cfg.Iter, o.Iter)
		override(&cfg.Window, o.Window)
		m, err := glove.NewForOptions(cfg)
		return m, cfg.Iter, err
	case MODELLEXVEC:
		cfg := readvecconfig(o.ConfigDir, vv.CONFIGVECTORLEXVEC, DefaultLexVecVectors)
		cfg.Goroutines = runtime.NumCPU()
		override(&cfg.MinCount, o.MinCount)
		override(&cfg.Dim, o.Dim)
		override(&cfg.Iter, o.Iter)
		override(&cfg.Window, o.Window)
		m, err := lexvec.NewForOptions(cfg)
		return m, cfg.Iter, err
	default:
		cfg := readvecconfig(o.ConfigDir, vv.CONFIGVECTORW2V, DefaultW2VVectors)
		cfg.Goroutines = runtime.NumCPU()
		override(&cfg.MinCount, o.MinCount)
		override(&cfg.Dim, o.Dim)
		override(&cfg.Iter, o.Iter)
		override(&cfg.Window, o.Window)
		m, err := word2vec.NewForOptions(cfg)
		return m, cfg.Iter, err
	}
}

// BuildTextBlock - the docs as one long lower-cased string without stop words
func BuildTextBlock(docs []string, stops []string) string {
	ss := gen.ToSet(stops)
	var sb strings.Builder
	sb.Grow(vv.CHARSPERDOC * len(docs))
	for _, d := range docs {
		for _, w := range Analyse(d, ss, 2) {
			sb.WriteString(w + " ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// TrainEmbeddings - turn a set of documents into word vectors
func TrainEmbeddings(docs []string, stops []string, o EmbeddingOptions) (*Embeddings, error) {
	const (
		FAIL1 = "model initialization failed: %w"
		FAIL2 = "TrainEmbeddings() failed to train vector embeddings: %w"
		MSG1  = "TrainEmbeddings() trained a %s model (%d iterations): %d vectors"
		MSG2  = "TrainEmbeddings(): %s iteration %d of %d"
		MSG3  = "TrainEmbeddings(): "
	)

	if o.Model == "" {
		o.Model = MODELW2V
	}

	vmodel, ti, err := newmodel(o)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}

	// input for Train() is 'io.ReadSeeker'
	b := bytes.NewReader([]byte(BuildTextBlock(docs, stops)))

	// .Train() but do not block; so we can also .Reporter()
	finished := make(chan error, 1)
	go func() {
		finished <- vmodel.Train(b)
	}()

	ct := make(chan int)
	rep := make(chan string)
	// w2v and lexvec will not return from Train() until their Reporter() takes the halt; glove never halts its Reporter()
	if o.Model != MODELGLOVE {
		go vmodel.Reporter(ct, rep)
	}

	last, lastnews := -1, ""
	for running := true; running; {
		select {
		case err = <-finished:
			running = false
		case n := <-ct:
			if n != last {
				Msg.TMI(fmt.Sprintf(MSG2, o.Model, n, ti))
				last = n
			}
			time.Sleep(vv.VECTORREPORTPAUSE)
		case news := <-rep:
			if news != "" && news != lastnews {
				Msg.TMI(MSG3 + news)
				lastnews = news
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf(FAIL2, err)
	}

	// use buffers; skip the disk
	var buf bytes.Buffer
	if err = vmodel.Save(&buf, vector.Agg); err != nil {
		return nil, fmt.Errorf(FAIL2, err)
	}

	embs, err := embedding.Load(&buf)
	if err != nil {
		return nil, fmt.Errorf(FAIL2, err)
	}

	Msg.PEEK(fmt.Sprintf(MSG1, o.Model, ti, len(embs)))
	return NewEmbeddings(o.Model, embs)
}

// NewEmbeddings - wrap vectors that were trained earlier (e.g. fetched from the store)
func NewEmbeddings(modeltype string, embs embedding.Embeddings) (*Embeddings, error) {
	if len(embs) == 0 {
		return nil, ErrNoVectors
	}
	// the searcher divides by Norm
	for i := range embs {
		if embs[i].Norm == 0 {
			embs[i].Norm = embutil.Norm(embs[i].Vector)
		}
	}
	s, err := search.New(embs...)
	if err != nil {
		return nil, fmt.Errorf("NewEmbeddings() failed to produce a Searcher: %w", err)
	}
	return &Embeddings{Model: modeltype, Vectors: embs, searcher: s}, nil
}

// Neighbours - the k nearest words to word
func (e *Embeddings) Neighbours(word string, k int) ([]Neighbour, error) {
	k = gen.Clamp(k, vv.VECTORNEIGHBORSMIN, vv.VECTORNEIGHBORSMAX)
	nn, err := e.searcher.SearchInternal(word, k)
	if err != nil {
		return nil, fmt.Errorf("Neighbours() of '%s': %w", word, err)
	}
	// a small vocabulary leaves empty slots in the results
	out := make([]Neighbour, 0, len(nn))
	for _, n := range nn {
		if n.Word == "" {
			continue
		}
		out = append(out, Neighbour{Word: n.Word, Rank: uint(len(out) + 1), Similarity: n.Similarity})
	}
	return out, nil
}

// NeighbourGraph - the neighbours of word and the neighbours of each of them
func (e *Embeddings) NeighbourGraph(word string, k int) map[string][]Neighbour {
	const (
		FAIL1 = "NeighbourGraph() could not find neighbors of a neighbor: '%s' neighbors (via '%s')"
	)
	nn := make(map[string][]Neighbour)
	first, err := e.Neighbours(word, k)
	if err != nil {
		return nn
	}
	nn[word] = first
	for _, n := range first {
		meta, ferr := e.Neighbours(n.Word, k)
		if ferr != nil {
			Msg.FYI(fmt.Sprintf(FAIL1, n.Word, word))
			continue
		}
		nn[n.Word] = meta
	}
	return nn
}
