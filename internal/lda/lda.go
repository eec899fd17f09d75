//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/lnch"
	"github.com/e-gun/CorpusWorkshop/internal/vec"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/e-gun/nlp"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

var (
	Msg            = lnch.NewMessageMakerWithDefaults()
	ErrNoSuchTopic = errors.New("no such topic")
	ErrNoSuchDoc   = errors.New("no such document")
	ErrBadTopics   = errors.New("topic count out of range")
)

// Options - Alpha and Eta of 0 keep the library's priors (0.1 and 0.01)
type Options struct {
	Topics               int     `json:"topics"`
	Iterations           int     `json:"iterations"`
	TransformationPasses int     `json:"transformationpasses"`
	Seed                 uint64  `json:"seed"`
	Processes            int     `json:"-"`
	Alpha                float64 `json:"alpha"`
	Eta                  float64 `json:"eta"`
}

func DefaultOptions() Options {
	return Options{
		Topics:               vv.LDATOPICS,
		Iterations:           vv.LDAITER,
		TransformationPasses: vv.LDAXFORMPASSES,
		Seed:                 vv.LDASEED,
		Processes:            runtime.NumCPU(),
	}
}

// Model - a fitted topic model; DocTopic is D x K and TopicTerm is K x V, every row sums to 1
type Model struct {
	ID         string     `json:"id"`
	K          int        `json:"k"`
	Vocab      []string   `json:"vocab"`
	DocTopic   *mat.Dense `json:"-"`
	TopicTerm  *mat.Dense `json:"-"`
	DocLengths []float64  `json:"doclengths"`
	TermFreq   []float64  `json:"termfreq"`
	Weighting  string     `json:"weighting"`
	Options    Options    `json:"options"`
	Created    time.Time  `json:"created"`
	lda        *nlp.LatentDirichletAllocation
}

// Fit - LDA over the document-term matrix; count weighting is the natural input but tf-idf is accepted
func Fit(dtm *vec.DTM, opts Options) (*Model, error) {
	const (
		FAIL1 = "Fit() failed to model topics for documents: %w"
		MSG1  = "Fit(): %d topics over %d docs and %d terms"
	)

	if opts.Topics < 1 || opts.Topics > vv.LDAMAXTOPICS {
		return nil, fmt.Errorf("%d: %w", opts.Topics, ErrBadTopics)
	}
	if opts.Iterations < 1 {
		opts.Iterations = vv.LDAITER
	}
	if opts.TransformationPasses < 1 {
		opts.TransformationPasses = opts.Iterations / 2
	}
	if opts.Processes < 1 {
		opts.Processes = runtime.NumCPU()
	}

	lda := nlp.NewLatentDirichletAllocation(opts.Topics)
	lda.Processes = opts.Processes
	lda.Iterations = opts.Iterations
	lda.TransformationPasses = opts.TransformationPasses
	lda.Rnd = rand.New(rand.NewSource(opts.Seed))
	if opts.Alpha > 0 {
		lda.Alpha = opts.Alpha
	}
	if opts.Eta > 0 {
		lda.Eta = opts.Eta
	}

	docsOverTopics, err := lda.FitTransform(dtm.Matrix)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}

	m := &Model{
		ID:         uuid.New().String(),
		K:          opts.Topics,
		Vocab:      dtm.Vocab,
		DocTopic:   doctopics(docsOverTopics, dtm.DocLengths),
		TopicTerm:  normrows(lda.Components()),
		DocLengths: dtm.DocLengths,
		TermFreq:   dtm.TermFreq,
		Weighting:  dtm.Weighting,
		Options:    opts,
		Created:    time.Now(),
		lda:        lda,
	}

	Msg.PEEK(fmt.Sprintf(MSG1, m.K, len(m.DocLengths), len(m.Vocab)))
	return m, nil
}

// Transform - topic mixtures (D x K) for held-out documents vectorised against the same vocabulary
func (m *Model) Transform(dtm *vec.DTM) (*mat.Dense, error) {
	if m.lda == nil {
		return nil, errors.New("Transform() needs a model fitted in this session")
	}
	if len(dtm.Vocab) != len(m.Vocab) {
		return nil, fmt.Errorf("Transform(): vocabulary of %d terms; model has %d", len(dtm.Vocab), len(m.Vocab))
	}
	t, err := m.lda.Transform(dtm.Matrix)
	if err != nil {
		return nil, fmt.Errorf("Transform(): %w", err)
	}
	return doctopics(t, dtm.DocLengths), nil
}

// doctopics - K x D --> D x K; empty documents get the uniform mixture
func doctopics(kd mat.Matrix, lengths []float64) *mat.Dense {
	k, d := kd.Dims()
	out := mat.NewDense(d, k, nil)
	for doc := 0; doc < d; doc++ {
		if doc < len(lengths) && lengths[doc] == 0 {
			for t := 0; t < k; t++ {
				out.Set(doc, t, 1/float64(k))
			}
			continue
		}
		for t := 0; t < k; t++ {
			out.Set(doc, t, kd.At(t, doc))
		}
	}
	return normrows(out)
}

// normrows - a copy of m whose rows sum to 1; an all-zero row becomes uniform
func normrows(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	out := mat.DenseCopyOf(m)
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		s := 0.0
		for _, v := range row {
			s += v
		}
		for j := range row {
			if s > 0 {
				row[j] /= s
			} else {
				row[j] = 1 / float64(c)
			}
		}
	}
	return out
}

// Restore - a model rebuilt from stored matrices; it can report but not Transform
func Restore(id string, vocab []string, doctopic, topicterm *mat.Dense, lengths, tf []float64, o Options, created time.Time) *Model {
	k, _ := topicterm.Dims()
	return &Model{ID: id, K: k, Vocab: vocab, DocTopic: doctopic, TopicTerm: topicterm, DocLengths: lengths,
		TermFreq: tf, Options: o, Created: created}
}
