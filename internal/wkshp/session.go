//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package wkshp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/e-gun/CorpusWorkshop/internal/corp"
	"github.com/e-gun/CorpusWorkshop/internal/db"
	"github.com/e-gun/CorpusWorkshop/internal/lda"
	"github.com/e-gun/CorpusWorkshop/internal/ling"
	"github.com/e-gun/CorpusWorkshop/internal/lnch"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vec"
	"github.com/e-gun/CorpusWorkshop/internal/vis"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
)

const (
	EMBEDMINCOUNT = 2
)

var Msg = lnch.NewMessageMakerWithDefaults()

// Session - the state shared by the lessons; everything is built on first use and then kept
type Session struct {
	Cfg     str.CurrentConfiguration
	Sources corp.Sources
	Store   *db.Store // optional
	Stops   []string  // nil means vec.StopWords()
	Tagger  ling.Tagger

	mtx      sync.Mutex
	corpus   *corp.Corpus
	tokens   []string
	text     *ling.Text
	words    []string
	fd       *ling.FreqDist
	lz       *ling.Lemmatizer
	dtm      *vec.DTM
	model    *lda.Model
	prepared *vis.Prepared
	embs     *vec.Embeddings
}

func NewSession(cfg str.CurrentConfiguration, src corp.Sources, store *db.Store) *Session {
	if store != nil && src.Cache == nil {
		src.Cache = store
	}
	if cfg.VectorChtWd != "" {
		vis.ChartWidth = cfg.VectorChtWd
	}
	if cfg.VectorChtHt != "" {
		vis.ChartHeight = cfg.VectorChtHt
	}
	return &Session{Cfg: cfg, Sources: src, Store: store, Tagger: ling.NewProseTagger()}
}

// Reset - forget everything derived from the corpus (e.g. after the settings change)
func (s *Session) Reset() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.corpus, s.tokens, s.text, s.words, s.fd, s.lz = nil, nil, nil, nil, nil, nil
	s.dtm, s.model, s.prepared, s.embs = nil, nil, nil, nil
}

func (s *Session) stops() []string {
	if s.Stops == nil {
		s.Stops = vec.StopWords()
	}
	return s.Stops
}

// StopWords - the list the session filters with
func (s *Session) StopWords() []string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return slices.Clone(s.stops())
}

func (s *Session) Corpus(ctx context.Context) (*corp.Corpus, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.getcorpus(ctx)
}

func (s *Session) getcorpus(ctx context.Context) (*corp.Corpus, error) {
	if s.corpus != nil {
		return s.corpus, nil
	}
	c, err := corp.Load(ctx, &s.Cfg, s.Sources)
	if err != nil {
		return nil, err
	}
	if c.Len() > vv.MAXDOCSPERCORPUS {
		c = c.Sample(vv.MAXDOCSPERCORPUS, uint64(s.Cfg.LdaSeed))
	}
	s.corpus = c
	return c, nil
}

// Tokens - every document through ling.WordTokens, one after the other
func (s *Session) Tokens(ctx context.Context) ([]string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.gettokens(ctx)
}

func (s *Session) gettokens(ctx context.Context) ([]string, error) {
	if s.tokens != nil {
		return s.tokens, nil
	}
	c, err := s.getcorpus(ctx)
	if err != nil {
		return nil, err
	}
	var tt []string
	for _, d := range c.Docs {
		tt = append(tt, ling.WordTokens(ling.Normalise(d.Text, false))...)
	}
	s.tokens = tt
	return tt, nil
}

// Text - the token stream with concordance and context helpers
func (s *Session) Text(ctx context.Context) (*ling.Text, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.text != nil {
		return s.text, nil
	}
	tt, err := s.gettokens(ctx)
	if err != nil {
		return nil, err
	}
	s.text = ling.NewText(s.corpus.Name, tt)
	return s.text, nil
}

// Words - the alphabetic tokens, lower-cased
func (s *Session) Words(ctx context.Context) ([]string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.getwords(ctx)
}

func (s *Session) getwords(ctx context.Context) ([]string, error) {
	if s.words != nil {
		return s.words, nil
	}
	tt, err := s.gettokens(ctx)
	if err != nil {
		return nil, err
	}
	s.words = ling.Words(tt)
	return s.words, nil
}

// FreqDist - counts of the words; this is also the lemmatizer's lexicon
func (s *Session) FreqDist(ctx context.Context) (*ling.FreqDist, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.getfd(ctx)
}

func (s *Session) getfd(ctx context.Context) (*ling.FreqDist, error) {
	if s.fd != nil {
		return s.fd, nil
	}
	ww, err := s.getwords(ctx)
	if err != nil {
		return nil, err
	}
	s.fd = ling.NewFreqDist(ww...)
	return s.fd, nil
}

func (s *Session) Lemmatizer(ctx context.Context) (*ling.Lemmatizer, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.lz != nil {
		return s.lz, nil
	}
	fd, err := s.getfd(ctx)
	if err != nil {
		return nil, err
	}
	s.lz = ling.NewLemmatizer(fd)
	return s.lz, nil
}

// Tag - the tagged tokens of the first n sentences of a document; n < 1 means all of them
func (s *Session) Tag(ctx context.Context, doc int, n int) ([]ling.TaggedToken, error) {
	c, err := s.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	d, err := c.Doc(doc)
	if err != nil {
		return nil, err
	}
	ss := ling.Sentences(d.Text, false)
	if n > 0 && n < len(ss) {
		ss = ss[:n]
	}
	return s.Tagger.Tag(strings.Join(ss, " "))
}

// VecOptions - the vectoriser settings the configuration asks for
func (s *Session) VecOptions() vec.Options {
	o := vec.DefaultOptions()
	if s.Cfg.VecMinDF > 0 {
		o.MinDF = float64(s.Cfg.VecMinDF)
	}
	if s.Cfg.VecMaxDF > 0 {
		o.MaxDF = s.Cfg.VecMaxDF
	}
	o.MaxFeatures = s.Cfg.VecMaxFeat
	if s.Cfg.VecWeighting != "" {
		o.Weighting = s.Cfg.VecWeighting
	}
	s.mtx.Lock()
	o.Stops = s.stops()
	s.mtx.Unlock()
	return o
}

// LDAOptions - the model settings the configuration asks for
func (s *Session) LDAOptions() lda.Options {
	o := lda.DefaultOptions()
	if s.Cfg.LdaTopics > 0 {
		o.Topics = s.Cfg.LdaTopics
	}
	if s.Cfg.LdaIter > 0 {
		o.Iterations = s.Cfg.LdaIter
	}
	o.Seed = uint64(s.Cfg.LdaSeed)
	o.Processes = s.Cfg.WorkerCount
	return o
}

// Bags - what gets vectorised: whole documents, or runs of sentences if LdaSentPerBag is set
func (s *Session) Bags(ctx context.Context) ([]vec.BagWithLocus, error) {
	c, err := s.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	return vec.Bag(c.Docs, s.Cfg.LdaSentPerBag), nil
}

func (s *Session) DTM(ctx context.Context) (*vec.DTM, error) {
	o := s.VecOptions()
	bags, err := s.Bags(ctx)
	if err != nil {
		return nil, err
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.dtm != nil {
		return s.dtm, nil
	}
	d, err := vec.Vectorise(vec.BagTexts(bags), o)
	if err != nil {
		return nil, err
	}
	s.dtm = d
	return d, nil
}

// Fingerprint - corpus plus settings; identical fingerprints mean identical models
func (s *Session) Fingerprint(o lda.Options) string {
	v := s.VecOptions()
	v.Stops = nil
	return db.Fingerprint(s.Cfg.Dataset, s.Cfg.Subset, s.Cfg.Categories, s.Cfg.LdaSentPerBag, v, o)
}

// Model - fit with the configured options; the fitted model is recorded in the store if there is one
func (s *Session) Model(ctx context.Context) (*lda.Model, error) {
	d, err := s.DTM(ctx)
	if err != nil {
		return nil, err
	}
	o := s.LDAOptions()

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.model != nil {
		return s.model, nil
	}
	m, err := lda.Fit(d, o)
	if err != nil {
		return nil, err
	}
	s.model = m
	return m, nil
}

// Prepared - the topic browser data for the session model
func (s *Session) Prepared(ctx context.Context) (*vis.Prepared, error) {
	m, err := s.Model(ctx)
	if err != nil {
		return nil, err
	}
	d, _ := s.DTM(ctx)
	// VecOptions() takes the lock too
	fp := s.Fingerprint(m.Options)

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.prepared != nil {
		return s.prepared, nil
	}
	p, err := vis.Prepare(m, s.Cfg.VisTerms, s.Cfg.VisLambda, vv.VISLAMBDASTEP)
	if err != nil {
		return nil, err
	}
	s.prepared = p
	if s.Store != nil {
		if err = s.record(ctx, fp, m, d, p); err != nil {
			Msg.WARN(fmt.Sprintf("Session.Prepared() could not store model %s: %s", m.ID, err.Error()))
		}
	}
	return p, nil
}

// record - the model, its summary and its browser data into the store
func (s *Session) record(ctx context.Context, fp string, m *lda.Model, d *vec.DTM, p *vis.Prepared) error {
	pj, err := p.JSON()
	if err != nil {
		return err
	}
	r, err := Record(fp, s.Cfg.Dataset, m, m.Summarise(vv.LDATOPWORDS, d), pj)
	if err != nil {
		return err
	}
	return s.Store.SaveModel(ctx, r)
}

// Embeddings - word vectors for the corpus; cached in the store by fingerprint
func (s *Session) Embeddings(ctx context.Context) (*vec.Embeddings, error) {
	c, err := s.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	stops := s.StopWords()

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.embs != nil {
		return s.embs, nil
	}

	o := vec.EmbeddingOptions{Model: vec.MODELW2V, MinCount: EMBEDMINCOUNT}
	fp := db.Fingerprint("embeddings", s.Cfg.Dataset, s.Cfg.Subset, s.Cfg.Categories, o)
	if s.Store != nil {
		if v, ok, ferr := s.Store.FetchEmbeddings(ctx, fp); ferr == nil && ok {
			if s.embs, err = vec.NewEmbeddings(o.Model, v); err == nil {
				return s.embs, nil
			}
		}
	}

	e, err := vec.TrainEmbeddings(c.Texts(), stops, o)
	if err != nil {
		return nil, err
	}
	s.embs = e
	if s.Store != nil {
		if serr := s.Store.SaveEmbeddings(ctx, fp, e.Vectors); serr != nil {
			Msg.WARN("Session.Embeddings() could not store vectors: " + serr.Error())
		}
	}
	return e, nil
}

// Record - the store's view of a fitted model
func Record(fp string, corpus string, m *lda.Model, sum lda.Summary, prepared []byte) (db.ModelRecord, error) {
	pj, err := json.Marshal(m.Options)
	if err != nil {
		return db.ModelRecord{}, err
	}
	sj, err := json.Marshal(sum)
	if err != nil {
		return db.ModelRecord{}, err
	}
	return db.ModelRecord{
		ID:          m.ID,
		Fingerprint: fp,
		Corpus:      corpus,
		Created:     m.Created,
		K:           m.K,
		Params:      pj,
		Summary:     sj,
		Prepared:    prepared,
	}, nil
}
