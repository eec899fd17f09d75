//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/ling"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vec"
	"github.com/e-gun/CorpusWorkshop/internal/vis"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/labstack/echo/v4"
)

const (
	MAXSHOWN   = 1000
	MAXSENTS   = 50
	MAXDISPWDS = 10
)

type JSTokens struct {
	Doc       string   `json:"doc"`
	Sentences []string `json:"sentences"`
	Tokens    []string `json:"tokens"`
	Words     int      `json:"words"`
	Diversity float64  `json:"diversity"`
}

type JSFreq struct {
	Samples  int        `json:"samples"`
	Outcomes int        `json:"outcomes"`
	Stops    bool       `json:"stops"`
	Hapaxes  int        `json:"hapaxes"`
	Top      str.WCList `json:"top"`
}

type JSTagged struct {
	Doc    string             `json:"doc"`
	Tagged []ling.TaggedToken `json:"tagged"`
	Counts str.WCList         `json:"counts"`
}

type JSConcord struct {
	Word  string                 `json:"word"`
	Total int                    `json:"total"`
	Lines []ling.ConcordanceLine `json:"lines"`
}

type JSSimilar struct {
	Word     string   `json:"word"`
	Similar  []string `json:"similar"`
	Contexts []string `json:"contexts,omitempty"`
}

// RtLingTokens - sentences and word tokens of a document: "u: /ling/tokens/0"
func RtLingTokens(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtLingTokens()") })
	d, err := docparam(c)
	if err != nil {
		return fail(c, err)
	}
	tt := ling.WordTokens(ling.Normalise(d.Text, false))
	ww := ling.Words(tt)
	js := JSTokens{
		Doc:       d.Locus(),
		Sentences: ling.Sentences(d.Text, false),
		Tokens:    tt,
		Words:     len(ww),
		Diversity: ling.LexicalDiversity(ww),
	}
	return gen.JSONresponse(c, js)
}

// RtLingFreq - the most common words of the corpus: "u: /ling/freq?n=25&stops=yes"
func RtLingFreq(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtLingFreq()") })
	n, err := intparam(c.QueryParam("n"), vv.FREQTOPN, 1, MAXSHOWN)
	if err != nil {
		return fail(c, err)
	}
	fd, err := Sess.FreqDist(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	js := JSFreq{Samples: fd.B(), Outcomes: fd.N(), Hapaxes: len(fd.Hapaxes())}
	if boolparam(c.QueryParam("stops")) {
		fd = fd.Without(Sess.StopWords())
		js.Stops = true
	}
	js.Top = fd.MostCommon(n)
	return gen.JSONresponse(c, js)
}

// RtLingPOS - tag the first sentences of a document: "u: /ling/pos/0?sents=3"
func RtLingPOS(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtLingPOS()") })
	tagged, d, err := tagparams(c)
	if err != nil {
		return fail(c, err)
	}
	js := JSTagged{
		Doc:    d,
		Tagged: tagged,
		Counts: ling.TagFreq(tagged, boolparam(c.QueryParam("simple"))).MostCommon(0),
	}
	return gen.JSONresponse(c, js)
}

// RtLingLemma - word, tag and lemma for the first sentences of a document: "u: /ling/lemma/0"
func RtLingLemma(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtLingLemma()") })
	tagged, _, err := tagparams(c)
	if err != nil {
		return fail(c, err)
	}
	lz, err := Sess.Lemmatizer(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return gen.JSONresponse(c, lz.LemmatizeTagged(tagged))
}

func tagparams(c echo.Context) ([]ling.TaggedToken, string, error) {
	n, err := intparam(c.Param("n"), 0, 0, vv.MAXDOCSPERCORPUS)
	if err != nil {
		return nil, "", err
	}
	s, err := intparam(c.QueryParam("sents"), 3, 1, MAXSENTS)
	if err != nil {
		return nil, "", err
	}
	d, err := docparam(c)
	if err != nil {
		return nil, "", err
	}
	tagged, err := Sess.Tag(c.Request().Context(), n, s)
	return tagged, d.Locus(), err
}

// RtLingNgrams - the best bigrams by an association measure: "u: /ling/ngrams?measure=pmi&n=20&min=2"
func RtLingNgrams(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtLingNgrams()") })
	measure := c.QueryParam("measure")
	if measure == "" {
		measure = vv.NGRAMMEASURE
	}
	if !slices.Contains(ling.Measures, measure) {
		return fail(c, fmt.Errorf("'%s': %w", measure, ling.ErrUnknownMeasure))
	}
	n, err := intparam(c.QueryParam("n"), vv.COLLOCATIONS, 1, MAXSHOWN)
	if err != nil {
		return fail(c, err)
	}
	mf, err := intparam(c.QueryParam("min"), vv.COLLOCMINFREQ, 1, MAXSHOWN)
	if err != nil {
		return fail(c, err)
	}

	ww, err := Sess.Words(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	stops := vec.StopSet(Sess.StopWords()...)
	f := ling.NewBigramCollocationFinder(ww)
	f.ApplyFreqFilter(mf)
	f.ApplyWordFilter(func(t string) bool {
		_, ok := stops[t]
		return ok
	})
	sb, err := f.Nbest(measure, n)
	if err != nil {
		return fail(c, err)
	}
	return gen.JSONresponse(c, sb)
}

// RtLingConcord - keyword in context: "u: /ling/concord/space?width=79&lines=25"
func RtLingConcord(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtLingConcord()") })
	w, err := wordparam(c.Param("word"))
	if err != nil {
		return fail(c, err)
	}
	wd, err := intparam(c.QueryParam("width"), vv.CONCORDWIDTH, 20, 400)
	if err != nil {
		return fail(c, err)
	}
	ln, err := intparam(c.QueryParam("lines"), vv.CONCORDLINES, 1, MAXSHOWN)
	if err != nil {
		return fail(c, err)
	}
	t, err := Sess.Text(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	cl, total := t.ConcordanceList(w, wd, ln)
	return gen.JSONresponse(c, JSConcord{Word: w, Total: total, Lines: cl})
}

// RtLingSimilar - words that turn up in the same contexts: "u: /ling/similar/space?n=20"
func RtLingSimilar(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtLingSimilar()") })
	w, err := wordparam(c.Param("word"))
	if err != nil {
		return fail(c, err)
	}
	n, err := intparam(c.QueryParam("n"), 20, 1, MAXSHOWN)
	if err != nil {
		return fail(c, err)
	}
	t, err := Sess.Text(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	js := JSSimilar{Word: w, Similar: t.Similar(w, n)}
	if len(js.Similar) > 0 {
		js.Contexts = t.CommonContexts([]string{w, js.Similar[0]}, n)
	}
	return gen.JSONresponse(c, js)
}

// RtLingDispersion - the lexical dispersion plot as a page: "u: /ling/dispersion?w=space,orbit"
func RtLingDispersion(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtLingDispersion()") })
	var words []string
	for _, w := range strings.Split(c.QueryParam("w"), ",") {
		if w = strings.TrimSpace(w); w == "" {
			continue
		}
		x, err := wordparam(w)
		if err != nil {
			return fail(c, err)
		}
		words = append(words, x)
	}
	if len(words) == 0 || len(words) > MAXDISPWDS {
		return fail(c, fmt.Errorf("w: 1 to %d comma-separated words: %w", MAXDISPWDS, ErrBadParam))
	}

	t, err := Sess.Text(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	tt, err := Sess.Tokens(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	ch := vis.Dispersion("Lexical dispersion", words, t.Dispersion(words), len(tt))
	return standalone(c, "Dispersion", ch)
}

// RtLingNeighbours - nearest neighbours in the embedding space: "u: /ling/neighbours/space?n=12"
func RtLingNeighbours(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtLingNeighbours()") })
	w, err := wordparam(c.Param("word"))
	if err != nil {
		return fail(c, err)
	}
	n, err := intparam(c.QueryParam("n"), vv.VECTORNEIGHBORS, vv.VECTORNEIGHBORSMIN, vv.VECTORNEIGHBORSMAX)
	if err != nil {
		return fail(c, err)
	}
	e, err := Sess.Embeddings(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	nn, err := e.Neighbours(w, n)
	if err != nil {
		return gen.JSONerror(c, http.StatusNotFound, err)
	}
	return gen.JSONresponse(c, nn)
}
