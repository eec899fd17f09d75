//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package wkshp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/ling"
	"github.com/e-gun/CorpusWorkshop/internal/vec"
	"github.com/e-gun/CorpusWorkshop/internal/vis"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/go-echarts/go-echarts/v2/components"
)

var ErrUnknownLesson = errors.New("unknown lesson")

// Lesson - one step of the workshop
type Lesson struct {
	Name  string
	Title string
	Blurb string
	Run   func(ctx context.Context, s *Session, w io.Writer) error
}

const (
	TAGSAMPLEDOC  = 0
	TAGSAMPLESENT = 3
	NGRAMSIZE     = 3
	SHOWN         = 10
	LSACONCEPTS   = 5
	EMBEDLESSON   = "embed"
)

// Lessons - in the order a student would work through them
func Lessons() []Lesson {
	return []Lesson{
		{"corpus", "The corpus", "what was loaded and how it divides up", corpuslesson},
		{"tokens", "Tokens and sentences", "splitting text into words and sentences", tokenlesson},
		{"freq", "Frequency distributions", "counting words overall and by category", freqlesson},
		{"pos", "Part of speech tagging", "tagging a sample and counting the tags", poslesson},
		{"lemma", "Lemmatization", "reducing tagged words to their lemmata", lemmalesson},
		{"ngrams", "N-grams and collocations", "counting n-grams and scoring bigrams", ngramlesson},
		{"concord", "Concordance", "keyword in context, similar words, dispersion", concordlesson},
		{"vectorise", "Vectorising", "the document-term matrix and latent semantic analysis", veclesson},
		{"lda", "Topic models", "fitting LDA and reading off its topics", ldalesson},
		{"vis", "Topic browser", "intertopic distances and relevant terms", vislesson},
		{"docmap", "Document map", "t-SNE of the documents in topic space", docmaplesson},
		{EMBEDLESSON, "Word embeddings", "training vectors and finding neighbours", embedlesson},
	}
}

// FindLesson - by name
func FindLesson(name string) (Lesson, error) {
	for _, l := range Lessons() {
		if l.Name == name {
			return l, nil
		}
	}
	return Lesson{}, fmt.Errorf("'%s': %w", name, ErrUnknownLesson)
}

// RunSelected - the lessons named in the configuration; none named means all of them (embeddings only if asked for)
func RunSelected(ctx context.Context, s *Session, w io.Writer) error {
	names := s.Cfg.Lessons
	if len(names) == 0 {
		for _, l := range Lessons() {
			if l.Name == EMBEDLESSON && !s.Cfg.Embeddings {
				continue
			}
			names = append(names, l.Name)
		}
	}

	var todo []Lesson
	for _, n := range names {
		l, err := FindLesson(strings.TrimSpace(n))
		if err != nil {
			return err
		}
		todo = append(todo, l)
	}
	return runlessons(ctx, s, w, todo)
}

// RunAll - every lesson in order
func RunAll(ctx context.Context, s *Session, w io.Writer) error {
	return runlessons(ctx, s, w, Lessons())
}

// Run - a single lesson by name
func Run(ctx context.Context, s *Session, w io.Writer, name string) error {
	l, err := FindLesson(name)
	if err != nil {
		return err
	}
	return runlessons(ctx, s, w, []Lesson{l})
}

func runlessons(ctx context.Context, s *Session, w io.Writer, ll []Lesson) error {
	start := time.Now()
	previous := start
	for i, l := range ll {
		if err := ctx.Err(); err != nil {
			return err
		}
		heading(w, l)
		if err := l.Run(ctx, s, w); err != nil {
			return fmt.Errorf("lesson '%s': %w", l.Name, err)
		}
		Msg.Timer(string(rune('A'+i%26)), l.Title, start, previous)
		previous = time.Now()
	}
	return nil
}

func heading(w io.Writer, l Lesson) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, Msg.ColStyle(fmt.Sprintf("S1C2%sC0S0", l.Title)))
	fmt.Fprintln(w, Msg.Color(fmt.Sprintf("C6%sC0", l.Blurb)))
	fmt.Fprintln(w)
}

func subheading(w io.Writer, s string) {
	fmt.Fprintln(w, Msg.Styled(fmt.Sprintf("S3%sS0", s)))
}

// chart - write the charts to OutputDir/fn; nothing happens if there is no OutputDir
func chart(s *Session, w io.Writer, fn string, title string, cc ...components.Charter) error {
	if s.Cfg.OutputDir == "" {
		return nil
	}
	p, err := vis.WriteHTML(s.Cfg.OutputDir, fn, title, cc...)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "chart written to %s\n", p)
	return nil
}

func corpuslesson(ctx context.Context, s *Session, w io.Writer) error {
	c, err := s.Corpus(ctx)
	if err != nil {
		return err
	}
	st := c.Stats()
	fmt.Fprintf(w, "corpus:     %s\n", st.Name)
	fmt.Fprintf(w, "documents:  %d\n", st.Docs)
	fmt.Fprintf(w, "characters: %d\n", st.Chars)
	if len(st.Categories) > 0 {
		subheading(w, "documents per category")
		for _, k := range st.Categories {
			fmt.Fprintf(w, "\t%-28s %d\n", k, st.PerCategory[k])
		}
	}
	d, err := c.Doc(0)
	if err != nil {
		return err
	}
	subheading(w, "the first document")
	fmt.Fprintln(w, truncate(d.Text, 400))
	return nil
}

func tokenlesson(ctx context.Context, s *Session, w io.Writer) error {
	c, err := s.Corpus(ctx)
	if err != nil {
		return err
	}
	d, err := c.Doc(0)
	if err != nil {
		return err
	}
	ss := ling.Sentences(d.Text, false)
	subheading(w, fmt.Sprintf("the first document has %d sentences; the first of them:", len(ss)))
	if len(ss) > 0 {
		fmt.Fprintln(w, ss[0])
		fmt.Fprintln(w, strings.Join(ling.WordTokens(ss[0]), " | "))
	}

	tt, err := s.Tokens(ctx)
	if err != nil {
		return err
	}
	ww, err := s.Words(ctx)
	if err != nil {
		return err
	}
	subheading(w, "the whole corpus")
	fmt.Fprintf(w, "tokens:            %d\n", len(tt))
	fmt.Fprintf(w, "words:             %d\n", len(ww))
	fmt.Fprintf(w, "lexical diversity: %.4f\n", ling.LexicalDiversity(ww))
	return nil
}

func freqlesson(ctx context.Context, s *Session, w io.Writer) error {
	fd, err := s.FreqDist(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%d samples and %d outcomes\n", fd.B(), fd.N())
	subheading(w, "most common words")
	fd.Tabulate(w, SHOWN)

	content := fd.Without(s.StopWords())
	subheading(w, "most common words once the stopwords are gone")
	content.Tabulate(w, SHOWN)
	fmt.Fprintf(w, "hapaxes: %d\n", len(fd.Hapaxes()))

	c, err := s.Corpus(ctx)
	if err != nil {
		return err
	}
	if len(c.Categories) > 1 {
		cfd := ling.NewConditionalFreqDist()
		for k, dd := range c.ByCategory() {
			for _, d := range dd {
				cfd.Add(k, ling.Words(ling.WordTokens(ling.Normalise(d.Text, false)))...)
			}
		}
		var top []string
		for _, wc := range content.MostCommon(5) {
			top = append(top, wc.Word)
		}
		subheading(w, "the same words by category")
		cfd.Tabulate(w, top)
	}

	wcl := content.MostCommon(vv.FREQTOPN)
	return chart(s, w, "freq.html", "Frequencies",
		vis.FreqBar("Most common words", wcl),
		vis.FreqLine("Cumulative frequency", wcl, true))
}

func poslesson(ctx context.Context, s *Session, w io.Writer) error {
	tagged, err := s.Tag(ctx, TAGSAMPLEDOC, TAGSAMPLESENT)
	if err != nil {
		return err
	}
	subheading(w, "tagged sample")
	var tt []string
	for _, t := range tagged {
		tt = append(tt, t.String())
	}
	fmt.Fprintln(w, strings.Join(tt, " "))

	subheading(w, "tag counts")
	ling.TagFreq(tagged, false).Tabulate(w, SHOWN)
	subheading(w, "simplified tag counts")
	ling.TagFreq(tagged, true).Tabulate(w, SHOWN)

	nouns := ling.FilterTags(tagged, "NN")
	fmt.Fprintf(w, "nouns in the sample: %d\n", len(nouns))
	return nil
}

func lemmalesson(ctx context.Context, s *Session, w io.Writer) error {
	tagged, err := s.Tag(ctx, TAGSAMPLEDOC, TAGSAMPLESENT)
	if err != nil {
		return err
	}
	lz, err := s.Lemmatizer(ctx)
	if err != nil {
		return err
	}
	wi := lz.LemmatizeTagged(tagged)
	subheading(w, "word, tag and lemma")
	for _, x := range wi {
		if x.Word != x.Lemma {
			fmt.Fprintf(w, "\t%-18s %-6s %s\n", x.Word, x.Tag, x.Lemma)
		}
	}
	subheading(w, "lemma counts")
	ling.LemmaFreq(wi).Tabulate(w, SHOWN)
	return nil
}

func ngramlesson(ctx context.Context, s *Session, w io.Writer) error {
	ww, err := s.Words(ctx)
	if err != nil {
		return err
	}
	subheading(w, fmt.Sprintf("most common %d-grams", NGRAMSIZE))
	ling.NGramFreq(ww, NGRAMSIZE).Tabulate(w, SHOWN)

	stops := vec.StopSet(s.StopWords()...)
	f := ling.NewBigramCollocationFinder(ww)
	f.ApplyFreqFilter(vv.COLLOCMINFREQ)
	f.ApplyWordFilter(func(t string) bool {
		_, ok := stops[t]
		return ok || len(t) < 3
	})
	for _, m := range ling.Measures {
		sb, err := f.Nbest(m, 5)
		if err != nil {
			return err
		}
		subheading(w, "best bigrams by "+m)
		for _, b := range sb {
			fmt.Fprintf(w, "\t%-30s %10.3f %6d\n", b.Bigram.String(), b.Score, b.Count)
		}
	}

	t, err := s.Text(ctx)
	if err != nil {
		return err
	}
	var cc []string
	for _, b := range t.Collocations(vv.COLLOCATIONS, s.StopWords()) {
		cc = append(cc, b.Bigram.String())
	}
	subheading(w, "collocations")
	fmt.Fprintln(w, strings.Join(cc, "; "))
	return nil
}

func concordlesson(ctx context.Context, s *Session, w io.Writer) error {
	t, err := s.Text(ctx)
	if err != nil {
		return err
	}
	kw := strings.ToLower(s.Cfg.ConcordKW)
	if kw == "" {
		kw = vv.CONCORDKEYWORD
	}

	wd, ln := s.Cfg.ConcordWidth, s.Cfg.ConcordLines
	if wd < 1 {
		wd = vv.CONCORDWIDTH
	}
	if ln < 1 {
		ln = vv.CONCORDLINES
	}
	subheading(w, fmt.Sprintf("'%s' in context", kw))
	t.Concordance(w, kw, wd, ln)

	sim := t.Similar(kw, 20)
	subheading(w, fmt.Sprintf("words used like '%s'", kw))
	fmt.Fprintln(w, strings.Join(sim, " "))

	if len(sim) > 0 {
		cc := t.CommonContexts([]string{kw, sim[0]}, 20)
		subheading(w, fmt.Sprintf("contexts shared by '%s' and '%s'", kw, sim[0]))
		fmt.Fprintln(w, strings.Join(cc, " "))
	}

	words := []string{kw}
	for _, x := range sim {
		if len(words) == 5 {
			break
		}
		words = append(words, x)
	}
	tt, err := s.Tokens(ctx)
	if err != nil {
		return err
	}
	return chart(s, w, "dispersion.html", "Dispersion",
		vis.Dispersion("Lexical dispersion", words, t.Dispersion(words), len(tt)))
}

func veclesson(ctx context.Context, s *Session, w io.Writer) error {
	d, err := s.DTM(ctx)
	if err != nil {
		return err
	}
	t, n := d.Dims()
	fmt.Fprintf(w, "%d documents x %d terms; density %.4f\n", n, t, d.Density())
	subheading(w, "heaviest terms")
	for _, wc := range d.TopTerms(SHOWN) {
		fmt.Fprintf(w, "\t%-20s %d\n", wc.Word, wc.Count)
	}

	k := min(LSACONCEPTS, t, n)
	if k < 1 {
		return nil
	}
	lsa, err := vec.LSA(d, k, 8)
	if err != nil {
		return err
	}
	subheading(w, fmt.Sprintf("latent semantic analysis: %d concepts", lsa.K))
	for i, c := range lsa.Concepts {
		fmt.Fprintf(w, "\tconcept %d: %s\n", i+1, strings.Join(c, ", "))
	}
	return nil
}

func ldalesson(ctx context.Context, s *Session, w io.Writer) error {
	m, err := s.Model(ctx)
	if err != nil {
		return err
	}
	d, err := s.DTM(ctx)
	if err != nil {
		return err
	}
	subheading(w, fmt.Sprintf("%d topics", m.K))
	m.PrintTopics(w, vv.LDATOPWORDS)

	dpt := m.DocsPerTopic()
	wts := m.TopicWeights()
	coh, err := m.Coherence(d, vv.LDATOPWORDS)
	if err != nil {
		return err
	}
	subheading(w, "topic  docs  weight  coherence")
	for i := range dpt {
		fmt.Fprintf(w, "\t%3d %6d %7.3f %10.3f\n", i, dpt[i], wts[i], coh[i])
	}

	bags, err := s.Bags(ctx)
	if err != nil {
		return err
	}
	subheading(w, "the most typical document of each topic")
	for i := 0; i < m.K; i++ {
		td, err := m.TopDocuments(i, 1)
		if err != nil {
			return err
		}
		if len(td) == 0 || td[0].Doc >= len(bags) {
			continue
		}
		fmt.Fprintf(w, "\t%3d [%.2f] %s\n", i, td[0].Weight, truncate(bags[td[0].Doc].Bag, 72))
	}

	return chart(s, w, "lda.html", "Topics",
		vis.TopicBars("Documents per topic", "docs", intstofloats(dpt)),
		vis.TopicBars("Topic weights", "weight", wts),
		vis.TopicBars("Topic coherence", "coherence", coh))
}

func vislesson(ctx context.Context, s *Session, w io.Writer) error {
	p, err := s.Prepared(ctx)
	if err != nil {
		return err
	}
	subheading(w, "intertopic map")
	for _, c := range p.Coords {
		fmt.Fprintf(w, "\ttopic %2d (was %2d): %6.2f%% of tokens at (%.3f, %.3f)\n", c.Topic, c.Orig, c.Freq, c.X, c.Y)
	}

	cc := []components.Charter{vis.IntertopicMap(p), vis.TermBars(p, 0, p.DefaultTerms)}
	for t := 1; t <= min(p.K, 3); t++ {
		ti, err := p.Relevant(t, p.Lambda, SHOWN)
		if err != nil {
			return err
		}
		var tt []string
		for _, x := range ti {
			tt = append(tt, x.Term)
		}
		subheading(w, fmt.Sprintf("topic %d at lambda %.2f", t, p.Lambda))
		fmt.Fprintln(w, strings.Join(tt, ", "))
		cc = append(cc, vis.TermBars(p, t, ti))
	}

	if err = chart(s, w, "vis.html", "Topic browser", cc...); err != nil {
		return err
	}
	if s.Cfg.OutputDir == "" {
		return nil
	}
	js, err := p.JSON()
	if err != nil {
		return err
	}
	return writefile(s.Cfg.OutputDir, "vis.json", js)
}

func docmaplesson(ctx context.Context, s *Session, w io.Writer) error {
	m, err := s.Model(ctx)
	if err != nil {
		return err
	}
	bags, err := s.Bags(ctx)
	if err != nil {
		return err
	}
	labels := make([]string, len(bags))
	for i, b := range bags {
		labels[i] = b.Loc
	}
	pts, err := vis.DocMap(m, labels, vis.DocMapOptions{})
	if errors.Is(err, vis.ErrTooFewDocs) {
		fmt.Fprintln(w, "not enough documents to map")
		return nil
	}
	if err != nil {
		return err
	}
	per := make([]int, m.K)
	for _, p := range pts {
		per[p.Topic]++
	}
	fmt.Fprintf(w, "%d documents placed; points per topic: %v\n", len(pts), per)
	return chart(s, w, "docmap.html", "Document map", vis.DocMapChart(pts, m.K))
}

func embedlesson(ctx context.Context, s *Session, w io.Writer) error {
	e, err := s.Embeddings(ctx)
	if err != nil {
		return err
	}
	kw := strings.ToLower(s.Cfg.ConcordKW)
	if kw == "" {
		kw = vv.CONCORDKEYWORD
	}
	k := s.Cfg.VectorNeighb
	if k < vv.VECTORNEIGHBORSMIN || k > vv.VECTORNEIGHBORSMAX {
		k = vv.VECTORNEIGHBORS
	}

	nn, err := e.Neighbours(kw, k)
	if err != nil {
		fmt.Fprintf(w, "no vector for '%s': %s\n", kw, err.Error())
		return nil
	}
	subheading(w, fmt.Sprintf("nearest neighbours of '%s' (%s)", kw, e.Model))
	for _, n := range nn {
		fmt.Fprintf(w, "\t%2d %-20s %.4f\n", n.Rank, n.Word, n.Similarity)
	}

	g := e.NeighbourGraph(kw, k)
	settings := fmt.Sprintf("%s; %d neighbours", e.Model, k)
	return chart(s, w, "embed.html", "Word embeddings", vis.NeighbourGraph(kw, settings, g, true))
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func intstofloats(ii []int) []float64 {
	ff := make([]float64, len(ii))
	for i, x := range ii {
		ff[i] = float64(x)
	}
	return ff
}

func writefile(dir string, fn string, b []byte) error {
	if err := os.MkdirAll(dir, vv.DIRPERMS); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, fn), b, vv.WRITEPERMS)
}
