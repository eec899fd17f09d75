//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"io"
	"slices"
	"sync"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/str"
)

const (
	STARTCTX = "*START*"
	ENDCTX   = "*END*"
)

// Text - a token stream with the usual exploratory helpers hung off it
type Text struct {
	Name   string
	Tokens []string

	once     sync.Once
	ci       *ConcordanceIndex
	ctxonce  sync.Once
	contexts map[string]map[string]int // word --> "left_right" --> count
	vocab    *FreqDist
}

func NewText(name string, tokens []string) *Text {
	return &Text{Name: name, Tokens: tokens}
}

func (t *Text) index() *ConcordanceIndex {
	t.once.Do(func() {
		t.ci = NewConcordanceIndex(t.Tokens)
		t.vocab = NewFreqDist(t.Tokens...)
	})
	return t.ci
}

// Concordance - print up to lines occurrences of word in context
func (t *Text) Concordance(w io.Writer, word string, width int, lines int) {
	t.index().Print(w, word, width, lines)
}

// ConcordanceList - the lines themselves and how many matches there were in all
func (t *Text) ConcordanceList(word string, width int, lines int) ([]ConcordanceLine, int) {
	return t.index().Lines(word, width, lines)
}

// Count - occurrences of w exactly as given
func (t *Text) Count(w string) int {
	t.index()
	return t.vocab.Count(w)
}

// Vocab - a FreqDist of the tokens
func (t *Text) Vocab() *FreqDist {
	t.index()
	return t.vocab
}

// buildcontexts - contexts are the neighbouring alphabetic tokens, lower-cased
func (t *Text) buildcontexts() {
	t.ctxonce.Do(func() {
		var alpha []string
		for _, w := range t.Tokens {
			if isalpha(w) {
				alpha = append(alpha, Lower(w))
			}
		}
		t.contexts = make(map[string]map[string]int)
		for i, w := range alpha {
			l, r := STARTCTX, ENDCTX
			if i > 0 {
				l = alpha[i-1]
			}
			if i+1 < len(alpha) {
				r = alpha[i+1]
			}
			if t.contexts[w] == nil {
				t.contexts[w] = make(map[string]int)
			}
			t.contexts[w][l+"_"+r]++
		}
	})
}

// Similar - words that share the most contexts with word
func (t *Text) Similar(word string, n int) []string {
	t.buildcontexts()
	word = Lower(word)
	mine, ok := t.contexts[word]
	if !ok {
		return nil
	}

	shared := make(map[string]int)
	for w, cc := range t.contexts {
		if w == word {
			continue
		}
		for c := range cc {
			if _, hit := mine[c]; hit {
				shared[w]++
			}
		}
	}

	wcl := str.SortedWordCounts(shared)
	if n > 0 && n < len(wcl) {
		wcl = wcl[:n]
	}
	out := make([]string, len(wcl))
	for i := range wcl {
		out[i] = wcl[i].Word
	}
	return out
}

// CommonContexts - the "left_right" contexts that all of the words share, most frequent first
func (t *Text) CommonContexts(words []string, n int) []string {
	t.buildcontexts()
	if len(words) == 0 {
		return nil
	}

	var common map[string]int
	for i, w := range words {
		cc, ok := t.contexts[Lower(w)]
		if !ok {
			return nil
		}
		if i == 0 {
			common = make(map[string]int, len(cc))
			for c, k := range cc {
				common[c] = k
			}
			continue
		}
		for c := range common {
			if k, hit := cc[c]; hit {
				common[c] += k
			} else {
				delete(common, c)
			}
		}
	}

	wcl := str.SortedWordCounts(common)
	if n > 0 && n < len(wcl) {
		wcl = wcl[:n]
	}
	out := make([]string, len(wcl))
	for i := range wcl {
		out[i] = wcl[i].Word
	}
	return out
}

// Collocations - frequent bigrams ranked by likelihood ratio; stop words and very short words are ignored
func (t *Text) Collocations(n int, stops []string) []ScoredBigram {
	ignored := gen.ToSet(stops)
	f := NewBigramCollocationFinder(t.Tokens)
	f.ApplyFreqFilter(2)
	f.ApplyWordFilter(func(w string) bool {
		if len([]rune(w)) < 3 {
			return true
		}
		_, ok := ignored[Lower(w)]
		return ok
	})
	sc, _ := f.Nbest("likelihood_ratio", n)
	return sc
}

// Dispersion - the offsets of each word, ignoring case
func (t *Text) Dispersion(words []string) map[string][]int {
	ci := t.index()
	out := make(map[string][]int, len(words))
	for _, w := range words {
		out[w] = slices.Clone(ci.Offsets(w))
	}
	return out
}

func (t *Text) String() string {
	return "<Text: " + t.Name + ">"
}
