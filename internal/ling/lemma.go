//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"strings"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/str"
)

//
// LEMMATIZATION
//

type detachment struct {
	suffix  string
	replace string
}

var (
	detachments = map[string][]detachment{
		"n": {{"s", ""}, {"ses", "s"}, {"xes", "x"}, {"zes", "z"}, {"ches", "ch"}, {"shes", "sh"},
			{"men", "man"}, {"ies", "y"}},
		"v": {{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""}, {"ed", "e"}, {"ed", ""},
			{"ing", "e"}, {"ing", ""}},
		"a": {{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"}},
		"r": {},
	}

	exceptions = map[string]map[string]string{
		"n": nounexc,
		"v": verbexc,
		"a": adjexc,
		"r": advexc,
	}
)

// Lemmatizer - detachment rules plus irregular forms; competing candidates are settled by how often the
// corpus itself uses them (winner takes all)
type Lemmatizer struct {
	counts map[string]int
}

// NewLemmatizer - headword counts come from the corpus: a FreqDist of lower-cased words
func NewLemmatizer(lexicon *FreqDist) *Lemmatizer {
	lz := &Lemmatizer{counts: make(map[string]int)}
	if lexicon != nil {
		lz.counts = lexicon.counts
	}
	return lz
}

// Candidates - every form the rules can derive for word as pos; exceptions come first
func Candidates(word string, pos string) []string {
	word = Lower(word)
	if ex, ok := exceptions[pos][word]; ok {
		return []string{ex}
	}

	var cc []string
	for _, d := range detachments[pos] {
		if strings.HasSuffix(word, d.suffix) && len(word) > len(d.suffix) {
			base := strings.TrimSuffix(word, d.suffix) + d.replace
			if len(base) > 1 {
				cc = append(cc, base)
			}
			// "running" --> "runn" --> "run"; "bigger" --> "bigg" --> "big"
			if d.replace == "" && len(d.suffix) > 1 && undoubles(base) {
				cc = append(cc, base[:len(base)-1])
			}
		}
	}
	return gen.Unique(cc)
}

func undoubles(s string) bool {
	n := len(s)
	if n < 3 || s[n-1] != s[n-2] {
		return false
	}
	return !strings.ContainsRune("aeiousl", rune(s[n-1]))
}

// Lemmatize - the lemma of word taken as pos ("n", "v", "a", "r"; "" means "n")
func (lz *Lemmatizer) Lemmatize(word string, pos string) string {
	if pos == "" {
		pos = "n"
	}
	lw := Lower(word)

	if ex, ok := exceptions[pos][lw]; ok {
		return ex
	}

	winner := ""
	best := 0
	for _, c := range Candidates(lw, pos) {
		n := lz.counts[c]
		if n == 0 {
			continue
		}
		switch {
		case n > best:
			winner, best = c, n
		case n == best && (len(c) < len(winner) || (len(c) == len(winner) && c < winner)):
			winner = c
		}
	}

	if winner == "" {
		return lw
	}
	return winner
}

// LemmatizeTagged - use the tags to choose the part of speech; words that are not n/v/a/r keep their form
func (lz *Lemmatizer) LemmatizeTagged(tagged []TaggedToken) []str.WordInfo {
	out := make([]str.WordInfo, len(tagged))
	for i, t := range tagged {
		wi := str.WordInfo{Word: t.Text, Tag: t.Tag}
		if p := WordNetPOS(t.Tag); p != "" && isalpha(t.Text) {
			wi.Lemma = lz.Lemmatize(t.Text, p)
		} else {
			wi.Lemma = Lower(t.Text)
		}
		out[i] = wi
	}
	return out
}

// LemmaFreq - a FreqDist of lemmata
func LemmaFreq(ww []str.WordInfo) *FreqDist {
	fd := NewFreqDist()
	for _, w := range ww {
		if isalpha(w.Word) {
			fd.Add(w.Lemma)
		}
	}
	return fd
}
