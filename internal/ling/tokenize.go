//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//
// TOKENIZATION
//

var (
	// order matters: initialisms before words, numbers before punctuation
	tokenre = regexp.MustCompile(`(?:\p{L}\.){2,}|\p{L}+(?:['-]\p{L}+)*'?|\p{N}+(?:[.,:/]\p{N}+)*|\.\.\.|--|\S`)

	apostrophes = strings.NewReplacer("’", "'", "‘", "'", "“", `"`, "”", `"`)

	clitics = []string{"'s", "'re", "'ve", "'ll", "'d", "'m"}

	lowercaser = cases.Lower(language.English)

	abbreviations = gen.ToSet([]string{"mr", "mrs", "ms", "dr", "prof", "st", "jr", "sr", "vs", "etc", "inc", "ltd",
		"co", "corp", "dept", "e.g", "i.e", "u.s", "u.k", "a.m", "p.m", "no", "vol", "fig", "approx", "jan", "feb",
		"mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec", "mt", "gen", "gov", "sen", "rep"})
)

// Normalise - NFC and, if fold is set, no diacritics
func Normalise(s string, fold bool) string {
	if fold {
		return gen.FoldAccents(s)
	}
	return gen.NFC(s)
}

// Lower - unicode-aware lower case
func Lower(s string) string {
	return lowercaser.String(s)
}

// WordTokens - split punctuation off words; English clitics become tokens of their own: "don't" --> "do", "n't"
func WordTokens(s string) []string {
	s = apostrophes.Replace(s)
	raw := tokenre.FindAllString(s, -1)

	tt := make([]string, 0, len(raw)+len(raw)/8)
	for _, t := range raw {
		tt = append(tt, splitclitic(t)...)
	}
	return tt
}

func splitclitic(t string) []string {
	if !strings.Contains(t, "'") || len(t) < 3 {
		return []string{t}
	}

	// "dogs'" --> "dogs", "'"
	if strings.HasSuffix(t, "'") {
		return []string{t[:len(t)-1], "'"}
	}

	l := strings.ToLower(t)
	if strings.HasSuffix(l, "n't") && len(t) > 3 {
		return []string{t[:len(t)-3], t[len(t)-3:]}
	}
	for _, c := range clitics {
		if strings.HasSuffix(l, c) && len(t) > len(c) {
			return []string{t[:len(t)-len(c)], t[len(t)-len(c):]}
		}
	}
	return []string{t}
}

// Sentences - split on ".?!" (and on ";:·" if loose) without splitting "Dr. Smith" or "3.5"
func Sentences(s string, loose bool) []string {
	s = strings.TrimSpace(apostrophes.Replace(s))
	r := []rune(s)

	isterm := func(c rune) bool {
		switch c {
		case '.', '?', '!':
			return true
		case ';', ':', '·':
			return loose
		}
		return false
	}

	var out []string
	start := 0
	for i := 0; i < len(r); i++ {
		if !isterm(r[i]) {
			continue
		}

		// swallow "?!", "..." and closing quotes or brackets
		j := i + 1
		for j < len(r) && (isterm(r[j]) || r[j] == '"' || r[j] == '\'' || r[j] == ')' || r[j] == ']') {
			j++
		}
		if j < len(r) && !unicode.IsSpace(r[j]) {
			i = j - 1
			continue
		}
		if r[i] == '.' && j == i+1 && abbreviated(r[start:i]) {
			continue
		}

		if sent := strings.TrimSpace(string(r[start:j])); sent != "" {
			out = append(out, sent)
		}
		start = j
		i = j - 1
	}
	if tail := strings.TrimSpace(string(r[start:])); tail != "" {
		out = append(out, tail)
	}
	return out
}

// abbreviated - does the text before a period end with "Dr", "e.g", an initial, ...
func abbreviated(before []rune) bool {
	k := len(before)
	for k > 0 && !unicode.IsSpace(before[k-1]) && before[k-1] != '(' {
		k--
	}
	w := string(before[k:])
	if w == "" {
		return false
	}
	if len([]rune(w)) == 1 && unicode.IsUpper([]rune(w)[0]) {
		return true
	}
	_, ok := abbreviations[strings.ToLower(w)]
	return ok
}

// Words - the alphabetic tokens, lower-cased
func Words(tokens []string) []string {
	ww := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if isalpha(t) {
			ww = append(ww, Lower(t))
		}
	}
	return ww
}

func isalpha(t string) bool {
	if t == "" {
		return false
	}
	for _, c := range t {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return true
}

// LexicalDiversity - distinct tokens / all tokens
func LexicalDiversity(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	return float64(len(gen.ToSet(tokens))) / float64(len(tokens))
}
