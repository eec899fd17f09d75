//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

//
// CONCORDANCES
//

// ConcordanceIndex - where each (lower-cased) token occurs
type ConcordanceIndex struct {
	tokens  []string
	offsets map[string][]int
}

// ConcordanceLine - one keyword in context
type ConcordanceLine struct {
	Left   string `json:"left"`
	Query  string `json:"query"`
	Right  string `json:"right"`
	Offset int    `json:"offset"`
	Line   string `json:"line"`
}

func NewConcordanceIndex(tokens []string) *ConcordanceIndex {
	ci := &ConcordanceIndex{tokens: tokens, offsets: make(map[string][]int)}
	for i, t := range tokens {
		k := Lower(t)
		ci.offsets[k] = append(ci.offsets[k], i)
	}
	return ci
}

// Offsets - the token positions of w, ignoring case
func (ci *ConcordanceIndex) Offsets(w string) []int {
	return ci.offsets[Lower(w)]
}

// Lines - KWIC lines for w; the left context is right-aligned so that the keywords line up
func (ci *ConcordanceIndex) Lines(w string, width int, lines int) ([]ConcordanceLine, int) {
	half := (width - utf8.RuneCountInString(w) - 2) / 2
	context := width / 4

	offs := ci.Offsets(w)
	total := len(offs)
	if lines > 0 && lines < len(offs) {
		offs = offs[:lines]
	}

	out := make([]ConcordanceLine, 0, len(offs))
	for _, i := range offs {
		left := strings.Join(ci.tokens[max(0, i-context):i], " ")
		lo := min(i+1, len(ci.tokens))
		hi := max(lo, min(i+context, len(ci.tokens)))
		right := strings.Join(ci.tokens[lo:hi], " ")

		left = lastrunes(left, half)
		left = strings.Repeat(" ", max(0, half-utf8.RuneCountInString(left))) + left
		right = firstrunes(right, half)

		out = append(out, ConcordanceLine{
			Left:   left,
			Query:  ci.tokens[i],
			Right:  right,
			Offset: i,
			Line:   strings.Join([]string{left, ci.tokens[i], right}, " "),
		})
	}
	return out, total
}

// Print - "Displaying N of M matches:" followed by the lines
func (ci *ConcordanceIndex) Print(w io.Writer, word string, width int, lines int) {
	cl, total := ci.Lines(word, width, lines)
	if total == 0 {
		_, _ = fmt.Fprintln(w, "No matches")
		return
	}
	_, _ = fmt.Fprintf(w, "Displaying %d of %d matches:\n", len(cl), total)
	for _, l := range cl {
		_, _ = fmt.Fprintln(w, l.Line)
	}
}

func lastrunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func firstrunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
