//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

//
// N-GRAMS AND COLLOCATIONS
//

const small = 1e-20

var ErrUnknownMeasure = errors.New("unknown association measure")

// Measures - the association measures ScoreNgrams understands
var Measures = []string{"raw_freq", "pmi", "likelihood_ratio", "chi_sq", "student_t"}

// NGrams - every run of n consecutive tokens
func NGrams(tokens []string, n int) [][]string {
	if n < 1 || len(tokens) < n {
		return nil
	}
	out := make([][]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, tokens[i:i+n:i+n])
	}
	return out
}

func Bigrams(tokens []string) [][]string {
	return NGrams(tokens, 2)
}

func Trigrams(tokens []string) [][]string {
	return NGrams(tokens, 3)
}

// NGramFreq - a FreqDist whose samples are space-joined n-grams
func NGramFreq(tokens []string, n int) *FreqDist {
	fd := NewFreqDist()
	for _, g := range NGrams(tokens, n) {
		fd.Add(strings.Join(g, " "))
	}
	return fd
}

// Bigram - a pair of words
type Bigram [2]string

func (b Bigram) String() string {
	return b[0] + " " + b[1]
}

// ScoredBigram - a bigram and its association score
type ScoredBigram struct {
	Bigram Bigram  `json:"bigram"`
	Score  float64 `json:"score"`
	Count  int     `json:"count"`
}

// BigramCollocationFinder - word and bigram counts for a token stream; filters only ever touch the bigrams
type BigramCollocationFinder struct {
	words   *FreqDist
	bigrams map[Bigram]int
}

func NewBigramCollocationFinder(tokens []string) *BigramCollocationFinder {
	f := &BigramCollocationFinder{
		words:   NewFreqDist(tokens...),
		bigrams: make(map[Bigram]int),
	}
	for i := 0; i+1 < len(tokens); i++ {
		f.bigrams[Bigram{tokens[i], tokens[i+1]}]++
	}
	return f
}

// ApplyFreqFilter - drop bigrams seen fewer than min times
func (f *BigramCollocationFinder) ApplyFreqFilter(min int) {
	for b, n := range f.bigrams {
		if n < min {
			delete(f.bigrams, b)
		}
	}
}

// ApplyWordFilter - drop bigrams in which either word satisfies drop
func (f *BigramCollocationFinder) ApplyWordFilter(drop func(string) bool) {
	for b := range f.bigrams {
		if drop(b[0]) || drop(b[1]) {
			delete(f.bigrams, b)
		}
	}
}

// Len - the number of distinct bigrams still in play
func (f *BigramCollocationFinder) Len() int {
	return len(f.bigrams)
}

// ScoreNgrams - every surviving bigram scored by measure; best first, ties alphabetically
func (f *BigramCollocationFinder) ScoreNgrams(measure string) ([]ScoredBigram, error) {
	score, err := associationmeasure(measure)
	if err != nil {
		return nil, err
	}

	nxx := float64(f.words.N())
	out := make([]ScoredBigram, 0, len(f.bigrams))
	for b, n := range f.bigrams {
		s := score(float64(n), float64(f.words.Count(b[0])), float64(f.words.Count(b[1])), nxx)
		out = append(out, ScoredBigram{Bigram: b, Score: s, Count: n})
	}

	slices.SortFunc(out, func(a, b ScoredBigram) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		if c := strings.Compare(a.Bigram[0], b.Bigram[0]); c != 0 {
			return c
		}
		return strings.Compare(a.Bigram[1], b.Bigram[1])
	})
	return out, nil
}

// Nbest - the n best bigrams by measure
func (f *BigramCollocationFinder) Nbest(measure string, n int) ([]ScoredBigram, error) {
	sc, err := f.ScoreNgrams(measure)
	if err != nil {
		return nil, err
	}
	if n > 0 && n < len(sc) {
		sc = sc[:n]
	}
	return sc, nil
}

type measurefn func(nii, nix, nxi, nxx float64) float64

func associationmeasure(m string) (measurefn, error) {
	switch m {
	case "raw_freq":
		return func(nii, _, _, nxx float64) float64 {
			return nii / nxx
		}, nil
	case "pmi":
		return func(nii, nix, nxi, nxx float64) float64 {
			return math.Log2(nii*nxx) - math.Log2(nix*nxi)
		}, nil
	case "student_t":
		return func(nii, nix, nxi, nxx float64) float64 {
			return (nii - nix*nxi/nxx) / math.Sqrt(nii+small)
		}, nil
	case "chi_sq":
		return func(nii, nix, nxi, nxx float64) float64 {
			nio, noi, noo := contingency(nii, nix, nxi, nxx)
			d := (nii + nio) * (nii + noi) * (nio + noo) * (noi + noo)
			if d == 0 {
				return 0
			}
			x := nii*noo - nio*noi
			return nxx * x * x / d
		}, nil
	case "likelihood_ratio":
		return func(nii, nix, nxi, nxx float64) float64 {
			nio, noi, noo := contingency(nii, nix, nxi, nxx)
			cont := [4]float64{nii, noi, nio, noo}
			lr := 0.0
			for i := 0; i < 4; i++ {
				exp := (cont[i] + cont[i^1]) * (cont[i] + cont[i^2]) / nxx
				if cont[i] == 0 {
					continue
				}
				lr += cont[i] * math.Log(cont[i]/(exp+small)+small)
			}
			return 2 * lr
		}, nil
	}
	return nil, fmt.Errorf("'%s': %w", m, ErrUnknownMeasure)
}

// contingency - the rest of the 2x2 table: w1 without w2, w2 without w1, neither
func contingency(nii, nix, nxi, nxx float64) (float64, float64, float64) {
	nio := nix - nii
	noi := nxi - nii
	noo := nxx - nii - nio - noi
	return nio, noi, noo
}
