//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/str"
)

//
// FREQUENCY DISTRIBUTIONS
//

// FreqDist - how often each sample was seen
type FreqDist struct {
	counts map[string]int
	n      int
}

func NewFreqDist(samples ...string) *FreqDist {
	fd := &FreqDist{counts: make(map[string]int)}
	fd.Add(samples...)
	return fd
}

func (fd *FreqDist) Add(samples ...string) {
	for _, s := range samples {
		fd.counts[s]++
	}
	fd.n += len(samples)
}

// N - the number of outcomes recorded
func (fd *FreqDist) N() int {
	return fd.n
}

// B - the number of bins (distinct samples)
func (fd *FreqDist) B() int {
	return len(fd.counts)
}

func (fd *FreqDist) Count(s string) int {
	return fd.counts[s]
}

// Freq - relative frequency of s; 0 for an empty distribution
func (fd *FreqDist) Freq(s string) float64 {
	if fd.n == 0 {
		return 0
	}
	return float64(fd.counts[s]) / float64(fd.n)
}

// MostCommon - the n most frequent samples; ties alphabetically; n < 1 means all of them
func (fd *FreqDist) MostCommon(n int) str.WCList {
	wcl := str.SortedWordCounts(fd.counts)
	if n > 0 && n < len(wcl) {
		wcl = wcl[:n]
	}
	return wcl
}

// Max - the most frequent sample
func (fd *FreqDist) Max() string {
	if fd.n == 0 {
		return ""
	}
	return fd.MostCommon(1)[0].Word
}

// Hapaxes - samples seen exactly once, sorted
func (fd *FreqDist) Hapaxes() []string {
	var hh []string
	for k, v := range fd.counts {
		if v == 1 {
			hh = append(hh, k)
		}
	}
	slices.Sort(hh)
	return hh
}

// Cumulative - running totals over the n most common samples
func (fd *FreqDist) Cumulative(n int) []int {
	mc := fd.MostCommon(n)
	cc := make([]int, len(mc))
	t := 0
	for i, w := range mc {
		t += w.Count
		cc[i] = t
	}
	return cc
}

// Without - a copy that omits the given samples
func (fd *FreqDist) Without(drop []string) *FreqDist {
	d := gen.ToSet(drop)
	nf := &FreqDist{counts: make(map[string]int, len(fd.counts))}
	for k, v := range fd.counts {
		if _, ok := d[k]; ok {
			continue
		}
		nf.counts[k] = v
		nf.n += v
	}
	return nf
}

// Samples - every sample, sorted
func (fd *FreqDist) Samples() []string {
	return gen.SortedKeys(fd.counts)
}

// Tabulate - "word count" columns for the n most common samples
func (fd *FreqDist) Tabulate(w io.Writer, n int) {
	mc := fd.MostCommon(n)
	var hd, ct []string
	for _, m := range mc {
		wd := max(len(m.Word), len(fmt.Sprint(m.Count)))
		hd = append(hd, fmt.Sprintf("%*s", wd, m.Word))
		ct = append(ct, fmt.Sprintf("%*d", wd, m.Count))
	}
	_, _ = fmt.Fprintln(w, strings.Join(hd, " "))
	_, _ = fmt.Fprintln(w, strings.Join(ct, " "))
}

// ConditionalFreqDist - one FreqDist per condition (e.g. per newsgroup)
type ConditionalFreqDist struct {
	dists map[string]*FreqDist
}

func NewConditionalFreqDist() *ConditionalFreqDist {
	return &ConditionalFreqDist{dists: make(map[string]*FreqDist)}
}

func (c *ConditionalFreqDist) Add(condition string, samples ...string) {
	fd, ok := c.dists[condition]
	if !ok {
		fd = NewFreqDist()
		c.dists[condition] = fd
	}
	fd.Add(samples...)
}

// Conditions - sorted
func (c *ConditionalFreqDist) Conditions() []string {
	return gen.SortedKeys(c.dists)
}

// Get - the distribution for a condition; an empty one if the condition is unknown
func (c *ConditionalFreqDist) Get(condition string) *FreqDist {
	if fd, ok := c.dists[condition]; ok {
		return fd
	}
	return NewFreqDist()
}

// N - outcomes across all conditions
func (c *ConditionalFreqDist) N() int {
	t := 0
	for _, fd := range c.dists {
		t += fd.N()
	}
	return t
}

// Table - condition --> counts for each of the samples
func (c *ConditionalFreqDist) Table(samples []string) map[string][]int {
	tb := make(map[string][]int, len(c.dists))
	for k, fd := range c.dists {
		row := make([]int, len(samples))
		for i, s := range samples {
			row[i] = fd.Count(s)
		}
		tb[k] = row
	}
	return tb
}

// Tabulate - a grid of conditions by samples
func (c *ConditionalFreqDist) Tabulate(w io.Writer, samples []string) {
	conds := c.Conditions()
	cw := 0
	for _, k := range conds {
		cw = max(cw, len(k))
	}
	sw := make([]int, len(samples))
	for i, s := range samples {
		sw[i] = max(len(s), 4)
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", cw))
	for i, s := range samples {
		sb.WriteString(fmt.Sprintf(" %*s", sw[i], s))
	}
	_, _ = fmt.Fprintln(w, sb.String())

	tb := c.Table(samples)
	for _, k := range conds {
		sb.Reset()
		sb.WriteString(fmt.Sprintf("%*s", cw, k))
		for i, n := range tb[k] {
			sb.WriteString(fmt.Sprintf(" %*d", sw[i], n))
		}
		_, _ = fmt.Fprintln(w, sb.String())
	}
}
