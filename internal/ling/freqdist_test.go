//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreqDist(t *testing.T) {
	fd := NewFreqDist(strings.Fields("the cat sat on the mat the end")...)
	assert.Equal(t, 8, fd.N())
	assert.Equal(t, 6, fd.B())
	assert.Equal(t, 3, fd.Count("the"))
	assert.Zero(t, fd.Count("dog"))
	assert.InDelta(t, 0.375, fd.Freq("the"), 1e-9)
	assert.Equal(t, "the", fd.Max())

	mc := fd.MostCommon(2)
	assert.Len(t, mc, 2)
	assert.Equal(t, "the", mc[0].Word)
	assert.Equal(t, 3, mc[0].Count)
	assert.Equal(t, "cat", mc[1].Word)

	assert.Equal(t, []string{"cat", "end", "mat", "on", "sat"}, fd.Hapaxes())
	assert.Equal(t, []int{3, 4, 5}, fd.Cumulative(3))
	assert.Len(t, fd.MostCommon(0), 6)

	wo := fd.Without([]string{"the"})
	assert.Equal(t, 5, wo.N())
	assert.Equal(t, 3, fd.Count("the"))

	var b bytes.Buffer
	fd.Tabulate(&b, 2)
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "the")
	assert.Contains(t, lines[1], "3")

	assert.Equal(t, "", NewFreqDist().Max())
	assert.Zero(t, NewFreqDist().Freq("x"))
}

func TestConditionalFreqDist(t *testing.T) {
	c := NewConditionalFreqDist()
	c.Add("news", "a", "b")
	c.Add("sport", "a")
	assert.Equal(t, []string{"news", "sport"}, c.Conditions())
	assert.Equal(t, 1, c.Get("news").Count("a"))
	assert.Zero(t, c.Get("nope").N())
	assert.Equal(t, 3, c.N())
	assert.Equal(t, map[string][]int{"news": {1, 1}, "sport": {1, 0}}, c.Table([]string{"a", "b"}))

	var b bytes.Buffer
	c.Tabulate(&b, []string{"a", "b"})
	assert.Contains(t, b.String(), "sport")
}
