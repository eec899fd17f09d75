//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hubonce sync.Once

func bwmaker(lvl int) (*MessageMaker, *bytes.Buffer) {
	var b bytes.Buffer
	m := NewMessageMaker()
	m.BW = true
	m.SNm = "CWS"
	m.LNm = "Corpus Workshop"
	m.Ver = "0.0.0"
	m.LLvl = lvl
	m.Out = &b
	return m, &b
}

func TestEmitRespectsLevel(t *testing.T) {
	m, b := bwmaker(MSGNOTE)
	m.TMI("hidden")
	m.FYI("hidden too")
	m.NOTE("shown")
	m.CRIT("also shown")
	m.MAND("always")

	out := b.String()
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, "[CWS] shown\n[CWS] also shown\n[CWS] always\n", out)
}

func TestEmitColor(t *testing.T) {
	m, b := bwmaker(MSGTMI)
	m.BW = false
	m.Win = false
	m.CRIT("red")
	assert.Contains(t, b.String(), RED1+"red"+RESET)
	assert.Contains(t, b.String(), YELLOW1+"CWS"+RESET)
}

func TestColorAndStyle(t *testing.T) {
	m, _ := bwmaker(0)
	assert.Equal(t, "[git: abc]", m.ColStyle("[C4git: S1abcS0C0]"))

	m.BW = false
	m.Win = false
	assert.Equal(t, "["+GREEN+"x"+RESET+"]", m.Color("[C4xC0]"))
	assert.Equal(t, "\033[1mx"+RESET, m.Styled("S1xS0"))
}

func TestTimer(t *testing.T) {
	m, b := bwmaker(MSGFYI)
	start := time.Now().Add(-2 * time.Second)
	m.Timer("A1", "fit the model", start, start.Add(time.Second))
	out := b.String()
	assert.True(t, strings.HasPrefix(out, "[CWS] [A1: 2."), out)
	assert.Contains(t, out, "[Δ: 1.")
	assert.Contains(t, out, "fit the model")
}

func TestECExits(t *testing.T) {
	var code = -100
	old := exit
	exit = func(c int) { code = c }
	defer func() { exit = old }()

	m, b := bwmaker(0)
	m.EC(nil)
	assert.Equal(t, -100, code)
	assert.Empty(t, b.String())

	c := m.Caller("LoadCorpus()")
	c.EC(errors.New("boom"))
	assert.Equal(t, 1, code)
	assert.Contains(t, b.String(), "LoadCorpus()")
	assert.Contains(t, b.String(), "UNRECOVERABLE ERROR")
	assert.Contains(t, b.String(), "boom")
}

func TestLogPathsFeedsHub(t *testing.T) {
	hubonce.Do(func() { go PathInfoHub() })
	m, b := bwmaker(MSGPEEK)

	m.LogPaths("RtCorpus()")
	m.LogPaths("RtCorpus()")

	require.Eventually(t, func() bool {
		return PathCounts()["RtCorpus()"] == 2
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, b.String(), "RtCorpus() current heap:")
}
