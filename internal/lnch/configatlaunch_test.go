//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultConfig(t *testing.T) {
	c := BuildDefaultConfig()
	assert.Equal(t, vv.DEFAULTDATASET, c.Dataset)
	assert.Equal(t, vv.LDATOPICS, c.LdaTopics)
	assert.Equal(t, vv.VECWEIGHTING, c.VecWeighting)
	assert.Equal(t, vv.DEFAULTPSQLDB, c.PGLogin.DBName)
	assert.Positive(t, c.WorkerCount)
}

func TestApplyArgs(t *testing.T) {
	c := BuildDefaultConfig()
	args := strings.Fields(`-gl 4 -ds newsgroups -cat sci.space,rec.autos -nt 7 -it 25 -wt tfidf -la 0.3 -sd 42 -xd 0.5 -sv -bw -ex freq,lda`)
	act, err := ApplyArgs(c, args)
	require.NoError(t, err)
	assert.Equal(t, ACTRUN, act)
	assert.Equal(t, 4, c.LogLevel)
	assert.Equal(t, "newsgroups", c.Dataset)
	assert.Equal(t, []string{"sci.space", "rec.autos"}, c.Categories)
	assert.Equal(t, 7, c.LdaTopics)
	assert.Equal(t, 25, c.LdaIter)
	assert.Equal(t, "tfidf", c.VecWeighting)
	assert.InDelta(t, 0.3, c.VisLambda, 1e-9)
	assert.Equal(t, 42, c.LdaSeed)
	assert.InDelta(t, 0.5, c.VecMaxDF, 1e-9)
	assert.True(t, c.Serve)
	assert.True(t, c.BlackAndWhite)
	assert.Equal(t, []string{"freq", "lda"}, c.Lessons)
}

func TestApplyArgsActions(t *testing.T) {
	tests := []struct {
		args []string
		want int
	}{
		{[]string{"-h"}, ACTHELP},
		{[]string{"-v"}, ACTVERSION},
		{[]string{"-vv"}, ACTFULLVERSION},
		{[]string{"-q"}, ACTRUN},
	}
	for _, tt := range tests {
		act, err := ApplyArgs(BuildDefaultConfig(), tt.args)
		require.NoError(t, err)
		assert.Equal(t, tt.want, act, tt.args)
	}
}

func TestApplyArgsErrors(t *testing.T) {
	bad := [][]string{
		{"-gl"},
		{"-gl", "loud"},
		{"-la", "1.5"},
		{"-nt", "0"},
		{"-wt", "binary"},
		{"-pg", "{not json"},
	}
	for _, b := range bad {
		_, err := ApplyArgs(BuildDefaultConfig(), b)
		assert.Error(t, err, b)
	}
}

func TestApplyArgsPostgres(t *testing.T) {
	c := BuildDefaultConfig()
	_, err := ApplyArgs(c, []string{"-pg", `{"Pass": "x", "Host": "10.0.0.1", "Port": 5433, "DBName": "d", "User": "u"}`})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", c.PGLogin.Host)
	assert.Equal(t, 5433, c.PGLogin.Port)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	js := filepath.Join(dir, vv.CONFIGBASIC)
	require.NoError(t, os.WriteFile(js, []byte(`{"Dataset": "newsgroups", "LdaTopics": 20}`), 0644))

	ym := filepath.Join(dir, vv.CONFIGYAML)
	require.NoError(t, os.WriteFile(ym, []byte("dataset: pg\nldatopics: 5\npglogin:\n  host: db.local\n  port: 6543\n"), 0644))

	base := BuildDefaultConfig()

	c, err := LoadConfigFile(js, base)
	require.NoError(t, err)
	assert.Equal(t, "newsgroups", c.Dataset)
	assert.Equal(t, 20, c.LdaTopics)
	assert.Equal(t, vv.LDAITER, c.LdaIter, "unset values keep their defaults")
	assert.Equal(t, vv.DEFAULTDATASET, base.Dataset, "base is untouched")

	c, err = LoadConfigFile(ym, base)
	require.NoError(t, err)
	assert.Equal(t, "pg", c.Dataset)
	assert.Equal(t, 5, c.LdaTopics)
	assert.Equal(t, "db.local", c.PGLogin.Host)
	assert.Equal(t, 6543, c.PGLogin.Port)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"Dataset": `), 0644))
	_, err = LoadConfigFile(broken, base)
	assert.Error(t, err)
}

func TestHelpText(t *testing.T) {
	Msg.BW = true
	h := HelpText(*BuildDefaultConfig())
	assert.Contains(t, h, "-nt {num}")
	assert.Contains(t, h, "newsgroups")
	assert.NotContains(t, h, "C0")
	assert.Contains(t, VersionLine(*BuildDefaultConfig()), vv.MYNAME)
}
