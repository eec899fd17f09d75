//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corp

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const post = "From: someone@example.edu\nSubject: Re: shuttle costs\nLines: 9\n\n" +
	"In article <1993Apr5.1@example.edu> other@example.edu writes:\n" +
	"> the shuttle is too expensive\n" +
	"The shuttle program cost more than planned.\n" +
	"A cheaper launcher would help.\n" +
	"--\n" +
	"Someone | Example University | opinions are mine\n"

func fakearchive(t *testing.T) []byte {
	t.Helper()
	files := map[string]string{
		"20news-bydate-train/sci.space/1001": post,
		"20news-bydate-train/sci.space/1002": "Subject: orbit\n\nLow orbit is crowded.\n",
		"20news-bydate-train/rec.autos/2001": "Subject: brakes\n\nMy brakes squeal caf\xe9.\n",
		"20news-bydate-test/sci.space/1003":  "Subject: moon\n\nBack to the moon.\n",
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "20news-bydate-train/", Typeflag: tar.TypeDir, Mode: 0755}))
	for _, n := range []string{"20news-bydate-train/sci.space/1001", "20news-bydate-train/sci.space/1002",
		"20news-bydate-train/rec.autos/2001", "20news-bydate-test/sci.space/1003"} {
		b := []byte(files[n])
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: n, Typeflag: tar.TypeReg, Mode: 0644, Size: int64(len(b))}))
		_, err := tw.Write(b)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestCleaning(t *testing.T) {
	assert.Equal(t, "body\n", StripHeader("Subject: x\nFrom: y\n\nbody\n"))
	assert.Equal(t, "", StripHeader("no blank line at all"))

	q := StripQuotes("keep me\n> quoted\nJoe wrote:\n| also quoted\nIn article <x> y said:\nkeep too")
	assert.Equal(t, "keep me\nkeep too", q)

	assert.Equal(t, "text\nmore", StripFooter("text\nmore\n--\nsig line"))
	assert.Equal(t, "-- \nonly a sig", StripFooter("-- \nonly a sig"), "a marker on the first line is not a footer")

	got := CleanPost(post)
	assert.Equal(t, "The shuttle program cost more than planned.\nA cheaper launcher would help.", got)
}

func TestParseNewsgroupsArchive(t *testing.T) {
	arc := fakearchive(t)

	docs, err := ParseNewsgroupsArchive(bytes.NewReader(arc), []string{vv.NEWSGROUPSTRAIN}, nil, true)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "rec.autos", docs[0].Category)
	assert.Equal(t, "My brakes squeal café.", docs[0].Text, "latin-1 is decoded")
	assert.Equal(t, "Re: shuttle costs", docs[1].Title)
	assert.Equal(t, "1001", docs[1].ID)

	docs, err = ParseNewsgroupsArchive(bytes.NewReader(arc), []string{vv.NEWSGROUPSTRAIN, vv.NEWSGROUPSTEST}, []string{"sci.space"}, false)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.Contains(t, docs[1].Text, "From: someone@example.edu")
}

func TestNewsgroupsFetchAndReuse(t *testing.T) {
	arc := fakearchive(t)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write(arc)
	}))
	defer srv.Close()

	o := NewsgroupsOptions{URL: srv.URL, DataDir: t.TempDir(), Subset: "all", Progress: &bytes.Buffer{}}

	c, err := Newsgroups(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []string{"rec.autos", "sci.space"}, c.Categories)

	_, err = os.Stat(filepath.Join(o.DataDir, vv.NEWSGROUPSARCHIVE))
	require.NoError(t, err)

	o.Subset = "test"
	c, err = Newsgroups(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int32(1), hits.Load(), "the cached archive is reused")

	o.Subset = "validation"
	_, err = Newsgroups(context.Background(), o)
	assert.ErrorIs(t, err, ErrUnknownDataset)
}

func TestFetchArchiveStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := FetchArchive(context.Background(), NewsgroupsOptions{URL: srv.URL, DataDir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	left, _ := os.ReadDir(dir)
	assert.Empty(t, left, "no partial download is left behind")
}

func TestNewsgroupsCacheKey(t *testing.T) {
	k := NewsgroupsCacheKey(NewsgroupsOptions{Categories: []string{"sci.space", "rec.autos"}})
	assert.Equal(t, "newsgroups:train:rec.autos,sci.space", k)
	k = NewsgroupsCacheKey(NewsgroupsOptions{Subset: "all", Keep: true})
	assert.Equal(t, "newsgroups:all::raw", k)
}
