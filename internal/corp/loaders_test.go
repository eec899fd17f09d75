//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e-gun/CorpusWorkshop/internal/lnch"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><title> Orbital Notes </title><style>p {color: red}</style></head>
<body><nav><a href="/">home</a></nav>
<article><h1>Orbits</h1><p>Low   orbit is crowded.</p><script>var x = 1;</script><p>Geostationary orbit is far away.</p></article>
<footer>copyright</footer></body></html>`

func TestHTMLToText(t *testing.T) {
	title, txt, err := HTMLToText(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "Orbital Notes", title)
	assert.Equal(t, "Orbits\n\nLow orbit is crowded.\n\nGeostationary orbit is far away.", txt)
	assert.NotContains(t, txt, "var x")
	assert.NotContains(t, txt, "copyright")
}

func TestLoadDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "poems"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "poems", "a.txt"), []byte("Rose is red. Violets too."), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("Loose text."), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.md"), []byte("ignored"), 0644))

	c, err := LoadDir(root)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"", "poems"}, c.Categories)

	byc := c.ByCategory()
	assert.Equal(t, "a", byc["poems"][0].ID)
	assert.Equal(t, "Rose is red.", byc["poems"][0].Title)

	_, err = LoadDir(t.TempDir())
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(page))
		case "/plain":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("Just words. More words."))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), 100)
	c, err := f.FetchAll(context.Background(), []string{srv.URL + "/page", srv.URL + "/plain"})
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "Orbital Notes", c.Docs[0].Title)
	assert.Equal(t, "Just words.", c.Docs[1].Title)
	assert.Equal(t, "127.0.0.1", c.Docs[0].Category)

	_, err = f.FetchAll(context.Background(), []string{srv.URL + "/missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

type memcache struct {
	docs  map[string][]str.Document
	saves int
}

func (m *memcache) LoadCorpus(_ context.Context, key string) ([]str.Document, error) {
	return m.docs[key], nil
}

func (m *memcache) SaveCorpus(_ context.Context, key string, docs []str.Document) error {
	m.docs[key] = docs
	m.saves++
	return nil
}

func TestLoadNewsgroupsThroughCache(t *testing.T) {
	arc := fakearchive(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(arc)
	}))
	defer srv.Close()

	cfg := lnch.BuildDefaultConfig()
	cfg.Dataset = NEWSGROUPSNAME
	cfg.NewsgroupsURL = srv.URL
	cfg.DataDir = t.TempDir()
	cfg.Categories = []string{"sci.space"}

	mc := &memcache{docs: make(map[string][]str.Document)}
	c, err := Load(context.Background(), cfg, Sources{Cache: mc, Client: srv.Client()})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, mc.saves)
	assert.Len(t, mc.docs["newsgroups:train:sci.space"], 2)

	// the archive is gone but the cache still answers
	require.NoError(t, os.RemoveAll(cfg.DataDir))
	c, err = Load(context.Background(), cfg, Sources{Cache: mc})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, mc.saves)
}

func TestLoad(t *testing.T) {
	cfg := lnch.BuildDefaultConfig()

	c, err := Load(context.Background(), cfg, Sources{})
	require.NoError(t, err)
	assert.Equal(t, SAMPLENAME, c.Name)

	cfg.Categories = []string{"sci.space"}
	c, err = Load(context.Background(), cfg, Sources{})
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())

	cfg.Dataset = "gutenberg"
	_, err = Load(context.Background(), cfg, Sources{})
	assert.ErrorIs(t, err, ErrUnknownDataset)

	cfg.Dataset = "pg"
	_, err = Load(context.Background(), cfg, Sources{})
	assert.ErrorIs(t, err, ErrUnknownDataset)
}
