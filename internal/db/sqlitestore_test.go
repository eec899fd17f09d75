//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/lnch"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/wego/pkg/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openstore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCorpora(t *testing.T) {
	s := openstore(t)
	ctx := context.Background()

	docs, err := s.LoadCorpus(ctx, "newsgroups:train:")
	require.NoError(t, err)
	assert.Nil(t, docs, "a miss is not an error")

	in := []str.Document{
		{ID: "1", Category: "sci.space", Title: "orbit", Text: "Low orbit is crowded."},
		{ID: "2", Category: "rec.autos", Text: "Brakes squeal."},
	}
	require.NoError(t, s.SaveCorpus(ctx, "newsgroups:train:", in))
	require.NoError(t, s.SaveCorpus(ctx, "other", in[:1]))

	out, err := s.LoadCorpus(ctx, "newsgroups:train:")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	require.NoError(t, s.SaveCorpus(ctx, "other", in))
	out, err = s.LoadCorpus(ctx, "other")
	require.NoError(t, err)
	assert.Len(t, out, 2, "saving again replaces")

	kk, err := s.ListCorpora(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"newsgroups:train:", "other"}, kk)
}

func TestModels(t *testing.T) {
	s := openstore(t)
	ctx := context.Background()

	older := ModelRecord{
		ID:          "a",
		Fingerprint: Fingerprint("sample", 10),
		Corpus:      "sample",
		Created:     time.Now().Add(-time.Hour),
		K:           10,
		Params:      json.RawMessage(`{"Topics":10}`),
		Summary:     json.RawMessage(`{"topics":[]}`),
		Prepared:    json.RawMessage(`{"lambda":0.6}`),
	}
	newer := older
	newer.ID = "b"
	newer.Created = time.Now()
	newer.Prepared = nil

	require.NoError(t, s.SaveModel(ctx, older))
	require.NoError(t, s.SaveModel(ctx, newer))

	got, err := s.FetchModel(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 10, got.K)
	assert.JSONEq(t, `{"lambda":0.6}`, string(got.Prepared))
	assert.JSONEq(t, `{"Topics":10}`, string(got.Params))
	assert.WithinDuration(t, older.Created, got.Created, time.Microsecond)

	byfp, err := s.FetchByFingerprint(ctx, older.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, "b", byfp.ID)

	all, err := s.ListModels(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Nil(t, all[1].Prepared)

	require.NoError(t, s.DeleteModel(ctx, "a"))
	assert.ErrorIs(t, s.DeleteModel(ctx, "a"), ErrNoSuchModel)

	_, err = s.FetchModel(ctx, "a")
	assert.ErrorIs(t, err, ErrNoSuchModel)
	_, err = s.FetchByFingerprint(ctx, "nope")
	assert.ErrorIs(t, err, ErrNoSuchModel)
}

func TestEmbeddings(t *testing.T) {
	s := openstore(t)
	ctx := context.Background()

	_, ok, err := s.FetchEmbeddings(ctx, "fp")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveEmbeddings(ctx, "empty", embedding.Embeddings{}))
	_, ok, _ = s.FetchEmbeddings(ctx, "empty")
	assert.False(t, ok, "empty sets are not stored")

	in := embedding.Embeddings{
		{Word: "orbit", Vector: []float64{0.1, 0.2}, Dim: 2},
		{Word: "launch", Vector: []float64{0.3, 0.4}, Dim: 2},
	}
	require.NoError(t, s.SaveEmbeddings(ctx, "fp", in))
	out, ok, err := s.FetchEmbeddings(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("sample", []string{"sci.space"}, 10)
	assert.Len(t, a, 32)
	assert.Equal(t, a, Fingerprint("sample", []string{"sci.space"}, 10))
	assert.NotEqual(t, a, Fingerprint("sample", []string{"sci.space"}, 11))
}

func TestPoolURL(t *testing.T) {
	cfg := lnch.BuildDefaultConfig()
	cfg.WorkerCount = 4
	cfg.PGLogin.Pass = "pw"
	assert.Equal(t, "postgres://cws_rd:pw@127.0.0.1:5432/corpusDB?pool_min_conns=4&pool_max_conns=12", PoolURL(*cfg))
}
