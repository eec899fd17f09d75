//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/e-gun/wego/pkg/embedding"
	_ "modernc.org/sqlite"
)

var ErrNoSuchModel = errors.New("no such model")

// Store - the sqlite file that remembers parsed corpora, fitted models and trained embeddings
type Store struct {
	db *sql.DB
}

// ModelRecord - a fitted model as the store sees it; the json blobs belong to the caller
type ModelRecord struct {
	ID          string          `json:"id"`
	Fingerprint string          `json:"fingerprint"`
	Corpus      string          `json:"corpus"`
	Created     time.Time       `json:"created"`
	K           int             `json:"k"`
	Params      json.RawMessage `json:"params"`
	Summary     json.RawMessage `json:"summary"`
	Prepared    json.RawMessage `json:"-"`
}

// Open - open (or create) the store at path and bring its schema up to date
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, vv.DIRPERMS); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer at a time keeps sqlite from reporting SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err = s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const (
		SCHEMA = `
	CREATE TABLE IF NOT EXISTS corpora (
		key     TEXT PRIMARY KEY,
		ndocs   INTEGER NOT NULL,
		docs    BLOB NOT NULL,
		created INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS models (
		id          TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		corpus      TEXT NOT NULL,
		created     INTEGER NOT NULL,
		k           INTEGER NOT NULL,
		params      TEXT NOT NULL,
		summary     TEXT NOT NULL,
		prepared    BLOB
	);

	CREATE TABLE IF NOT EXISTS embeddings (
		fingerprint TEXT PRIMARY KEY,
		vectorsize  INTEGER NOT NULL,
		vectordata  BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_models_fingerprint ON models(fingerprint);
	`
	)
	_, err := s.db.Exec(SCHEMA)
	return err
}

//
// FINGERPRINTS
//

// Fingerprint - derive a unique md5 for any given mix of corpus and settings; callers must sort any lists first
func Fingerprint(parts ...any) string {
	const (
		FAIL = "Fingerprint() failed to Marshal"
	)
	b, err := json.Marshal(parts)
	if err != nil {
		Msg.WARN(FAIL)
		b = []byte(fmt.Sprint(parts...))
	}
	m := md5.Sum(b)
	return hex.EncodeToString(m[:])
}

//
// GZIP + JSON
//

func gzjson(v any) ([]byte, error) {
	eb, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err = zw.Write(eb); err != nil {
		return nil, err
	}
	if err = zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ungzjson(b []byte, v any) error {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

//
// CORPORA
//

// SaveCorpus - replace whatever was stored under key
func (s *Store) SaveCorpus(ctx context.Context, key string, docs []str.Document) error {
	const (
		INS = `INSERT OR REPLACE INTO corpora (key, ndocs, docs, created) VALUES (?, ?, ?, ?)`
		MSG = "SaveCorpus(): %s (%d documents, %dk)"
	)
	b, err := gzjson(docs)
	if err != nil {
		return err
	}
	if _, err = s.db.ExecContext(ctx, INS, key, len(docs), b, time.Now().UnixNano()); err != nil {
		return fmt.Errorf("SaveCorpus(): %w", err)
	}
	Msg.TMI(fmt.Sprintf(MSG, key, len(docs), len(b)/1024))
	return nil
}

// LoadCorpus - (nil, nil) if nothing was stored under key
func (s *Store) LoadCorpus(ctx context.Context, key string) ([]str.Document, error) {
	const (
		Q = `SELECT docs FROM corpora WHERE key = ?`
	)
	var b []byte
	err := s.db.QueryRowContext(ctx, Q, key).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("LoadCorpus(): %w", err)
	}
	var docs []str.Document
	if err = ungzjson(b, &docs); err != nil {
		return nil, fmt.Errorf("LoadCorpus(): %w", err)
	}
	return docs, nil
}

// ListCorpora - the keys of the stored corpora
func (s *Store) ListCorpora(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM corpora ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var kk []string
	for rows.Next() {
		var k string
		if err = rows.Scan(&k); err != nil {
			return nil, err
		}
		kk = append(kk, k)
	}
	return kk, rows.Err()
}

//
// MODELS
//

// SaveModel - insert or replace the record with this id
func (s *Store) SaveModel(ctx context.Context, r ModelRecord) error {
	const (
		INS = `INSERT OR REPLACE INTO models (id, fingerprint, corpus, created, k, params, summary, prepared)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	)
	var prep []byte
	if len(r.Prepared) > 0 {
		var err error
		if prep, err = gzjson(r.Prepared); err != nil {
			return err
		}
	}
	if r.Created.IsZero() {
		r.Created = time.Now()
	}
	_, err := s.db.ExecContext(ctx, INS, r.ID, r.Fingerprint, r.Corpus, r.Created.UnixNano(), r.K,
		nonnull(r.Params), nonnull(r.Summary), prep)
	if err != nil {
		return fmt.Errorf("SaveModel(): %w", err)
	}
	return nil
}

func nonnull(b json.RawMessage) string {
	if len(b) == 0 {
		return "null"
	}
	return string(b)
}

const modelcols = `id, fingerprint, corpus, created, k, params, summary, prepared`

func scanmodel(sc interface{ Scan(...any) error }, withprep bool) (ModelRecord, error) {
	var (
		r       ModelRecord
		created int64
		params  string
		summary string
		prep    []byte
	)
	if err := sc.Scan(&r.ID, &r.Fingerprint, &r.Corpus, &created, &r.K, &params, &summary, &prep); err != nil {
		return r, err
	}
	r.Created = time.Unix(0, created)
	r.Params = json.RawMessage(params)
	r.Summary = json.RawMessage(summary)
	if withprep && len(prep) > 0 {
		var raw json.RawMessage
		if err := ungzjson(prep, &raw); err != nil {
			return r, err
		}
		r.Prepared = raw
	}
	return r, nil
}

// FetchModel - the record with this id, prepared visualisation data included
func (s *Store) FetchModel(ctx context.Context, id string) (ModelRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+modelcols+` FROM models WHERE id = ?`, id)
	r, err := scanmodel(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("%s: %w", id, ErrNoSuchModel)
	}
	return r, err
}

// FetchByFingerprint - the newest record with this fingerprint
func (s *Store) FetchByFingerprint(ctx context.Context, fp string) (ModelRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+modelcols+` FROM models WHERE fingerprint = ? ORDER BY created DESC LIMIT 1`, fp)
	r, err := scanmodel(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("%s: %w", fp, ErrNoSuchModel)
	}
	return r, err
}

// ListModels - every record, newest first; prepared data is not loaded
func (s *Store) ListModels(ctx context.Context) ([]ModelRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+modelcols+` FROM models ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rr []ModelRecord
	for rows.Next() {
		r, e := scanmodel(rows, false)
		if e != nil {
			return nil, e
		}
		rr = append(rr, r)
	}
	return rr, rows.Err()
}

// DeleteModel - ErrNoSuchModel if there was nothing to delete
func (s *Store) DeleteModel(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM models WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNoSuchModel)
	}
	return nil
}

//
// EMBEDDINGS
//

// SaveEmbeddings - store a set of embeddings under a fingerprint
func (s *Store) SaveEmbeddings(ctx context.Context, fp string, embs embedding.Embeddings) error {
	const (
		INS  = `INSERT OR REPLACE INTO embeddings (fingerprint, vectorsize, vectordata) VALUES (?, ?, ?)`
		MSG3 = "SaveEmbeddings() was sent empty embeddings"
	)

	if embs.Empty() {
		Msg.PEEK(MSG3)
		return nil
	}

	b, err := gzjson(embs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, INS, fp, len(b), b)
	return err
}

// FetchEmbeddings - ok is false if nothing was stored under fp
func (s *Store) FetchEmbeddings(ctx context.Context, fp string) (embedding.Embeddings, bool, error) {
	var b []byte
	err := s.db.QueryRowContext(ctx, `SELECT vectordata FROM embeddings WHERE fingerprint = ?`, fp).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var embs embedding.Embeddings
	if err = ungzjson(b, &embs); err != nil {
		return nil, false, err
	}
	return embs, true, nil
}
