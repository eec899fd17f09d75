//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corp

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"golang.org/x/exp/rand"
)

var (
	ErrEmptyCorpus    = errors.New("empty corpus")
	ErrUnknownDataset = errors.New("unknown dataset")
	ErrNoSuchDocument = errors.New("no such document")
)

// Corpus - a named collection of documents
type Corpus struct {
	Name       string
	Docs       []str.Document
	Categories []string
}

// Stats - what the front page and the first lesson report
type Stats struct {
	Name        string         `json:"name"`
	Docs        int            `json:"docs"`
	Chars       int            `json:"chars"`
	Categories  []string       `json:"categories"`
	PerCategory map[string]int `json:"percategory"`
}

// Cache - somewhere to stash a parsed corpus so that it need not be fetched and parsed again
type Cache interface {
	LoadCorpus(ctx context.Context, key string) ([]str.Document, error)
	SaveCorpus(ctx context.Context, key string, docs []str.Document) error
}

// New - build a Corpus; documents with no text are dropped
func New(name string, docs []str.Document) (*Corpus, error) {
	kept := make([]str.Document, 0, len(docs))
	for _, d := range docs {
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		kept = append(kept, d)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyCorpus)
	}

	var cc []string
	for _, d := range kept {
		cc = append(cc, d.Category)
	}
	cc = gen.Unique(cc)
	slices.Sort(cc)

	return &Corpus{Name: name, Docs: kept, Categories: cc}, nil
}

func (c *Corpus) Len() int {
	return len(c.Docs)
}

// Texts - the raw strings in document order
func (c *Corpus) Texts() []string {
	tt := make([]string, len(c.Docs))
	for i := range c.Docs {
		tt[i] = c.Docs[i].Text
	}
	return tt
}

// Labels - the category of each document in document order
func (c *Corpus) Labels() []string {
	ll := make([]string, len(c.Docs))
	for i := range c.Docs {
		ll[i] = c.Docs[i].Category
	}
	return ll
}

// ByCategory - category name --> its documents
func (c *Corpus) ByCategory() map[string][]str.Document {
	m := make(map[string][]str.Document, len(c.Categories))
	for _, d := range c.Docs {
		m[d.Category] = append(m[d.Category], d)
	}
	return m
}

// Filter - a new corpus containing only the named categories; no names means everything
func (c *Corpus) Filter(categories ...string) (*Corpus, error) {
	if len(categories) == 0 {
		return c, nil
	}
	want := gen.ToSet(categories)
	var dd []str.Document
	for _, d := range c.Docs {
		if _, ok := want[d.Category]; ok {
			dd = append(dd, d)
		}
	}
	return New(c.Name, dd)
}

// Sample - n documents chosen at random but reproducibly; document order is preserved
func (c *Corpus) Sample(n int, seed uint64) *Corpus {
	if n <= 0 || n >= len(c.Docs) {
		return c
	}
	r := rand.New(rand.NewSource(seed))
	pick := r.Perm(len(c.Docs))[:n]
	slices.Sort(pick)

	dd := make([]str.Document, n)
	for i, p := range pick {
		dd[i] = c.Docs[p]
	}
	s, _ := New(c.Name, dd)
	return s
}

// Stats - counts of documents and characters
func (c *Corpus) Stats() Stats {
	s := Stats{
		Name:        c.Name,
		Docs:        len(c.Docs),
		Categories:  c.Categories,
		PerCategory: make(map[string]int, len(c.Categories)),
	}
	for _, d := range c.Docs {
		s.Chars += len(d.Text)
		s.PerCategory[d.Category]++
	}
	return s
}

// Doc - document n or an error if there is no such document
func (c *Corpus) Doc(n int) (str.Document, error) {
	if n < 0 || n >= len(c.Docs) {
		return str.Document{}, fmt.Errorf("document %d of %d: %w", n, len(c.Docs), ErrNoSuchDocument)
	}
	return c.Docs[n], nil
}
