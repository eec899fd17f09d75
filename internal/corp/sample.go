//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corp

import (
	"embed"
	"io/fs"
	"path"
	"strings"

	"github.com/e-gun/CorpusWorkshop/internal/str"
)

//go:embed sample
var samplefs embed.FS

const SAMPLENAME = "sample"

// Embedded - the small built-in corpus: a handful of newsgroup-style posts in four categories
func Embedded() (*Corpus, error) {
	var docs []str.Document
	err := fs.WalkDir(samplefs, SAMPLENAME, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".txt") {
			return err
		}
		b, err := samplefs.ReadFile(p)
		if err != nil {
			return err
		}
		cat := path.Base(path.Dir(p))
		id := strings.TrimSuffix(path.Base(p), ".txt")
		docs = append(docs, str.Document{
			ID:       id,
			Category: cat,
			Title:    firstsentence(string(b)),
			Source:   "embedded:" + p,
			Text:     strings.TrimSpace(string(b)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return New(SAMPLENAME, docs)
}

func firstsentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".?!"); i > 0 {
		return s[:i+1]
	}
	return s
}
