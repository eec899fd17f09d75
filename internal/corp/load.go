//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/e-gun/CorpusWorkshop/internal/str"
)

// Sources - the things a dataset may need in order to load; any of them may be nil
type Sources struct {
	Cache    Cache
	PG       Querier
	Client   *http.Client
	Progress io.Writer
}

// Load - "sample", "newsgroups", "dir:/some/path", "url:http://a,http://b" or "pg"
func Load(ctx context.Context, cfg *str.CurrentConfiguration, src Sources) (*Corpus, error) {
	ds := strings.TrimSpace(cfg.Dataset)

	var (
		c   *Corpus
		err error
	)

	switch {
	case ds == "" || ds == SAMPLENAME:
		c, err = Embedded()
	case ds == NEWSGROUPSNAME:
		c, err = cachednewsgroups(ctx, cfg, src)
	case strings.HasPrefix(ds, "dir:"):
		c, err = LoadDir(strings.TrimPrefix(ds, "dir:"))
	case strings.HasPrefix(ds, "url:"):
		var uu []string
		for _, u := range strings.Split(strings.TrimPrefix(ds, "url:"), ",") {
			if u = strings.TrimSpace(u); u != "" {
				uu = append(uu, u)
			}
		}
		c, err = NewFetcher(src.Client, 0).FetchAll(ctx, uu)
	case ds == "pg":
		if src.PG == nil {
			return nil, fmt.Errorf("pg: no connection pool: %w", ErrUnknownDataset)
		}
		c, err = LoadPostgres(ctx, src.PG, cfg.PGQuery)
	default:
		return nil, fmt.Errorf("'%s': %w", ds, ErrUnknownDataset)
	}

	if err != nil {
		return nil, err
	}

	// newsgroups filters while parsing
	if ds != NEWSGROUPSNAME {
		return c.Filter(cfg.Categories...)
	}
	return c, nil
}

func cachednewsgroups(ctx context.Context, cfg *str.CurrentConfiguration, src Sources) (*Corpus, error) {
	o := NewsgroupsOptions{
		URL:        cfg.NewsgroupsURL,
		DataDir:    cfg.DataDir,
		Subset:     cfg.Subset,
		Categories: cfg.Categories,
		Client:     src.Client,
		Progress:   src.Progress,
	}
	key := NewsgroupsCacheKey(o)

	if src.Cache != nil {
		// a miss is (nil, nil)
		docs, err := src.Cache.LoadCorpus(ctx, key)
		if err != nil {
			return nil, err
		}
		if len(docs) > 0 {
			return New(NEWSGROUPSNAME, docs)
		}
	}

	c, err := Newsgroups(ctx, o)
	if err != nil {
		return nil, err
	}

	if src.Cache != nil {
		if err = src.Cache.SaveCorpus(ctx, key, c.Docs); err != nil {
			return nil, err
		}
	}
	return c, nil
}
