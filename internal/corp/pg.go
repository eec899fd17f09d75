//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corp

import (
	"context"
	"fmt"

	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/jackc/pgx/v5"
)

// Querier - satisfied by *pgxpool.Pool and *pgx.Conn
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadPostgres - the query must yield (id, category, body); id can be of any type
func LoadPostgres(ctx context.Context, q Querier, query string) (*Corpus, error) {
	rr, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("LoadPostgres(): %w", err)
	}

	docs, err := pgx.CollectRows(rr, func(row pgx.CollectableRow) (str.Document, error) {
		var (
			id   any
			cat  *string
			body *string
		)
		if e := row.Scan(&id, &cat, &body); e != nil {
			return str.Document{}, e
		}
		d := str.Document{ID: fmt.Sprint(id), Source: "pg"}
		if cat != nil {
			d.Category = *cat
		}
		if body != nil {
			d.Text = *body
			d.Title = firstsentence(d.Text)
		}
		return d, nil
	})
	if err != nil {
		return nil, fmt.Errorf("LoadPostgres(): %w", err)
	}
	return New("pg", docs)
}
