//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/e-gun/CorpusWorkshop/internal/lnch"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/jackc/pgx/v5/pgxpool"
)

var Msg = lnch.NewMessageMakerWithDefaults()

// PoolURL - the pgxpool connection string for a configuration
func PoolURL(cfg str.CurrentConfiguration) string {
	const (
		UTPL = "postgres://%s:%s@%s:%d/%s?pool_min_conns=%d&pool_max_conns=%d"
	)

	// min < WorkerCount would leave workers fighting over one connection
	mn := max(1, cfg.WorkerCount)
	mx := vv.SIMULTANEOUSQUERIES * mn

	pl := cfg.PGLogin
	return fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName, mn, mx)
}

// FillDBConnectionPool - build the pgxpool that a "pg" dataset will read from
func FillDBConnectionPool(ctx context.Context, cfg str.CurrentConfiguration) (*pgxpool.Pool, error) {
	const (
		FAIL1   = "Configuration error. Could not execute ParseConfig(url) via '%s'"
		FAIL2   = "Could not connect to PostgreSQL"
		ERRRUN  = `dial error`
		FAILRUN = `'%s': the PostgreSQL server cannot be found; check that it is running and serving on port %d`
		ERRSRV  = `server error`
		FAILSRV = `'%s': there is configuration problem; see the following response from PostgreSQL:`
	)

	url := PoolURL(cfg)

	config, e := pgxpool.ParseConfig(url)
	if e != nil {
		Msg.MAND(fmt.Sprintf(FAIL1, strings.Replace(url, ":"+cfg.PGLogin.Pass+"@", ":********@", 1)))
		return nil, e
	}

	thepool, e := pgxpool.NewWithConfig(ctx, config)
	if e == nil {
		e = thepool.Ping(ctx)
	}
	if e != nil {
		Msg.MAND(FAIL2)
		if strings.Contains(e.Error(), ERRRUN) {
			Msg.MAND(fmt.Sprintf(FAILRUN, ERRRUN, cfg.PGLogin.Port))
		}
		if strings.Contains(e.Error(), ERRSRV) {
			Msg.MAND(fmt.Sprintf(FAILSRV, ERRSRV))
			parts := strings.Split(e.Error(), ERRSRV)
			Msg.CRIT(parts[1])
		}
		if thepool != nil {
			thepool.Close()
		}
		return nil, errors.Join(errors.New(FAIL2), e)
	}
	return thepool, nil
}
