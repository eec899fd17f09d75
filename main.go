//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/corp"
	"github.com/e-gun/CorpusWorkshop/internal/db"
	"github.com/e-gun/CorpusWorkshop/internal/lnch"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/e-gun/CorpusWorkshop/internal/wkshp"
	"github.com/e-gun/CorpusWorkshop/web"
	"github.com/pkg/profile"
)

func main() {
	const (
		MSG1  = "%d lessons run"
		FAIL1 = "could not open the store at '%s'; models and datasets will not be cached: %s"
		FAIL2 = "no PostgreSQL pool: %s"
		TICK  = 60 * time.Second
	)

	// go tool pprof --pdf ./CorpusWorkshop /var/folders/d8/_gb2lcbn0klg22g_cbwcxgmh0000gn/T/profile1880749830/cpu.pprof > profile.pdf

	lnch.ConfigAtLaunch()
	cfg := lnch.Config
	msg := lnch.Msg

	if cfg.ProfileCPU {
		defer profile.Start().Stop()
	} else if cfg.ProfileMEM {
		defer profile.Start(profile.MemProfile).Stop()
	}

	if !cfg.QuietStart {
		lnch.PrintVersion(*cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	previous := time.Now()

	var store *db.Store
	if cfg.StoreFile != "" {
		s, err := db.Open(cfg.StoreFile)
		if err != nil {
			msg.WARN(fmt.Sprintf(FAIL1, cfg.StoreFile, err.Error()))
		} else {
			store = s
			defer store.Close()
		}
	}

	src := corp.Sources{
		Client:   &http.Client{Timeout: vv.FETCHTIMEOUT},
		Progress: os.Stderr,
	}

	if cfg.Dataset == "pg" {
		pool, err := db.FillDBConnectionPool(ctx, *cfg)
		if err != nil {
			msg.CRIT(fmt.Sprintf(FAIL2, err.Error()))
			msg.ExitOrHang(1)
		}
		defer pool.Close()
		src.PG = pool
	}

	sess := wkshp.NewSession(*cfg, src, store)

	if cfg.Serve {
		// load the corpus before the first request has to wait for it
		if c, err := sess.Corpus(ctx); err != nil {
			msg.CRIT(err.Error())
		} else {
			msg.Timer("A1", fmt.Sprintf("%s: %d documents loaded", c.Name, c.Len()), start, previous)
		}
		if cfg.TickerActive {
			go msg.Ticker(TICK)
		}
		web.StartEchoServer(sess, store)
		return
	}

	if err := wkshp.RunSelected(ctx, sess, os.Stdout); err != nil {
		msg.CRIT(err.Error())
		msg.ExitOrHang(1)
	}
	n := len(cfg.Lessons)
	if n == 0 {
		n = len(wkshp.Lessons())
	}
	msg.Timer("Z", fmt.Sprintf(MSG1, n), start, previous)
}
