//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/e-gun/CorpusWorkshop/internal/db"
	"github.com/e-gun/CorpusWorkshop/internal/lnch"
	"github.com/e-gun/CorpusWorkshop/internal/mm"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vlt"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/e-gun/CorpusWorkshop/internal/wkshp"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	Msg = lnch.NewMessageMakerWithDefaults()

	// set by BuildEcho()
	Sess  *wkshp.Session
	Store *db.Store

	pathhub sync.Once
)

// StartEchoServer - start serving; this blocks and does not return while the program remains alive
func StartEchoServer(s *wkshp.Session, store *db.Store) {
	e := BuildEcho(s, store)
	e.Server.ReadTimeout = vv.TIMEOUTRD
	e.Server.WriteTimeout = vv.TIMEOUTWR
	e.Logger.Fatal(e.Start(fmt.Sprintf("%s:%d", s.Cfg.HostIP, s.Cfg.HostPort)))
}

// BuildEcho - the middleware and the routes; store may be nil
func BuildEcho(s *wkshp.Session, store *db.Store) *echo.Echo {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "${remote_ip}\t${custom}\t${status}\t${bytes_out}\t${uri}\n"
	)

	Sess = s
	Store = store
	vlt.StartHubs()
	pathhub.Do(func() { go mm.PathInfoHub() })

	// ctf - a CustomTagFunc return a short user agent
	ctf := func(c echo.Context, buf *bytes.Buffer) (int, error) {
		ua := strings.Split(c.Request().UserAgent(), " ")
		if len(ua) == 0 {
			return 0, nil
		} else {
			last := ua[len(ua)-1]
			buf.Write([]byte(last))
			return 1, nil
		}
	}

	//
	// SETUP
	//

	e := echo.New()

	switch s.Cfg.EchoLog {
	case 3:
		e.Use(middleware.Logger())
	case 2:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT, CustomTagFunc: ctf}))
	case 1:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	default:
		// do nothing
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSECONDPERIP)))

	e.Use(middleware.Recover())

	if s.Cfg.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	//
	// WORKSHOP ROUTES
	//

	//
	// [a] frontpage and css ("rt-frontpage.go")
	//

	e.GET("/", RtFrontpage)
	e.GET("/emb/css/cws.css", RtEmbCSS)

	//
	// [b] corpus ("rt-corpus.go")
	//

	e.GET("/corpus", RtCorpus)
	e.GET("/corpus/doc/:n", RtCorpusDoc) // "u: /corpus/doc/3"

	//
	// [c] linguistics ("rt-ling.go")
	//

	e.GET("/ling/tokens/:n", RtLingTokens)            // "u: /ling/tokens/0"
	e.GET("/ling/freq", RtLingFreq)                   // "u: /ling/freq?n=25&stops=yes"
	e.GET("/ling/pos/:n", RtLingPOS)                  // "u: /ling/pos/0?sents=3"
	e.GET("/ling/lemma/:n", RtLingLemma)              // "u: /ling/lemma/0"
	e.GET("/ling/ngrams", RtLingNgrams)               // "u: /ling/ngrams?measure=pmi&n=20&min=2"
	e.GET("/ling/concord/:word", RtLingConcord)       // "u: /ling/concord/space?width=79&lines=25"
	e.GET("/ling/similar/:word", RtLingSimilar)       // "u: /ling/similar/space"
	e.GET("/ling/dispersion", RtLingDispersion)       // "u: /ling/dispersion?w=space,orbit"
	e.GET("/ling/neighbours/:word", RtLingNeighbours) // "u: /ling/neighbours/space?n=12"

	//
	// [d] topics ("rt-topics.go")
	//

	e.GET("/topics", RtTopicsList)
	e.POST("/topics/fit", RtTopicsFit) // "u: /topics/fit?k=5&iter=100&weighting=count"
	e.GET("/topics/:id", RtTopicsSummary)
	e.DELETE("/topics/:id", RtTopicsDelete)
	e.GET("/topics/:id/vis", RtTopicsVis) // "u: /topics/4c8d.../vis?lambda=0.6"
	e.GET("/topics/:id/vis.json", RtTopicsVisJSON)
	e.GET("/topics/:id/relevance/:topic", RtTopicsRelevance) // "u: /topics/4c8d.../relevance/2?lambda=0.3"
	e.GET("/topics/:id/map", RtTopicsMap)

	//
	// [e] lessons ("rt-lessons.go")
	//

	e.GET("/lessons", RtLessonList)
	e.GET("/lessons/:id", RtLessonRun) // "u: /lessons/ngrams"

	//
	// [f] websocket ("rt-websocket.go")
	//

	e.GET("/ws/:id", RtWebsocket)

	e.HideBanner = true
	e.HidePort = false
	e.Debug = false
	e.DisableHTTP2 = true
	return e
}

// cfg - the session's configuration
func cfg() *str.CurrentConfiguration {
	return &Sess.Cfg
}
