//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/corp"
	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/lnch"
	"github.com/e-gun/CorpusWorkshop/internal/mm"
	"github.com/e-gun/CorpusWorkshop/internal/vlt"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/e-gun/CorpusWorkshop/internal/wkshp"
	"github.com/labstack/echo/v4"
)

//go:embed emb
var efs embed.FS

var launched = time.Now()

//
// ROUTING
//

// RtFrontpage - send the html for "/"
func RtFrontpage(c echo.Context) error {
	const (
		UPSTR    = "[%v] CWS uptime: %v [%s]"
		PADDING  = " ----------------- "
		STATTMPL = "%s: %d"
		SPACER   = "    "
	)
	c.Response().After(func() { Msg.LogPaths("RtFrontpage()") })

	gc := lnch.GitCommit
	if gc == "" {
		gc = "UNKNOWN"
	}
	ver := fmt.Sprintf("Version: %s [git: %s]", vv.VERSION+lnch.VersSuppl, gc)

	env := fmt.Sprintf("%s: %s - %s (%d workers)", runtime.Version(), runtime.GOOS, runtime.GOARCH, cfg().WorkerCount)

	// t() will give the uptime
	var mem runtime.MemStats

	t := func(up time.Duration) string {
		runtime.ReadMemStats(&mem)
		heap := fmt.Sprintf("%dM", mem.HeapAlloc/1024/1024)
		tick := fmt.Sprintf(UPSTR, time.Now().Format(time.TimeOnly), up.Truncate(time.Minute), heap)
		return PADDING + tick + PADDING
	}

	// svd() will report what requests have been made
	svd := func() string {
		ctr := mm.PathCounts()
		keys := gen.SortedKeys(ctr)

		var pairs []string
		for _, k := range keys {
			this := strings.TrimPrefix(k, "Rt")
			this = strings.TrimSuffix(this, "()")
			pairs = append(pairs, fmt.Sprintf(SPACER+STATTMPL, this, ctr[k]))
		}
		return strings.Join(pairs, "\n")
	}

	var (
		stats corp.Stats
		cerr  string
	)
	if cp, err := Sess.Corpus(c.Request().Context()); err != nil {
		cerr = err.Error()
	} else {
		stats = cp.Stats()
	}

	models := vlt.AllModels.IDs()
	if Store != nil {
		if rr, err := Store.ListModels(c.Request().Context()); err == nil {
			for _, r := range rr {
				if !slices.Contains(models, r.ID) {
					models = append(models, r.ID)
				}
			}
		}
	}

	subs := map[string]interface{}{
		"name":      vv.MYNAME,
		"longver":   ver,
		"env":       env,
		"stats":     stats,
		"corpuserr": cerr,
		"lessons":   wkshp.Lessons(),
		"models":    models,
		"k":         Sess.LDAOptions().Topics,
		"iter":      Sess.LDAOptions().Iterations,
		"maxk":      vv.LDAMAXTOPICS,
		"ticker":    t(time.Since(launched)) + "\n\n" + svd(),
	}

	f, e := efs.ReadFile("emb/frontpage.html")
	Msg.EC(e)

	tmpl, e := template.New("fp").Parse(string(f))
	Msg.EC(e)

	var b bytes.Buffer
	err := tmpl.Execute(&b, subs)
	Msg.EC(err)

	return c.HTML(http.StatusOK, b.String())
}

// RtEmbCSS - send "cws.css"
func RtEmbCSS(c echo.Context) error {
	const (
		ECSS = "emb/cws.css"
	)
	j, e := efs.ReadFile(ECSS)
	if e != nil {
		Msg.WARN(fmt.Sprintf("RtEmbCSS() can't find %s", ECSS))
		return c.String(http.StatusNotFound, "")
	}
	return c.Blob(http.StatusOK, "text/css", j)
}
