//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/db"
	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/lda"
	"github.com/e-gun/CorpusWorkshop/internal/vec"
	"github.com/e-gun/CorpusWorkshop/internal/vis"
	"github.com/e-gun/CorpusWorkshop/internal/vlt"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/e-gun/CorpusWorkshop/internal/wkshp"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var ErrModelNotLoaded = errors.New("model is not loaded")

const (
	FITSTEPS = 4
	MAXITER  = 5000
)

type JSFitted struct {
	ID string `json:"id"`
	WS string `json:"ws"`
}

type JSJob struct {
	ID       string `json:"id"`
	Stage    string `json:"stage"`
	Done     int    `json:"done"`
	Total    int    `json:"total"`
	Finished bool   `json:"finished"`
}

type JSModelList struct {
	Loaded []string         `json:"loaded"`
	Stored []db.ModelRecord `json:"stored"`
}

type JSRelevance struct {
	Topic  int            `json:"topic"`
	Lambda float64        `json:"lambda"`
	Terms  []vis.TermInfo `json:"terms"`
}

// RtTopicsFit - start fitting a model in the background and return its id at once: "u: /topics/fit?k=5&iter=100"
func RtTopicsFit(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtTopicsFit()") })

	lo := Sess.LDAOptions()
	vo := Sess.VecOptions()

	k, err := intparam(c.FormValue("k"), lo.Topics, 1, vv.LDAMAXTOPICS)
	if err != nil {
		return fail(c, err)
	}
	it, err := intparam(c.FormValue("iter"), lo.Iterations, 1, MAXITER)
	if err != nil {
		return fail(c, err)
	}
	if wt := c.FormValue("weighting"); wt != "" {
		if wt != vec.WTCOUNT && wt != vec.WTTFIDF {
			return fail(c, fmt.Errorf("weighting '%s': %w", wt, ErrBadParam))
		}
		vo.Weighting = wt
	}
	lo.Topics = k
	lo.Iterations = it

	id := uuid.New().String()
	ctx, cancel := context.WithCancel(context.Background())
	vlt.InsertJob(vlt.JobInfo{
		ID:        id,
		Stage:     "queued",
		Total:     FITSTEPS,
		Launched:  time.Now(),
		CancelFnc: cancel,
	})

	go fitjob(ctx, cancel, id, vo, lo)

	return c.JSON(http.StatusAccepted, JSFitted{ID: id, WS: "/ws/" + id})
}

// fitjob - vectorise, fit and prepare; progress goes to the JobInfoHub; the model ends up in AllModels under id
func fitjob(ctx context.Context, cancel context.CancelFunc, id string, vo vec.Options, lo lda.Options) {
	const (
		MSG1 = "fitjob() %s: %d topics in %.1fs"
	)
	defer cancel()
	start := time.Now()

	failed := func(err error) {
		vlt.WSInfo.Fail <- vlt.JIKVs{Key: id, Val: err.Error()}
	}

	vlt.SetStage(id, "loading the corpus", 0)
	bags, err := Sess.Bags(ctx)
	if err != nil {
		failed(err)
		return
	}

	vlt.SetStage(id, "vectorising", 1)
	dtm, err := vec.Vectorise(vec.BagTexts(bags), vo)
	if err != nil {
		failed(err)
		return
	}
	if ctx.Err() != nil {
		failed(ctx.Err())
		return
	}

	vlt.SetStage(id, fmt.Sprintf("fitting %d topics", lo.Topics), 2)
	m, err := lda.Fit(dtm, lo)
	if err != nil {
		failed(err)
		return
	}
	m.ID = id
	if ctx.Err() != nil {
		failed(ctx.Err())
		return
	}

	vlt.SetStage(id, "preparing the topic browser", 3)
	p, err := vis.Prepare(m, cfg().VisTerms, cfg().VisLambda, vv.VISLAMBDASTEP)
	if err != nil {
		failed(err)
		return
	}

	labels := make([]string, len(bags))
	for i, b := range bags {
		labels[i] = b.Loc
	}
	// store first: a model that is visible in AllModels should already be in the store
	if Store != nil {
		if err = storemodel(ctx, m, dtm, p, vo); err != nil {
			Msg.WARN(fmt.Sprintf("fitjob() could not store %s: %s", id, err.Error()))
		}
	}
	vlt.AllModels.InsertModel(vlt.FittedModel{ID: id, Model: m, DTM: dtm, Prepared: p, Labels: labels, Bags: bags})

	Msg.PEEK(fmt.Sprintf(MSG1, id, m.K, time.Since(start).Seconds()))
	vlt.WSInfo.Finish <- vlt.JIKVs{Key: id, Val: id}
}

func storemodel(ctx context.Context, m *lda.Model, dtm *vec.DTM, p *vis.Prepared, vo vec.Options) error {
	pj, err := p.JSON()
	if err != nil {
		return err
	}
	vo.Stops = nil
	c := cfg()
	fp := db.Fingerprint(c.Dataset, c.Subset, c.Categories, c.LdaSentPerBag, vo, m.Options)
	r, err := wkshp.Record(fp, c.Dataset, m, m.Summarise(vv.LDATOPWORDS, dtm), pj)
	if err != nil {
		return err
	}
	return Store.SaveModel(ctx, r)
}

// RtTopicsList - the ids of the loaded models and the records in the store
func RtTopicsList(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtTopicsList()") })
	js := JSModelList{Loaded: vlt.AllModels.IDs(), Stored: []db.ModelRecord{}}
	if Store != nil {
		rr, err := Store.ListModels(c.Request().Context())
		if err != nil {
			return fail(c, err)
		}
		if rr != nil {
			js.Stored = rr
		}
	}
	return gen.JSONresponse(c, js)
}

// RtTopicsSummary - a model's summary; 202 and the job state while it is still being fitted
func RtTopicsSummary(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtTopicsSummary()") })
	id := idparam(c)

	if fm, ok := vlt.AllModels.GetModel(id); ok && fm.Model != nil {
		return gen.JSONresponse(c, fm.Model.Summarise(vv.LDATOPWORDS, fm.DTM))
	}

	if ji := vlt.FetchJobInfo(id); ji.Exists {
		if ji.Err != "" {
			return gen.JSONerror(c, http.StatusInternalServerError, errors.New(ji.Err))
		}
		if !ji.Finished {
			return c.JSON(http.StatusAccepted, JSJob{ID: id, Stage: ji.Stage, Done: ji.Done, Total: ji.Total})
		}
	}

	if Store == nil {
		return fail(c, fmt.Errorf("%s: %w", id, db.ErrNoSuchModel))
	}
	r, err := Store.FetchModel(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	var sum lda.Summary
	if err = json.Unmarshal(r.Summary, &sum); err != nil {
		return fail(c, err)
	}
	return gen.JSONresponse(c, sum)
}

// RtTopicsDelete - forget a model: in memory, in the store, and any job still running for it
func RtTopicsDelete(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtTopicsDelete()") })
	id := idparam(c)

	found := vlt.AllModels.IsInVault(id)
	vlt.AllModels.Delete(id)
	if ji := vlt.FetchJobInfo(id); ji.Exists {
		found = true
		vlt.WSInfo.Cancel <- id
		vlt.WSInfo.Del <- id
	}
	if Store != nil {
		err := Store.DeleteModel(c.Request().Context(), id)
		if err == nil {
			found = true
		} else if !errors.Is(err, db.ErrNoSuchModel) {
			return fail(c, err)
		}
	}
	if !found {
		return fail(c, fmt.Errorf("%s: %w", id, db.ErrNoSuchModel))
	}
	return c.NoContent(http.StatusNoContent)
}

// RtTopicsVis - the topic browser: intertopic map plus term bars for every topic at lambda
func RtTopicsVis(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtTopicsVis()") })
	p, err := prepared(c)
	if err != nil {
		return fail(c, err)
	}
	lambda, err := floatparam(c.QueryParam("lambda"), p.Lambda, 0, 1)
	if err != nil {
		return fail(c, err)
	}

	cc := []components.Charter{vis.IntertopicMap(p), vis.TermBars(p, 0, p.DefaultTerms)}
	for t := 1; t <= p.K; t++ {
		ti, err := p.Relevant(t, lambda, p.R)
		if err != nil {
			return fail(c, err)
		}
		cc = append(cc, vis.TermBars(p, t, ti))
	}
	return standalone(c, fmt.Sprintf("Topics: %s (lambda = %.2f)", p.ModelID, lambda), cc...)
}

// RtTopicsVisJSON - the browser data as JSON
func RtTopicsVisJSON(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtTopicsVisJSON()") })
	p, err := prepared(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSONPretty(http.StatusOK, p, vv.JSONINDENT)
}

// RtTopicsRelevance - the most relevant terms of a topic (1..K): "u: /topics/4c8d.../relevance/2?lambda=0.3"
func RtTopicsRelevance(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtTopicsRelevance()") })
	p, err := prepared(c)
	if err != nil {
		return fail(c, err)
	}
	t, err := intparam(c.Param("topic"), 1, 1, vv.LDAMAXTOPICS)
	if err != nil {
		return fail(c, err)
	}
	lambda, err := floatparam(c.QueryParam("lambda"), p.Lambda, 0, 1)
	if err != nil {
		return fail(c, err)
	}
	r, err := intparam(c.QueryParam("n"), p.R, 1, MAXSHOWN)
	if err != nil {
		return fail(c, err)
	}
	ti, err := p.Relevant(t, lambda, r)
	if err != nil {
		return fail(c, err)
	}
	return gen.JSONresponse(c, JSRelevance{Topic: t, Lambda: lambda, Terms: ti})
}

// RtTopicsMap - t-SNE map of the documents coloured by dominant topic; needs the model in memory
func RtTopicsMap(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtTopicsMap()") })
	id := idparam(c)
	fm, ok := vlt.AllModels.GetModel(id)
	if !ok || fm.Model == nil {
		if _, err := prepared(c); err != nil {
			return fail(c, err)
		}
		return fail(c, fmt.Errorf("%s: %w", id, ErrModelNotLoaded))
	}
	pts, err := vis.DocMap(fm.Model, fm.Labels, vis.DocMapOptions{})
	if err != nil {
		return fail(c, err)
	}
	return standalone(c, "Document map: "+id, vis.DocMapChart(pts, fm.Model.K))
}

func idparam(c echo.Context) string {
	return gen.SafeInput(c.Param("id"), cfg().BadChars, vv.MAXINPUTLEN)
}

// prepared - the browser data for ":id" from memory or else from the store
func prepared(c echo.Context) (*vis.Prepared, error) {
	id := idparam(c)
	if fm, ok := vlt.AllModels.GetModel(id); ok && fm.Prepared != nil {
		return fm.Prepared, nil
	}
	if ji := vlt.FetchJobInfo(id); ji.Exists && !ji.Finished {
		return nil, fmt.Errorf("%s is still being fitted: %w", id, ErrModelNotLoaded)
	}
	if Store == nil {
		return nil, fmt.Errorf("%s: %w", id, db.ErrNoSuchModel)
	}
	r, err := Store.FetchModel(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if len(r.Prepared) == 0 {
		return nil, fmt.Errorf("%s has no browser data: %w", id, ErrModelNotLoaded)
	}
	p, err := vis.LoadPrepared(r.Prepared)
	if err != nil {
		return nil, err
	}
	vlt.AllModels.InsertModel(vlt.FittedModel{ID: id, Prepared: p})
	return p, nil
}

// standalone - a full html page of charts
func standalone(c echo.Context, title string, cc ...components.Charter) error {
	var sb strings.Builder
	if err := vis.Standalone(&sb, title, cc...); err != nil {
		return fail(c, err)
	}
	return c.HTML(http.StatusOK, sb.String())
}
