//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"regexp"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/wkshp"
	"github.com/labstack/echo/v4"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

type JSLesson struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Blurb string `json:"blurb"`
}

// RtLessonList - the lessons in order
func RtLessonList(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtLessonList()") })
	var ll []JSLesson
	for _, l := range wkshp.Lessons() {
		ll = append(ll, JSLesson{Name: l.Name, Title: l.Title, Blurb: l.Blurb})
	}
	return gen.JSONresponse(c, ll)
}

// RtLessonRun - run one lesson against the server's session and send back what it printed: "u: /lessons/ngrams"
func RtLessonRun(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtLessonRun()") })
	l, err := wkshp.FindLesson(idparam(c))
	if err != nil {
		return fail(c, err)
	}

	start := time.Now()
	var buf bytes.Buffer
	if err = wkshp.Run(c.Request().Context(), Sess, &buf, l.Name); err != nil {
		return fail(c, err)
	}

	js := str.LessonOutputJSON{
		Lesson:  l.Name,
		Title:   l.Title,
		Blurb:   l.Blurb,
		Output:  ansi.ReplaceAllString(buf.String(), ""),
		Elapsed: time.Since(start).Seconds(),
	}
	return gen.JSONresponse(c, js)
}
