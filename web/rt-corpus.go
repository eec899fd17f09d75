//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"math"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/labstack/echo/v4"
)

// RtCorpus - counts of documents, characters and categories
func RtCorpus(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtCorpus()") })
	cp, err := Sess.Corpus(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return gen.JSONresponse(c, cp.Stats())
}

// RtCorpusDoc - a single document: "u: /corpus/doc/3"
func RtCorpusDoc(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtCorpusDoc()") })
	d, err := docparam(c)
	if err != nil {
		return fail(c, err)
	}
	return gen.JSONresponse(c, d)
}

// docparam - the document named by ":n"
func docparam(c echo.Context) (str.Document, error) {
	n, err := intparam(c.Param("n"), 0, 0, math.MaxInt32)
	if err != nil {
		return str.Document{}, err
	}
	cp, err := Sess.Corpus(c.Request().Context())
	if err != nil {
		return str.Document{}, err
	}
	return cp.Doc(n)
}
