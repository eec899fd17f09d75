//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/e-gun/CorpusWorkshop/internal/corp"
	"github.com/e-gun/CorpusWorkshop/internal/db"
	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/lda"
	"github.com/e-gun/CorpusWorkshop/internal/ling"
	"github.com/e-gun/CorpusWorkshop/internal/vec"
	"github.com/e-gun/CorpusWorkshop/internal/vis"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/e-gun/CorpusWorkshop/internal/wkshp"
	"github.com/labstack/echo/v4"
)

var ErrBadParam = errors.New("bad parameter")

// intparam - "" yields def; anything unparseable or outside [lo, hi] is ErrBadParam
func intparam(val string, def int, lo int, hi int) (int, error) {
	if val == "" {
		return def, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || i < lo || i > hi {
		return 0, fmt.Errorf("'%s' is not an integer in [%d, %d]: %w", val, lo, hi, ErrBadParam)
	}
	return i, nil
}

func floatparam(val string, def float64, lo float64, hi float64) (float64, error) {
	if val == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil || f < lo || f > hi {
		return 0, fmt.Errorf("'%s' is not a number in [%g, %g]: %w", val, lo, hi, ErrBadParam)
	}
	return f, nil
}

func boolparam(val string) bool {
	switch strings.ToLower(val) {
	case "yes", "y", "true", "1", "on":
		return true
	default:
		return false
	}
}

// wordparam - a single lower-case word with the unacceptable characters stripped
func wordparam(val string) (string, error) {
	w := strings.ToLower(gen.SafeInput(val, cfg().BadChars, vv.MAXINPUTLEN))
	w = strings.TrimSpace(w)
	if w == "" || strings.ContainsAny(w, " \t") {
		return "", fmt.Errorf("'%s' is not a word: %w", val, ErrBadParam)
	}
	return w, nil
}

// fail - map an error onto a status: bad input is 400, missing things are 404, everything else 500
func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrBadParam), errors.Is(err, vis.ErrBadLambda), errors.Is(err, lda.ErrBadTopics),
		errors.Is(err, ling.ErrUnknownMeasure), errors.Is(err, vec.ErrVocabularyEmpty), errors.Is(err, vis.ErrTooFewDocs):
		status = http.StatusBadRequest
	case errors.Is(err, corp.ErrNoSuchDocument), errors.Is(err, lda.ErrNoSuchTopic), errors.Is(err, lda.ErrNoSuchDoc),
		errors.Is(err, db.ErrNoSuchModel), errors.Is(err, ErrModelNotLoaded), errors.Is(err, wkshp.ErrUnknownLesson):
		status = http.StatusNotFound
	default:
		Msg.WARN(err.Error())
	}
	return gen.JSONerror(c, status, err)
}
