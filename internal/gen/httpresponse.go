//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"net/http"

	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/labstack/echo/v4"
)

// JSONresponse - send the JSON; jsr should be a json-ready struct
func JSONresponse(c echo.Context, jsr any) error {
	// JSONPretty is prominent on the profiler; only vis.json and friends are worth indenting
	return c.JSON(http.StatusOK, jsr)
}

// JSONerror - send {"error": "..."} with the given status
func JSONerror(c echo.Context, status int, err error) error {
	return c.JSON(status, str.ErrorJSON{Error: err.Error()})
}
