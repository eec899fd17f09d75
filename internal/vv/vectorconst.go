//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	CONCORDWIDTH       = 79
	CONCORDLINES       = 25
	CONCORDKEYWORD     = "space"
	COLLOCATIONS       = 20
	COLLOCMINFREQ      = 2
	FREQTOPN           = 50
	NGRAMMEASURE       = "pmi"
	LDATOPICS          = 10
	LDAMAXTOPICS       = 50
	LDAITER            = 100
	LDAXFORMPASSES     = 50
	LDATOPWORDS        = 10
	LDASEED            = 0
	LDASENTPERBAG      = 0 // 0 means "model whole documents"
	VECMINDF           = 2
	VECMAXDF           = 0.95
	VECMAXFEATURES     = 1000
	VECWEIGHTING       = "count"
	VISLAMBDA          = 0.6
	VISLAMBDASTEP      = 0.01
	VISRELEVANTTERMS   = 30
	DEFAULTCHRTWIDTH   = "1200px"
	DEFAULTCHRTHEIGHT  = "800px"
	TSNEPERPLEX        = 30
	TSNELEARNRT        = 100
	TSNEMAXITER        = 300
	VECTORNEIGHBORS    = 12
	VECTORNEIGHBORSMAX = 40
	VECTORNEIGHBORSMIN = 4
	VECTORREPORTPAUSE  = 20 * time.Millisecond
)
