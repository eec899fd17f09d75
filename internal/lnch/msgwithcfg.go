//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/CorpusWorkshop/internal/mm"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
)

func NewMessageMakerConfigured() *mm.MessageMaker {
	m := NewMessageMakerWithDefaults()
	UpdateMessageMakerWithConfig(m)
	return m
}

func NewMessageMakerWithDefaults() *mm.MessageMaker {
	m := mm.NewMessageMaker()
	m.LLvl = vv.DEFAULTGOLOGLEVEL
	m.LNm = vv.MYNAME
	m.SNm = vv.SHORTNAME
	m.Ver = vv.VERSION
	return m
}

func UpdateMessageMakerWithConfig(m *mm.MessageMaker) {
	m.BW = Config.BlackAndWhite
	m.GC = Config.ManualGC
	m.LLvl = Config.LogLevel
	m.Tick = Config.TickerActive
}
