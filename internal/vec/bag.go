//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"strings"

	"github.com/e-gun/CorpusWorkshop/internal/ling"
	"github.com/e-gun/CorpusWorkshop/internal/str"
)

// BagWithLocus - a run of sentences and the document (and first sentence) it came from
type BagWithLocus struct {
	Loc      string  `json:"loc"`
	Category string  `json:"category"`
	Bag      string  `json:"bag"`
	LDAScore float64 `json:"score"`
}

// Bag - split each document into bags of sentsperbag sentences; sentsperbag < 1 means one bag per document
func Bag(docs []str.Document, sentsperbag int) []BagWithLocus {
	var thebags []BagWithLocus
	for _, d := range docs {
		if sentsperbag < 1 {
			thebags = append(thebags, BagWithLocus{Loc: d.Locus(), Category: d.Category, Bag: strings.TrimSpace(d.Text)})
			continue
		}

		ss := ling.Sentences(d.Text, false)
		for i := 0; i < len(ss); i += sentsperbag {
			parcel := strings.Join(ss[i:min(i+sentsperbag, len(ss))], " ")
			thebags = append(thebags, BagWithLocus{
				Loc:      fmt.Sprintf("%s/%d", d.Locus(), i),
				Category: d.Category,
				Bag:      parcel,
			})
		}
	}
	return thebags
}

// BagTexts - the strings to hand to Vectorise()
func BagTexts(bags []BagWithLocus) []string {
	tt := make([]string, len(bags))
	for i := range bags {
		tt[i] = bags[i].Bag
	}
	return tt
}
