//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "sort"

// WordInfo - a token as it was seen in a document plus what the lessons learned about it
type WordInfo struct {
	Word  string `json:"word"`
	Lemma string `json:"lemma,omitempty"`
	Tag   string `json:"tag,omitempty"`
	Loc   string `json:"loc,omitempty"`
	Count int    `json:"count,omitempty"`
}

// WordCount - a word and how often it was seen
type WordCount struct {
	Word  string  `json:"word"`
	Count int     `json:"count"`
	Score float64 `json:"score,omitempty"`
}

type WCList []WordCount

func (w WCList) Len() int {
	return len(w)
}

// Less - by count and then alphabetically so that output is stable
func (w WCList) Less(i, j int) bool {
	if w[i].Count != w[j].Count {
		return w[i].Count > w[j].Count
	}
	return w[i].Word < w[j].Word
}

func (w WCList) Swap(i, j int) {
	w[i], w[j] = w[j], w[i]
}

// SortedWordCounts - map[string]int into a WCList sorted by count
func SortedWordCounts(mp map[string]int) WCList {
	wcl := make(WCList, 0, len(mp))
	for k, v := range mp {
		wcl = append(wcl, WordCount{Word: k, Count: v})
	}
	sort.Sort(wcl)
	return wcl
}
