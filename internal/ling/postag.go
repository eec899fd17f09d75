//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

//
// PART OF SPEECH TAGGING
//

// TaggedToken - a token and its Penn Treebank tag
type TaggedToken struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

func (t TaggedToken) String() string {
	return fmt.Sprintf("%s/%s", t.Text, t.Tag)
}

type Tagger interface {
	Tag(text string) ([]TaggedToken, error)
}

// ProseTagger - the averaged perceptron that ships with prose
type ProseTagger struct{}

func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag - tokenize and tag; named entities are not extracted
func (p *ProseTagger) Tag(text string) ([]TaggedToken, error) {
	doc, err := prose.NewDocument(apostrophes.Replace(text),
		prose.WithExtraction(false),
		prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("ProseTagger.Tag(): %w", err)
	}

	tt := doc.Tokens()
	out := make([]TaggedToken, len(tt))
	for i, t := range tt {
		out[i] = TaggedToken{Text: t.Text, Tag: t.Tag}
	}
	return out, nil
}

// TagFreq - a FreqDist of the tags; simplified tags if coarse is set
func TagFreq(tagged []TaggedToken, coarse bool) *FreqDist {
	fd := NewFreqDist()
	for _, t := range tagged {
		if coarse {
			fd.Add(Simplify(t.Tag))
		} else {
			fd.Add(t.Tag)
		}
	}
	return fd
}

// FilterTags - keep tokens whose tag starts with one of the prefixes: "NN" gets NN, NNS, NNP and NNPS
func FilterTags(tagged []TaggedToken, prefixes ...string) []TaggedToken {
	var out []TaggedToken
	for _, t := range tagged {
		for _, p := range prefixes {
			if strings.HasPrefix(t.Tag, p) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// Simplify - Penn Treebank tag --> universal tag
func Simplify(tag string) string {
	switch {
	case strings.HasPrefix(tag, "NN"):
		return "NOUN"
	case strings.HasPrefix(tag, "VB"), tag == "MD":
		return "VERB"
	case strings.HasPrefix(tag, "JJ"):
		return "ADJ"
	case strings.HasPrefix(tag, "RB"), tag == "WRB":
		return "ADV"
	}

	switch tag {
	case "PRP", "PRP$", "WP", "WP$":
		return "PRON"
	case "DT", "PDT", "WDT", "EX":
		return "DET"
	case "IN":
		return "ADP"
	case "CD":
		return "NUM"
	case "CC":
		return "CONJ"
	case "RP", "TO", "POS":
		return "PRT"
	case ".", ",", ":", "``", "''", "(", ")", "-LRB-", "-RRB-", "#", "$", "\"", "NFP", "HYPH":
		return "."
	}
	return "X"
}

// WordNetPOS - Penn Treebank tag --> "n", "v", "a", "r"; "" for everything else
func WordNetPOS(tag string) string {
	switch Simplify(tag) {
	case "NOUN":
		return "n"
	case "VERB":
		return "v"
	case "ADJ":
		return "a"
	case "ADV":
		return "r"
	}
	return ""
}
