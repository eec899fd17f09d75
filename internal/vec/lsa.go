//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"math"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/nlp"
	"gonum.org/v1/gonum/mat"
)

// LSAResult - latent semantic analysis: docs in a k-dimensional concept space
type LSAResult struct {
	K        int
	DocSpace mat.Matrix // k x docs
	Concepts [][]string // the heaviest terms of each concept
}

// LSA - truncated SVD of the document-term matrix
func LSA(d *DTM, k int, topn int) (*LSAResult, error) {
	t, n := d.Dims()
	if k < 1 || k > min(t, n) {
		return nil, fmt.Errorf("LSA(): k=%d is out of range for a %dx%d matrix", k, t, n)
	}

	svd := nlp.NewTruncatedSVD(k)
	ds, err := svd.FitTransform(d.Matrix)
	if err != nil {
		return nil, fmt.Errorf("LSA(): %w", err)
	}

	res := &LSAResult{K: k, DocSpace: ds, Concepts: make([][]string, k)}

	// Components is terms x k: one column per concept
	for c := 0; c < k; c++ {
		col := mat.Col(nil, c, svd.Components)
		for i := range col {
			col[i] = math.Abs(col[i])
		}
		idx := gen.ArgSortDesc(col)
		for _, i := range idx[:min(topn, len(idx))] {
			res.Concepts[c] = append(res.Concepts[c], d.Vocab[i])
		}
	}
	return res, nil
}
