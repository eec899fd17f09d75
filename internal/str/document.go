//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "fmt"

// Document - one raw text of a corpus; Category is the label the dataset gives it (e.g. "sci.space")
type Document struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Source   string `json:"source"`
	Text     string `json:"text"`
}

// Locus - "sci.space/61092"
func (d Document) Locus() string {
	if d.Category == "" {
		return d.ID
	}
	return fmt.Sprintf("%s/%s", d.Category, d.ID)
}
