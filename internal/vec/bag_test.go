//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBag(t *testing.T) {
	docs := []str.Document{{ID: "07", Category: "sci.space", Text: "One fish. Two fish. Red fish."}}

	bags := Bag(docs, 2)
	require.Len(t, bags, 2)
	assert.Equal(t, "sci.space/07/0", bags[0].Loc)
	assert.Equal(t, "One fish. Two fish.", bags[0].Bag)
	assert.Equal(t, "sci.space/07/2", bags[1].Loc)
	assert.Equal(t, "sci.space", bags[1].Category)

	whole := Bag(docs, 0)
	require.Len(t, whole, 1)
	assert.Equal(t, "sci.space/07", whole[0].Loc)
	assert.Equal(t, []string{docs[0].Text}, BagTexts(whole))
}

func TestReadStopConfig(t *testing.T) {
	dir := t.TempDir()
	stops := readstopconfig(dir)
	assert.Contains(t, stops, "the")
	assert.Greater(t, len(stops), 300)
	assert.FileExists(t, filepath.Join(dir, vv.CONFIGSTOPSENGLISH))

	require.NoError(t, os.WriteFile(filepath.Join(dir, vv.CONFIGSTOPSENGLISH), []byte(`["foo", "bar"]`), 0644))
	assert.Equal(t, []string{"foo", "bar"}, readstopconfig(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, vv.CONFIGSTOPSENGLISH), []byte(`{nope`), 0644))
	assert.Contains(t, readstopconfig(dir), "the")
}
