//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corp

import (
	"testing"

	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedded(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)
	assert.Equal(t, SAMPLENAME, c.Name)
	assert.Equal(t, 20, c.Len())
	assert.Equal(t, []string{"rec.autos", "rec.sport.baseball", "sci.med", "sci.space"}, c.Categories)

	st := c.Stats()
	assert.Equal(t, 5, st.PerCategory["sci.space"])
	assert.Positive(t, st.Chars)

	d, err := c.Doc(0)
	require.NoError(t, err)
	assert.Equal(t, "rec.autos", d.Category)
	assert.Equal(t, "rec.autos/01", d.Locus())
	assert.NotEmpty(t, d.Title)

	_, err = c.Doc(99)
	assert.ErrorIs(t, err, ErrNoSuchDocument)

	assert.Len(t, c.Texts(), 20)
	assert.Len(t, c.Labels(), 20)
	assert.Len(t, c.ByCategory()["sci.med"], 5)
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New("x", nil)
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = New("x", []str.Document{{ID: "1", Text: "   \n"}})
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestFilter(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	f, err := c.Filter("sci.space", "sci.med")
	require.NoError(t, err)
	assert.Equal(t, 10, f.Len())
	assert.Equal(t, []string{"sci.med", "sci.space"}, f.Categories)

	same, err := c.Filter()
	require.NoError(t, err)
	assert.Same(t, c, same)

	_, err = c.Filter("comp.graphics")
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestSampleIsReproducible(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	a := c.Sample(7, 3)
	b := c.Sample(7, 3)
	assert.Equal(t, 7, a.Len())
	assert.Equal(t, a.Docs, b.Docs)
	assert.Same(t, c, c.Sample(0, 3))
	assert.Same(t, c, c.Sample(500, 3))
}
