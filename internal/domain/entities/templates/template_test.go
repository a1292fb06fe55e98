package templates

import (
	"testing"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplate(t *testing.T) *Template {
	t.Helper()
	doc := proposal.NewDocument("Source")
	_, err := doc.AddElement(doc.Sections[0].ID, proposal.KindHeading, 40, 40)
	require.NoError(t, err)
	_, err = doc.AddElement(doc.Sections[0].ID, proposal.KindPricingTable, 40, 200)
	require.NoError(t, err)

	return &Template{
		ID:       proposal.NewID(),
		Name:     "Residential Makeover",
		Category: "residential",
		Version:  1,
		Document: doc,
	}
}

func TestMatches(t *testing.T) {
	tpl := newTemplate(t)

	t.Run("empty filters match everything", func(t *testing.T) {
		assert.True(t, tpl.Matches("", ""))
	})

	t.Run("category is case-insensitive exact", func(t *testing.T) {
		assert.True(t, tpl.Matches("Residential", ""))
		assert.False(t, tpl.Matches("commercial", ""))
	})

	t.Run("query is case-insensitive substring on name", func(t *testing.T) {
		assert.True(t, tpl.Matches("", "makeover"))
		assert.True(t, tpl.Matches("", "RESID"))
		assert.False(t, tpl.Matches("", "office"))
	})

	t.Run("both filters must pass", func(t *testing.T) {
		assert.True(t, tpl.Matches("residential", "makeover"))
		assert.False(t, tpl.Matches("residential", "office"))
	})
}

func TestInstantiate(t *testing.T) {
	tpl := newTemplate(t)

	t.Run("regenerates every id", func(t *testing.T) {
		doc := tpl.Instantiate()

		assert.NotEqual(t, tpl.Document.ID, doc.ID)
		require.Len(t, doc.Sections, 1)
		assert.NotEqual(t, tpl.Document.Sections[0].ID, doc.Sections[0].ID)
		for i, el := range doc.Sections[0].Elements {
			assert.NotEqual(t, tpl.Document.Sections[0].Elements[i].ID, el.ID)
		}
	})

	t.Run("two instantiations share no ids", func(t *testing.T) {
		a := tpl.Instantiate()
		b := tpl.Instantiate()

		assert.NotEqual(t, a.ID, b.ID)
		assert.NotEqual(t, a.Sections[0].ID, b.Sections[0].ID)
		for i := range a.Sections[0].Elements {
			assert.NotEqual(t, a.Sections[0].Elements[i].ID, b.Sections[0].Elements[i].ID)
		}
	})

	t.Run("content and placement are preserved", func(t *testing.T) {
		doc := tpl.Instantiate()

		srcEl := tpl.Document.Sections[0].Elements[0]
		gotEl := doc.Sections[0].Elements[0]
		assert.Equal(t, srcEl.Kind, gotEl.Kind)
		assert.Equal(t, srcEl.Geometry, gotEl.Geometry)
		assert.Equal(t, srcEl.ZIndex, gotEl.ZIndex)
		assert.Equal(t, "New Heading", gotEl.Content.(*proposal.HeadingContent).Text)
	})

	t.Run("document title comes from the template name", func(t *testing.T) {
		assert.Equal(t, "Residential Makeover", tpl.Instantiate().Title)
	})

	t.Run("mutating the instance never touches the template", func(t *testing.T) {
		doc := tpl.Instantiate()
		doc.Sections[0].Elements[0].Content.(*proposal.HeadingContent).Text = "changed"
		doc.AddSection("Extra")

		assert.Equal(t, "New Heading", tpl.Document.Sections[0].Elements[0].Content.(*proposal.HeadingContent).Text)
		assert.Len(t, tpl.Document.Sections, 1)
	})
}
