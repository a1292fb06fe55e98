package templates

import (
	"strings"
	"testing"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderContext(t *testing.T) (*RenderContext, *proposal.Document) {
	t.Helper()
	doc := proposal.NewDocument("Render Test")
	ctx := &RenderContext{
		Doc:             doc,
		ActiveSectionID: doc.Sections[0].ID,
		CurrencyCode:    "USD",
	}
	return ctx, doc
}

func TestCanvasRender(t *testing.T) {
	t.Run("renders every section and element", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		second := doc.AddSection("Page 2")
		heading, err := doc.AddElement(doc.Sections[0].ID, proposal.KindHeading, 10, 20)
		require.NoError(t, err)
		_, err = doc.AddElement(second.ID, proposal.KindText, 0, 0)
		require.NoError(t, err)

		html := NewCanvasRenderer(ctx, nil).Render()

		assert.Contains(t, html, `id="section-`+doc.Sections[0].ID+`"`)
		assert.Contains(t, html, `id="section-`+second.ID+`"`)
		assert.Contains(t, html, `id="element-`+heading.ID+`"`)
		assert.Contains(t, html, "New Heading")
	})

	t.Run("placement box becomes inline css", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		el, err := doc.AddElement(doc.Sections[0].ID, proposal.KindImage, 15, 25)
		require.NoError(t, err)
		el.ZIndex = 7

		html := NewCanvasRenderer(ctx, nil).Render()
		assert.Contains(t, html, "left:15px;top:25px;width:320px;height:240px;z-index:7;")
	})

	t.Run("style map keys become kebab-case properties", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		_, err := doc.AddElement(doc.Sections[0].ID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)

		html := NewCanvasRenderer(ctx, nil).Render()
		assert.Contains(t, html, "font-family:Georgia, serif;")
		assert.Contains(t, html, "font-size:28px;")
	})

	t.Run("elements render in z order with stable ties", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		sectionID := doc.Sections[0].ID
		a, err := doc.AddElement(sectionID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)
		b, err := doc.AddElement(sectionID, proposal.KindText, 0, 0)
		require.NoError(t, err)
		c, err := doc.AddElement(sectionID, proposal.KindText, 0, 0)
		require.NoError(t, err)

		// Give a the top z-index; tie b and c.
		a.ZIndex = 5
		b.ZIndex = 2
		c.ZIndex = 2

		html := NewCanvasRenderer(ctx, nil).Render()
		posA := strings.Index(html, `id="element-`+a.ID)
		posB := strings.Index(html, `id="element-`+b.ID)
		posC := strings.Index(html, `id="element-`+c.ID)

		assert.Less(t, posB, posC, "equal z keeps insertion order")
		assert.Less(t, posC, posA, "higher z renders later")
	})

	t.Run("selected element gets an outline and eight handles", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		el, err := doc.AddElement(doc.Sections[0].ID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)
		ctx.SelectedID = el.ID

		html := NewCanvasRenderer(ctx, nil).Render()
		assert.Contains(t, html, "selected")
		assert.Equal(t, 8, strings.Count(html, "resize-handle"))
		assert.Contains(t, html, `data-handle="nw"`)
		assert.Contains(t, html, `data-handle="se"`)
	})

	t.Run("unselected canvas has no handles", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		_, err := doc.AddElement(doc.Sections[0].ID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)

		html := NewCanvasRenderer(ctx, nil).Render()
		assert.NotContains(t, html, "resize-handle")
	})

	t.Run("text content is escaped", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		el, err := doc.AddElement(doc.Sections[0].ID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)
		el.Content.(*proposal.HeadingContent).Text = `<script>alert("x")</script>`

		html := NewCanvasRenderer(ctx, nil).Render()
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})
}

func TestRenderImage(t *testing.T) {
	t.Run("empty src shows a placeholder", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		_, err := doc.AddElement(doc.Sections[0].ID, proposal.KindImage, 0, 0)
		require.NoError(t, err)

		html := NewCanvasRenderer(ctx, nil).Render()
		assert.Contains(t, html, "image-placeholder")
		assert.NotContains(t, html, "<img")
	})

	t.Run("failed load shows a placeholder instead of a broken image", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		el, err := doc.AddElement(doc.Sections[0].ID, proposal.KindImage, 0, 0)
		require.NoError(t, err)
		el.Content = &proposal.ImageContent{Src: "/media/images/x.webp", LoadFailed: true}

		html := NewCanvasRenderer(ctx, nil).Render()
		assert.Contains(t, html, "Image unavailable")
		assert.NotContains(t, html, "<img")
	})

	t.Run("loaded image renders src and alt", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		el, err := doc.AddElement(doc.Sections[0].ID, proposal.KindImage, 0, 0)
		require.NoError(t, err)
		el.Content = &proposal.ImageContent{Src: "/media/images/sofa.webp", Alt: "Sofa concept"}

		html := NewCanvasRenderer(ctx, nil).Render()
		assert.Contains(t, html, `src="/media/images/sofa.webp"`)
		assert.Contains(t, html, `alt="Sofa concept"`)
	})
}

func TestRenderPricingTable(t *testing.T) {
	ctx, doc := newRenderContext(t)
	el, err := doc.AddElement(doc.Sections[0].ID, proposal.KindPricingTable, 0, 0)
	require.NoError(t, err)
	el.Content = &proposal.PricingTableContent{
		Items: []proposal.PricingItem{
			{Name: "Sofa", Description: "Three-seater", Price: 1200},
			{Name: "Rug", Description: "Wool", Price: 400},
		},
		Total: 1600,
	}

	html := NewCanvasRenderer(ctx, nil).Render()
	assert.Contains(t, html, "Sofa")
	assert.Contains(t, html, "Three-seater")
	assert.Contains(t, html, "pricing-total")
	assert.Contains(t, html, "$", "prices carry the currency symbol")
}

func TestRenderScopeBlock(t *testing.T) {
	t.Run("title and items", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		_, err := doc.AddElement(doc.Sections[0].ID, proposal.KindScopeBlock, 0, 0)
		require.NoError(t, err)

		html := NewCanvasRenderer(ctx, nil).Render()
		assert.Contains(t, html, "Scope of Work")
		assert.Contains(t, html, "Site measurement")
	})

	t.Run("empty items show a placeholder line", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		el, err := doc.AddElement(doc.Sections[0].ID, proposal.KindScopeBlock, 0, 0)
		require.NoError(t, err)
		el.Content = &proposal.ScopeBlockContent{Title: "Scope"}

		html := NewCanvasRenderer(ctx, nil).Render()
		assert.Contains(t, html, "No items yet")
	})
}

func TestInlineEditRendering(t *testing.T) {
	ctx, doc := newRenderContext(t)
	el, err := doc.AddElement(doc.Sections[0].ID, proposal.KindHeading, 0, 0)
	require.NoError(t, err)
	ctx.SelectedID = el.ID
	ctx.EditingID = el.ID
	ctx.EditBuffer = "Draft title"

	html := NewCanvasRenderer(ctx, nil).Render()
	assert.Contains(t, html, `value="Draft title"`)
	assert.NotContains(t, html, "<h1")
}

func TestInspectorRender(t *testing.T) {
	t.Run("no selection renders the empty state", func(t *testing.T) {
		ctx, _ := newRenderContext(t)
		html := NewInspectorRenderer(ctx, nil).Render()
		assert.Contains(t, html, "Select an element")
	})

	t.Run("stale selection falls back to the empty state", func(t *testing.T) {
		ctx, _ := newRenderContext(t)
		ctx.SelectedID = "gone"
		html := NewInspectorRenderer(ctx, nil).Render()
		assert.Contains(t, html, "Select an element")
	})

	t.Run("geometry fields always present", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		el, err := doc.AddElement(doc.Sections[0].ID, proposal.KindText, 12, 34)
		require.NoError(t, err)
		ctx.SelectedID = el.ID

		html := NewInspectorRenderer(ctx, nil).Render()
		assert.Contains(t, html, `name="x" value="12"`)
		assert.Contains(t, html, `name="y" value="34"`)
		assert.Contains(t, html, `name="width" value="360"`)
	})

	t.Run("per-kind fields", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		sectionID := doc.Sections[0].ID

		heading, err := doc.AddElement(sectionID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)
		ctx.SelectedID = heading.ID
		html := NewInspectorRenderer(ctx, nil).Render()
		assert.Contains(t, html, `name="text"`)
		assert.Contains(t, html, "style-fields")

		pricing, err := doc.AddElement(sectionID, proposal.KindPricingTable, 0, 0)
		require.NoError(t, err)
		ctx.SelectedID = pricing.ID
		html = NewInspectorRenderer(ctx, nil).Render()
		assert.Contains(t, html, `name="itemName"`)
		assert.Contains(t, html, `name="total"`)

		scope, err := doc.AddElement(sectionID, proposal.KindScopeBlock, 0, 0)
		require.NoError(t, err)
		ctx.SelectedID = scope.ID
		html = NewInspectorRenderer(ctx, nil).Render()
		assert.Contains(t, html, `name="title"`)
		assert.Contains(t, html, `name="scopeItem"`)
	})

	t.Run("typography fields for heading and text", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		heading, err := doc.AddElement(doc.Sections[0].ID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)
		ctx.SelectedID = heading.ID

		html := NewInspectorRenderer(ctx, nil).Render()
		assert.Contains(t, html, `<option value="Georgia, serif" selected>`)
		assert.Contains(t, html, `name="fontSize" value="28" min="8" max="72"`)
		assert.Contains(t, html, `name="color" value="#1a1a1a"`)
		assert.Contains(t, html, `name="fontWeight" value="bold" checked`)
		assert.Contains(t, html, `name="fontStyle" value="italic"`)
		assert.Contains(t, html, `name="textDecoration" value="underline"`)
		assert.Contains(t, html, `name="textAlign"`)
		assert.Contains(t, html, `<option value="left" selected>`)
	})

	t.Run("typography reflects the element's own style over defaults", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		text, err := doc.AddElement(doc.Sections[0].ID, proposal.KindText, 0, 0)
		require.NoError(t, err)
		text.Style["fontStyle"] = "italic"
		text.Style["textAlign"] = "center"
		ctx.SelectedID = text.ID

		html := NewInspectorRenderer(ctx, nil).Render()
		assert.Contains(t, html, `name="fontStyle" value="italic" checked`)
		assert.Contains(t, html, `<option value="center" selected>`)
		assert.NotContains(t, html, `name="fontWeight" value="bold" checked`,
			"text defaults to normal weight")
	})

	t.Run("typography fields only on text-bearing kinds", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		image, err := doc.AddElement(doc.Sections[0].ID, proposal.KindImage, 0, 0)
		require.NoError(t, err)
		ctx.SelectedID = image.ID

		html := NewInspectorRenderer(ctx, nil).Render()
		assert.NotContains(t, html, "style-fields")
	})

	t.Run("arrange controls are present for any selection", func(t *testing.T) {
		ctx, doc := newRenderContext(t)
		el, err := doc.AddElement(doc.Sections[0].ID, proposal.KindImage, 0, 0)
		require.NoError(t, err)
		ctx.SelectedID = el.ID

		html := NewInspectorRenderer(ctx, nil).Render()
		assert.Contains(t, html, `name="bringForward"`)
		assert.Contains(t, html, `name="sendBackward"`)
		assert.Contains(t, html, `name="duplicate"`)
		assert.Contains(t, html, `name="delete"`)
	})
}
