package proposal

// ElementPatch is a partial update for one element. Nil fields are left
// untouched; set fields merge into the element rather than replacing it
// wholesale. HTTP handlers bind request bodies straight into this shape.
type ElementPatch struct {
	Geometry *GeometryPatch `json:"geometry,omitempty"`
	ZIndex   *int           `json:"zIndex,omitempty"`
	Style    *StylePatch    `json:"style,omitempty"`
	Content  *ContentPatch  `json:"content,omitempty"`
}

// GeometryPatch updates individual placement fields.
type GeometryPatch struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// GeometryFrom builds a patch that sets the whole placement box.
func GeometryFrom(g Geometry) *GeometryPatch {
	return &GeometryPatch{X: &g.X, Y: &g.Y, Width: &g.Width, Height: &g.Height}
}

// StylePatch merges presentation keys into the element's style map. Replace
// swaps the whole map for Set instead of merging.
type StylePatch struct {
	Set     map[string]string `json:"set,omitempty"`
	Unset   []string          `json:"unset,omitempty"`
	Replace bool              `json:"replace,omitempty"`
}

// ContentPatch carries the per-kind content fields. Fields that do not
// apply to the target element's kind are ignored. Slices replace the
// existing rows wholesale when supplied; scalar fields merge.
type ContentPatch struct {
	// Heading / Text
	Text *string `json:"text,omitempty"`

	// Image
	Src        *string `json:"src,omitempty"`
	Alt        *string `json:"alt,omitempty"`
	LoadFailed *bool   `json:"loadFailed,omitempty"`

	// PricingTable
	Items *[]PricingItem `json:"items,omitempty"`
	Total *float64       `json:"total,omitempty"`

	// ScopeBlock
	Title      *string   `json:"title,omitempty"`
	ScopeItems *[]string `json:"scopeItems,omitempty"`
}

// applyContentPatch merges a content patch into the element, switching
// exhaustively on kind. For pricing tables, any patch touching the rows
// recomputes the total from the rows and overrides a Total supplied in the
// same patch; a patch setting only Total is honored as an explicit override.
func applyContentPatch(el *Element, patch *ContentPatch) {
	switch content := el.Content.(type) {
	case *HeadingContent:
		if patch.Text != nil {
			content.Text = *patch.Text
		}
	case *TextContent:
		if patch.Text != nil {
			content.Text = *patch.Text
		}
	case *ImageContent:
		if patch.Src != nil {
			content.Src = *patch.Src
			// A new source gets a fresh chance to load.
			content.LoadFailed = false
		}
		if patch.Alt != nil {
			content.Alt = *patch.Alt
		}
		if patch.LoadFailed != nil {
			content.LoadFailed = *patch.LoadFailed
		}
	case *PricingTableContent:
		touchedItems := patch.Items != nil
		if touchedItems {
			items := make([]PricingItem, len(*patch.Items))
			copy(items, *patch.Items)
			for i := range items {
				if items[i].Price < 0 {
					items[i].Price = 0
				}
			}
			content.Items = items
		}
		if touchedItems {
			content.Total = content.ItemSum()
		} else if patch.Total != nil {
			content.Total = *patch.Total
		}
	case *ScopeBlockContent:
		if patch.Title != nil {
			content.Title = *patch.Title
		}
		if patch.ScopeItems != nil {
			items := make([]string, len(*patch.ScopeItems))
			copy(items, *patch.ScopeItems)
			content.Items = items
		}
	}
}
