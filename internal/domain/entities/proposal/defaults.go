package proposal

// Default placement boxes per kind. Headings get a wide short box, images a
// 4:3 box, tables and scope lists medium boxes with seeded starter rows.
const (
	defaultHeadingWidth  = 480
	defaultHeadingHeight = 64

	defaultTextWidth  = 360
	defaultTextHeight = 140

	defaultImageWidth  = 320
	defaultImageHeight = 240

	defaultPricingWidth  = 440
	defaultPricingHeight = 200

	defaultScopeWidth  = 380
	defaultScopeHeight = 180
)

// MinElementSize is the floor for element width and height. Gesture and
// patch clamping both use it so no reachable document state contains a
// degenerate box.
const MinElementSize = 10

// NewElement builds a fully populated element of the given kind at (x, y)
// with kind-appropriate default size, style, and seeded content. The caller
// assigns ZIndex; the document does this on insertion.
func NewElement(kind Kind, x, y float64) *Element {
	el := &Element{
		ID:       NewID(),
		Kind:     kind,
		Geometry: Geometry{X: x, Y: y},
		Style:    DefaultStyle(kind),
	}

	switch kind {
	case KindHeading:
		el.Geometry.Width = defaultHeadingWidth
		el.Geometry.Height = defaultHeadingHeight
		el.Content = &HeadingContent{Text: "New Heading"}
	case KindText:
		el.Geometry.Width = defaultTextWidth
		el.Geometry.Height = defaultTextHeight
		el.Content = &TextContent{Text: "Write something about this project..."}
	case KindImage:
		el.Geometry.Width = defaultImageWidth
		el.Geometry.Height = defaultImageHeight
		el.Content = &ImageContent{}
	case KindPricingTable:
		el.Geometry.Width = defaultPricingWidth
		el.Geometry.Height = defaultPricingHeight
		el.Content = &PricingTableContent{
			Items: []PricingItem{
				{Name: "Line item", Description: "", Price: 0},
			},
		}
	case KindScopeBlock:
		el.Geometry.Width = defaultScopeWidth
		el.Geometry.Height = defaultScopeHeight
		el.Content = &ScopeBlockContent{
			Title: "Scope of Work",
			Items: []string{"Site measurement", "Design concepts"},
		}
	}

	el.Geometry = ClampGeometry(el.Geometry)
	return el
}

// DefaultStyle returns the starting style map for a kind. The inspector
// falls back to these values for style keys an element has not set.
func DefaultStyle(kind Kind) map[string]string {
	switch kind {
	case KindHeading:
		return map[string]string{
			"fontFamily": "Georgia, serif",
			"fontSize":   "28",
			"fontWeight": "bold",
			"color":      "#1a1a1a",
			"textAlign":  "left",
		}
	case KindText:
		return map[string]string{
			"fontFamily": "Helvetica, sans-serif",
			"fontSize":   "14",
			"fontWeight": "normal",
			"color":      "#333333",
			"textAlign":  "left",
		}
	case KindPricingTable, KindScopeBlock:
		return map[string]string{
			"fontFamily": "Helvetica, sans-serif",
			"fontSize":   "13",
			"color":      "#333333",
		}
	default:
		return map[string]string{}
	}
}

// ClampGeometry corrects a placement box to the invariant every reachable
// document state satisfies: non-negative position, width/height at least
// MinElementSize. Out-of-range values are clamped silently, never rejected.
func ClampGeometry(g Geometry) Geometry {
	if g.X < 0 {
		g.X = 0
	}
	if g.Y < 0 {
		g.Y = 0
	}
	if g.Width < MinElementSize {
		g.Width = MinElementSize
	}
	if g.Height < MinElementSize {
		g.Height = MinElementSize
	}
	return g
}
