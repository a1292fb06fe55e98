package proposal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementJSONRoundTrip(t *testing.T) {
	t.Run("dispatches content decoding on kind", func(t *testing.T) {
		el := NewElement(KindPricingTable, 20, 30)
		el.ZIndex = 3

		data, err := json.Marshal(el)
		require.NoError(t, err)

		var decoded Element
		require.NoError(t, json.Unmarshal(data, &decoded))

		assert.Equal(t, el.ID, decoded.ID)
		assert.Equal(t, KindPricingTable, decoded.Kind)
		assert.Equal(t, el.Geometry, decoded.Geometry)
		assert.Equal(t, 3, decoded.ZIndex)

		content, ok := decoded.Content.(*PricingTableContent)
		require.True(t, ok)
		assert.Len(t, content.Items, 1)
	})

	t.Run("every kind decodes to its concrete payload", func(t *testing.T) {
		for _, kind := range Kinds() {
			el := NewElement(kind, 0, 0)
			data, err := json.Marshal(el)
			require.NoError(t, err)

			var decoded Element
			require.NoError(t, json.Unmarshal(data, &decoded))
			require.NotNil(t, decoded.Content, "kind %s", kind)
			assert.Equal(t, kind, decoded.Content.ContentKind())
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		var decoded Element
		err := json.Unmarshal([]byte(`{"id":"x","kind":"Video","content":{}}`), &decoded)
		assert.Error(t, err)
	})
}

func TestElementClone(t *testing.T) {
	t.Run("clone shares no mutable state", func(t *testing.T) {
		el := NewElement(KindScopeBlock, 0, 0)
		cp := el.Clone()

		cp.Style["color"] = "#ff0000"
		cpContent := cp.Content.(*ScopeBlockContent)
		cpContent.Items[0] = "changed"

		assert.NotEqual(t, "#ff0000", el.Style["color"])
		assert.Equal(t, "Site measurement", el.Content.(*ScopeBlockContent).Items[0])
	})

	t.Run("clone keeps the same id", func(t *testing.T) {
		el := NewElement(KindHeading, 0, 0)
		assert.Equal(t, el.ID, el.Clone().ID)
	})
}

func TestNewElementDefaults(t *testing.T) {
	t.Run("seeded content per kind", func(t *testing.T) {
		heading := NewElement(KindHeading, 5, 6)
		assert.Equal(t, "New Heading", heading.Content.(*HeadingContent).Text)
		assert.Equal(t, Geometry{X: 5, Y: 6, Width: 480, Height: 64}, heading.Geometry)

		pricing := NewElement(KindPricingTable, 0, 0)
		require.Len(t, pricing.Content.(*PricingTableContent).Items, 1)

		scope := NewElement(KindScopeBlock, 0, 0)
		assert.Equal(t, "Scope of Work", scope.Content.(*ScopeBlockContent).Title)
	})

	t.Run("negative placement is clamped", func(t *testing.T) {
		el := NewElement(KindText, -50, -20)
		assert.Equal(t, 0.0, el.Geometry.X)
		assert.Equal(t, 0.0, el.Geometry.Y)
	})

	t.Run("ids are unique", func(t *testing.T) {
		a := NewElement(KindText, 0, 0)
		b := NewElement(KindText, 0, 0)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestPricingItemSum(t *testing.T) {
	content := &PricingTableContent{
		Items: []PricingItem{
			{Name: "Sofa", Price: 1200},
			{Name: "Rug", Price: 350.50},
		},
	}
	assert.Equal(t, 1550.50, content.ItemSum())
}
