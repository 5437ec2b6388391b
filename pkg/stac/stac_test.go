package stac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemCollectionJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"id": "item-1",
			"type": "Feature",
			"links": [{"rel": "self", "href": "./item-1/item-1.json"}]
		},
		{
			"id": "item-2",
			"type": "Feature"
		}
	]
}`

func TestParseDocument(t *testing.T) {
	t.Run("detects document types", func(t *testing.T) {
		tests := []struct {
			name string
			data string
			want DocumentType
		}{
			{"catalog", `{"type": "Catalog", "id": "root"}`, TypeCatalog},
			{"collection", `{"type": "Collection", "id": "c1"}`, TypeCollection},
			{"item", `{"type": "Feature", "id": "i1"}`, TypeItem},
			{"item collection", itemCollectionJSON, TypeItemCollection},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				doc, err := ParseDocument([]byte(tt.data))
				require.NoError(t, err)
				assert.Equal(t, tt.want, doc.Type)
			})
		}
	})

	t.Run("missing type field", func(t *testing.T) {
		_, err := ParseDocument([]byte(`{"id": "x"}`))
		assert.ErrorContains(t, err, "no type field")
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := ParseDocument([]byte(`{"type": "Spaceship"}`))
		assert.ErrorContains(t, err, "unsupported stac document type")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseDocument([]byte(`{`))
		assert.Error(t, err)
	})
}

func TestEncode(t *testing.T) {
	t.Run("untouched documents round-trip their original bytes", func(t *testing.T) {
		data := []byte(`{"type": "Catalog", "id": "root", "vendor_field": 42}`)
		doc, err := ParseDocument(data)
		require.NoError(t, err)

		out, err := doc.Encode()
		require.NoError(t, err)
		assert.Equal(t, data, out)
	})
}

func TestAsCatalog(t *testing.T) {
	t.Run("catalog passes through unchanged", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{"type": "Catalog", "id": "root"}`))
		require.NoError(t, err)

		cat, err := AsCatalog(doc)
		require.NoError(t, err)
		assert.Same(t, doc, cat)
	})

	t.Run("collection passes through unchanged", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{"type": "Collection", "id": "c1"}`))
		require.NoError(t, err)

		cat, err := AsCatalog(doc)
		require.NoError(t, err)
		assert.Same(t, doc, cat)
	})

	t.Run("item collection wraps into a catalog", func(t *testing.T) {
		doc, err := ParseDocument([]byte(itemCollectionJSON))
		require.NoError(t, err)

		cat, err := AsCatalog(doc)
		require.NoError(t, err)
		assert.Equal(t, TypeCatalog, cat.Type)
		assert.NotEmpty(t, cat.ID)

		var items []Link
		for _, l := range cat.Links {
			if l.Rel == "item" {
				items = append(items, l)
			}
		}
		require.Len(t, items, 2)
		assert.Equal(t, "./item-1/item-1.json", items[0].Href)
		assert.Equal(t, "./item-2/item-2.json", items[1].Href)
	})

	t.Run("single item wraps into a catalog", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{"type": "Feature", "id": "i1"}`))
		require.NoError(t, err)

		cat, err := AsCatalog(doc)
		require.NoError(t, err)
		assert.Equal(t, TypeCatalog, cat.Type)

		var items int
		for _, l := range cat.Links {
			if l.Rel == "item" {
				items++
			}
		}
		assert.Equal(t, 1, items)
	})

	t.Run("derived catalog encodes as a catalog", func(t *testing.T) {
		doc, err := ParseDocument([]byte(itemCollectionJSON))
		require.NoError(t, err)
		cat, err := AsCatalog(doc)
		require.NoError(t, err)

		data, err := cat.Encode()
		require.NoError(t, err)

		again, err := ParseDocument(data)
		require.NoError(t, err)
		assert.Equal(t, TypeCatalog, again.Type)
	})
}
