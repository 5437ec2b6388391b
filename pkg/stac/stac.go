// Package stac holds the minimal STAC document model the handlers
// need: type detection and the item-collection to catalog
// normalization. Catalog semantics beyond that are owned by the
// document's producers and consumers; documents round-trip as opaque
// JSON.
package stac

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// DefaultVersion is the stac_version stamped onto derived catalogs.
const DefaultVersion = "1.0.0"

// DocumentType identifies the kind of STAC document, taken from the
// top-level "type" field.
type DocumentType string

const (
	TypeCatalog        DocumentType = "Catalog"
	TypeCollection     DocumentType = "Collection"
	TypeItem           DocumentType = "Feature"
	TypeItemCollection DocumentType = "FeatureCollection"
)

// Link is a STAC link object.
type Link struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// Document is a decoded STAC document. Raw keeps the original bytes so
// untouched documents re-encode without loss.
type Document struct {
	Type        DocumentType     `json:"type"`
	ID          string           `json:"id,omitempty"`
	StacVersion string           `json:"stac_version,omitempty"`
	Description string           `json:"description,omitempty"`
	Links       []Link           `json:"links,omitempty"`
	Features    []map[string]any `json:"features,omitempty"`

	Raw []byte `json:"-"`
}

// ParseDocument decodes a STAC document and validates its type field.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse stac document: %w", err)
	}
	switch doc.Type {
	case TypeCatalog, TypeCollection, TypeItem, TypeItemCollection:
	case "":
		return nil, fmt.Errorf("stac document has no type field")
	default:
		return nil, fmt.Errorf("unsupported stac document type: %s", doc.Type)
	}
	doc.Raw = data
	return &doc, nil
}

// Encode serializes the document. Documents parsed and left untouched
// re-encode from their original bytes.
func (d *Document) Encode() ([]byte, error) {
	if d.Raw != nil {
		return d.Raw, nil
	}
	data, err := sonic.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode stac document: %w", err)
	}
	return data, nil
}

// AsCatalog normalizes a document into a catalog-typed one so
// downstream consumers see a uniform type. Catalogs and collections
// pass through unchanged; item collections and single items are
// wrapped into a derived catalog carrying one item link per feature.
func AsCatalog(doc *Document) (*Document, error) {
	switch doc.Type {
	case TypeCatalog, TypeCollection:
		return doc, nil
	case TypeItemCollection:
		return wrapFeatures(doc.Features), nil
	case TypeItem:
		feature := map[string]any{"id": doc.ID}
		if doc.Raw != nil {
			feature = nil
			if err := sonic.Unmarshal(doc.Raw, &feature); err != nil {
				return nil, fmt.Errorf("decode item: %w", err)
			}
		}
		return wrapFeatures([]map[string]any{feature}), nil
	default:
		return nil, fmt.Errorf("cannot represent %s as a catalog", doc.Type)
	}
}

func wrapFeatures(features []map[string]any) *Document {
	cat := &Document{
		Type:        TypeCatalog,
		ID:          uuid.NewString(),
		StacVersion: DefaultVersion,
		Description: "Root catalog",
		Links: []Link{
			{Rel: "root", Href: "./catalog.json", Type: "application/json"},
			{Rel: "self", Href: "./catalog.json", Type: "application/json"},
		},
	}
	for _, f := range features {
		cat.Links = append(cat.Links, Link{
			Rel:  "item",
			Href: featureHref(f),
			Type: "application/geo+json",
		})
	}
	return cat
}

// featureHref prefers the feature's own self link and falls back to a
// relative path derived from its id.
func featureHref(f map[string]any) string {
	if links, ok := f["links"].([]any); ok {
		for _, l := range links {
			link, ok := l.(map[string]any)
			if !ok {
				continue
			}
			if rel, _ := link["rel"].(string); rel == "self" {
				if href, _ := link["href"].(string); href != "" {
					return href
				}
			}
		}
	}
	id, _ := f["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	return fmt.Sprintf("./%s/%s.json", id, id)
}
