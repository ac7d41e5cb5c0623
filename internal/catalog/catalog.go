// Package catalog is the fixed enumeration of site content defined at
// build time. Nothing here mutates at runtime; only an item's
// visibility and the viewer's grant state affect what a request sees.
package catalog

import (
	"strings"

	"folio/internal/access"
	"folio/internal/models"
)

// GalleryItem is one entry in the visual archive. Gallery ids and
// document ids are distinct namespaces.
type GalleryItem struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Label       string            `json:"label"` // Official or Unofficial
	DateTime    string            `json:"dateTime"`
	ImageURL    string            `json:"imageUrl"`
	StorageKey  string            `json:"-"`
	Visibility  access.Visibility `json:"visibility"`
}

// DocumentItem is one entry in the document repository.
type DocumentItem struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Labels      []string          `json:"labels"`
	DateTime    string            `json:"dateTime"`
	FileType    string            `json:"fileType"`
	FileURL     string            `json:"fileUrl,omitempty"`
	StorageKey  string            `json:"-"`
	Visibility  access.Visibility `json:"visibility"`
}

// Item is what the generic filters need from a catalog entry.
type Item interface {
	Key() string
	Access() access.Visibility
	SearchText() string
}

func (g GalleryItem) Key() string               { return g.ID }
func (g GalleryItem) Access() access.Visibility { return g.Visibility }
func (g GalleryItem) SearchText() string {
	return strings.ToLower(g.Title + " " + g.Description + " " + g.DateTime + " " + g.Label)
}

func (d DocumentItem) Key() string               { return d.ID }
func (d DocumentItem) Access() access.Visibility { return d.Visibility }
func (d DocumentItem) SearchText() string {
	return strings.ToLower(d.Title + " " + d.Description + " " + d.DateTime + " " + strings.Join(d.Labels, " "))
}

// Visible filters items through the access decision function,
// preserving catalog order. Always apply this before Search so a
// search term cannot reveal an item the viewer may not see.
func Visible[T Item](items []T, viewer *models.Profile) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if access.CanView(item.Key(), item.Access(), viewer) {
			out = append(out, item)
		}
	}
	return out
}

// Search applies a case-insensitive substring match over the item's
// searchable text. An empty term matches everything.
func Search[T Item](items []T, term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(item.SearchText(), term) {
			out = append(out, item)
		}
	}
	return out
}

// GalleryByLabel keeps only items with the given label chip. "All" or
// empty keeps everything.
func GalleryByLabel(items []GalleryItem, label string) []GalleryItem {
	if label == "" || label == "All" {
		return items
	}
	out := make([]GalleryItem, 0, len(items))
	for _, item := range items {
		if item.Label == label {
			out = append(out, item)
		}
	}
	return out
}

// DocumentsByLabel keeps items carrying any of the selected labels.
func DocumentsByLabel(items []DocumentItem, labels []string) []DocumentItem {
	if len(labels) == 0 {
		return items
	}
	for _, l := range labels {
		if l == "All" {
			return items
		}
	}
	selected := make(map[string]bool, len(labels))
	for _, l := range labels {
		selected[l] = true
	}
	out := make([]DocumentItem, 0, len(items))
	for _, item := range items {
		for _, l := range item.Labels {
			if selected[l] {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// DocumentByID looks up a document in the static catalog.
func DocumentByID(id string) (DocumentItem, bool) {
	for _, d := range Documents {
		if d.ID == id {
			return d, true
		}
	}
	return DocumentItem{}, false
}

// GalleryItemByID looks up a gallery entry in the static catalog.
func GalleryItemByID(id string) (GalleryItem, bool) {
	for _, g := range Gallery {
		if g.ID == id {
			return g, true
		}
	}
	return GalleryItem{}, false
}

// KnownResource reports whether an id names a catalog entry or the
// grant-all wildcard. Grant issuance rejects anything else.
func KnownResource(id string) bool {
	if id == access.GrantAll {
		return true
	}
	if _, ok := GalleryItemByID(id); ok {
		return true
	}
	_, ok := DocumentByID(id)
	return ok
}
