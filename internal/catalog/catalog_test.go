package catalog

import (
	"testing"

	"folio/internal/access"
	"folio/internal/models"
)

func viewerWith(grants ...string) *models.Profile {
	return &models.Profile{
		Role:             models.ProfileRoleUser,
		GrantedResources: grants,
	}
}

func galleryIDs(items []GalleryItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestVisibleAnonymousSeesOnlyPublic(t *testing.T) {
	got := galleryIDs(Visible(Gallery, nil))
	want := []string{"g-official-1", "g-official-2", "g-unofficial-1"}

	if len(got) != len(want) {
		t.Fatalf("anonymous gallery = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("anonymous gallery = %v, want %v", got, want)
		}
	}
}

func TestVisiblePreservesCatalogOrder(t *testing.T) {
	viewer := viewerWith(access.GrantAll)
	got := galleryIDs(Visible(Gallery, viewer))
	if len(got) != len(Gallery) {
		t.Fatalf("wildcard viewer sees %d items, want %d", len(got), len(Gallery))
	}
	for i, item := range Gallery {
		if got[i] != item.ID {
			t.Fatalf("order changed: got %v", got)
		}
	}
}

func TestVisibleGrantedViewer(t *testing.T) {
	viewer := viewerWith("g-private-1")
	got := galleryIDs(Visible(Gallery, viewer))

	want := map[string]bool{
		"g-official-1": true, "g-official-2": true,
		"g-unofficial-1": true, "g-private-1": true,
	}
	if len(got) != len(want) {
		t.Fatalf("granted gallery = %v", got)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected item %s in granted gallery", id)
		}
	}
}

func TestSearchCannotRevealHiddenItems(t *testing.T) {
	// "retreat" only appears in a private item. Filtering before
	// searching must leave an anonymous caller with nothing, not leak
	// the item through the search path.
	visible := Visible(Gallery, nil)
	got := Search(visible, "retreat")
	if len(got) != 0 {
		t.Fatalf("search over filtered items leaked %v", galleryIDs(got))
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	visible := Visible(Gallery, nil)
	got := Search(visible, "ICPC")
	if len(got) != 1 || got[0].ID != "g-official-1" {
		t.Fatalf("search ICPC = %v", galleryIDs(got))
	}

	got = Search(visible, "icpc")
	if len(got) != 1 || got[0].ID != "g-official-1" {
		t.Fatalf("search icpc = %v", galleryIDs(got))
	}
}

func TestSearchEmptyTermMatchesAll(t *testing.T) {
	visible := Visible(Gallery, nil)
	if got := Search(visible, "  "); len(got) != len(visible) {
		t.Fatalf("blank search narrowed results to %v", galleryIDs(got))
	}
}

func TestGalleryByLabel(t *testing.T) {
	all := GalleryByLabel(Gallery, "All")
	if len(all) != len(Gallery) {
		t.Fatalf("label All kept %d of %d items", len(all), len(Gallery))
	}

	official := GalleryByLabel(Gallery, "Official")
	for _, item := range official {
		if item.Label != "Official" {
			t.Errorf("item %s has label %s", item.ID, item.Label)
		}
	}
	if len(official) != 3 {
		t.Fatalf("official count = %d, want 3", len(official))
	}
}

func TestDocumentsByLabel(t *testing.T) {
	notes := DocumentsByLabel(Documents, []string{"Notes"})
	want := map[string]bool{"doc-dp-notes": true, "doc-9": true}
	if len(notes) != len(want) {
		t.Fatalf("notes = %d docs, want %d", len(notes), len(want))
	}
	for _, d := range notes {
		if !want[d.ID] {
			t.Errorf("unexpected doc %s", d.ID)
		}
	}

	if got := DocumentsByLabel(Documents, []string{"All"}); len(got) != len(Documents) {
		t.Fatalf("label All kept %d of %d docs", len(got), len(Documents))
	}
	if got := DocumentsByLabel(Documents, nil); len(got) != len(Documents) {
		t.Fatalf("no labels kept %d of %d docs", len(got), len(Documents))
	}
}

func TestKnownResource(t *testing.T) {
	for _, id := range []string{"*", "g-private-1", "doc-resume", "doc-9"} {
		if !KnownResource(id) {
			t.Errorf("KnownResource(%q) = false", id)
		}
	}
	for _, id := range []string{"", "doc-999", "g-unknown"} {
		if KnownResource(id) {
			t.Errorf("KnownResource(%q) = true", id)
		}
	}
}

func TestDocumentByID(t *testing.T) {
	doc, ok := DocumentByID("doc-transcript")
	if !ok || doc.Title != "Academic Transcript" {
		t.Fatalf("DocumentByID(doc-transcript) = %+v, %v", doc, ok)
	}
	if _, ok := DocumentByID("nope"); ok {
		t.Fatal("DocumentByID(nope) reported a hit")
	}
}
