package content

import "testing"

func TestCatalogOrderAndLookup(t *testing.T) {
	items := []Item{
		{ID: "c", Title: "Third"},
		{ID: "a", Title: "First"},
		{ID: "b", Title: "Second"},
	}

	catalog, err := NewCatalog(items)
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}

	// Load order is preserved, not sorted.
	got := catalog.Items()
	for i, item := range items {
		if got[i].ID != item.ID {
			t.Errorf("Expected item %d to be %s, got %s", i, item.ID, got[i].ID)
		}
	}

	// Every item is retrievable by id.
	for _, item := range items {
		if !catalog.Has(item.ID) {
			t.Errorf("Expected catalog to contain %s", item.ID)
		}
		found, ok := catalog.Get(item.ID)
		if !ok || found.Title != item.Title {
			t.Errorf("Lookup of %s returned %+v", item.ID, found)
		}
	}

	if catalog.Has("missing") {
		t.Error("Expected Has to be false for unknown id")
	}
}
