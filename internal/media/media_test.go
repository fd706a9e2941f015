package media

import "testing"

func TestCataloguesHaveUniqueIDs(t *testing.T) {
	for _, c := range []Catalogue{Songs(), Podcasts()} {
		if c.Title == "" || len(c.Items) != 3 {
			t.Fatalf("catalogue %q has %d items, want 3", c.Title, len(c.Items))
		}
		seen := map[string]bool{}
		for _, item := range c.Items {
			if seen[item.ID] {
				t.Fatalf("duplicate id %q in %q", item.ID, c.Title)
			}
			seen[item.ID] = true
			if item.Title == "" || item.Artwork == "" || item.Category == "" {
				t.Fatalf("incomplete item %#v", item)
			}
		}
	}
}

func TestItemMeta(t *testing.T) {
	tests := []struct {
		item Item
		want string
	}{
		{Item{Duration: "8m", Mood: "Daily bite"}, "8m · Daily bite"},
		{Item{Duration: "8m"}, "8m"},
		{Item{Mood: "Calm"}, "Calm"},
		{Item{}, ""},
	}
	for _, tt := range tests {
		if got := tt.item.Meta(); got != tt.want {
			t.Fatalf("Meta() = %q, want %q", got, tt.want)
		}
	}
}
