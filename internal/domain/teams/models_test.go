package teams

import "testing"

func TestLookup(t *testing.T) {
	team, ok := Lookup("BOS")
	if !ok || team.Name != "Boston Celtics" {
		t.Fatalf("expected Celtics entry, got %+v ok=%v", team, ok)
	}
	if _, ok := Lookup("XYZ"); ok {
		t.Fatal("expected miss for unknown tricode")
	}
}

func TestNameFallsBackToTricode(t *testing.T) {
	if got := Name("DEN"); got != "Denver Nuggets" {
		t.Fatalf("expected directory name, got %q", got)
	}
	if got := Name("XYZ"); got != "XYZ" {
		t.Fatalf("expected tricode passthrough, got %q", got)
	}
}
