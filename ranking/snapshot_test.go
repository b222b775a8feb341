package ranking

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTopSnapshot(t *testing.T) {
	list := []Entry{
		{ID: "a", Score: 40},
		{ID: "b", Score: 30},
		{ID: "c", Score: 20},
		{ID: "d", Score: 10},
	}

	tests := []struct {
		name string
		list []Entry
		n    int
		want Snapshot
	}{
		{"top three", list, 3, Snapshot{"a", "b", "c"}},
		{"short list", list[:2], 3, Snapshot{"a", "b"}},
		{"empty", nil, 3, Snapshot{}},
		{"zero n", list, 0, Snapshot{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopSnapshot(tt.list, tt.n)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TopSnapshot mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRankStableOnTies(t *testing.T) {
	list := []Entry{
		{ID: "x", Score: 5},
		{ID: "y", Score: 9},
		{ID: "z", Score: 5},
		{ID: "w", Score: 5},
	}

	got := TopSnapshot(Rank(list), 4)
	want := Snapshot{"y", "x", "z", "w"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rank order mismatch (-want +got):\n%s", diff)
	}

	// Input is not modified
	if list[0].ID != "x" || list[1].ID != "y" {
		t.Error("Rank modified its input")
	}
}

func TestSnapshotString(t *testing.T) {
	if got := (Snapshot{"a", "b", "c"}).String(); got != "a,b,c" {
		t.Errorf("expected a,b,c, got %q", got)
	}
}
