package model

import (
	"errors"
	"testing"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{in: "", want: FilterAll},
		{in: "all", want: FilterAll},
		{in: "Active", want: FilterActive},
		{in: "#/active", want: FilterActive},
		{in: "/completed", want: FilterCompleted},
		{in: "#/", want: FilterAll},
		{in: "done", want: FilterCompleted},
		{in: "someday", want: FilterAll, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFilter(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrUnknownFilter) {
			t.Fatalf("ParseFilter(%q) err = %v, want ErrUnknownFilter", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	items := []Item{
		{ID: 1, Text: "a", Done: true},
		{ID: 2, Text: "b"},
		{ID: 3, Text: "c", Done: true},
	}

	active := Apply(items, FilterActive)
	if len(active) != 1 || active[0].ID != 2 {
		t.Fatalf("active = %+v, want only id 2", active)
	}
	completed := Apply(items, FilterCompleted)
	if len(completed) != 2 || completed[0].ID != 1 || completed[1].ID != 3 {
		t.Fatalf("completed = %+v, want ids 1,3 in order", completed)
	}
	if all := Apply(items, FilterAll); len(all) != 3 {
		t.Fatalf("all = %d items, want 3", len(all))
	}
	if unknown := Apply(items, Filter("bogus")); len(unknown) != 3 {
		t.Fatalf("unknown filter kept %d items, want 3", len(unknown))
	}
}

func TestFilterNext(t *testing.T) {
	f := FilterAll
	seen := []Filter{}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	if seen[0] != FilterActive || seen[1] != FilterCompleted || seen[2] != FilterAll {
		t.Fatalf("cycle = %v", seen)
	}
}

func TestCounts(t *testing.T) {
	done, active := Counts([]Item{{Done: true}, {}, {}})
	if done != 1 || active != 2 {
		t.Fatalf("Counts = (%d, %d), want (1, 2)", done, active)
	}
}
