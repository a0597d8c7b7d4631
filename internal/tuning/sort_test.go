package tuning

import (
	"testing"
)

func evaluated(t *testing.T) ResultSet {
	t.Helper()
	rs, err := Evaluate(ProcessParameters{K: 2, T: 5, A: 0.5, Tau0: 0.3})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	return rs
}

func TestSortDoesNotMutateInput(t *testing.T) {
	rs := evaluated(t)
	before := rs.Clone()

	Sort(rs, SortByMethod, false)

	for i := range rs {
		if rs[i] != before[i] {
			t.Fatalf("input mutated at index %d", i)
		}
	}
}

func TestSortByCriterionNumericFirst(t *testing.T) {
	sorted := Sort(evaluated(t), SortByCriterion, true)

	seenLabel := false
	prev := 0.0
	for i, r := range sorted {
		if !r.Criterion.IsMs() {
			seenLabel = true
			continue
		}
		if seenLabel {
			t.Fatalf("record %d: Ms value %s after a named criterion", i, r.Criterion.Label())
		}
		if r.Criterion.Ms() < prev {
			t.Errorf("record %d: Ms values not ascending: %g after %g", i, r.Criterion.Ms(), prev)
		}
		prev = r.Criterion.Ms()
	}
	if !seenLabel {
		t.Error("expected ISE/IAE/ITAE records at the tail")
	}
}

func TestSortToggleLaw(t *testing.T) {
	keys := []SortKey{SortByVariant, SortByMethod, SortByMode, SortByCriterion}

	for _, key := range keys {
		asc := Sort(evaluated(t), key, true)
		desc := Sort(asc, key, false)

		if len(desc) != len(asc) {
			t.Fatalf("key %s: length changed", key)
		}
		for i := range asc {
			if desc[i] != asc[len(asc)-1-i] {
				t.Errorf("key %s: descending order is not the exact reverse at index %d", key, i)
				break
			}
		}
	}
}

func TestSortStability(t *testing.T) {
	rs := evaluated(t)
	sorted := Sort(rs, SortByVariant, true)

	// Rows sharing a variant must keep their aggregation order; the uSORT1
	// "PI 1GdL" rows differ only by mode and Ms level.
	var got []Criterion
	for _, r := range sorted {
		if r.Method == USORT1 && r.Variant == "PI 1GdL" {
			got = append(got, r.Criterion)
		}
	}
	want := []Criterion{MsLevel(2.0), MsLevel(1.6), MsLevel(1.8), MsLevel(1.6)}
	if len(got) != len(want) {
		t.Fatalf("expected %d uSORT1 PI rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected criterion %s, got %s (tie order broken)", i, want[i].Label(), got[i].Label())
		}
	}
}

func TestSortDefaultOrder(t *testing.T) {
	sorted := SortDefault(evaluated(t))

	if sorted[0].Variant != "IAE (PI)" {
		t.Errorf("expected first variant \"IAE (PI)\", got %q", sorted[0].Variant)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Variant < sorted[i-1].Variant {
			t.Errorf("record %d: variants not ascending: %q after %q", i, sorted[i].Variant, sorted[i-1].Variant)
		}
	}
}

func TestSorterClick(t *testing.T) {
	var s Sorter

	key, asc := s.Click(SortByMethod)
	if key != SortByMethod || !asc {
		t.Errorf("first click: expected (method, ascending), got (%s, %v)", key, asc)
	}

	key, asc = s.Click(SortByMethod)
	if key != SortByMethod || asc {
		t.Errorf("second click: expected (method, descending), got (%s, %v)", key, asc)
	}

	// A new key resets to ascending.
	key, asc = s.Click(SortByMode)
	if key != SortByMode || !asc {
		t.Errorf("new key: expected (mode, ascending), got (%s, %v)", key, asc)
	}
}

func TestSorterApplyDefaultBeforeClick(t *testing.T) {
	var s Sorter
	rs := evaluated(t)

	got := s.Apply(rs)
	want := SortDefault(rs)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected default order before any click, diverged at %d", i)
		}
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    SortKey
		wantErr bool
	}{
		{"variant", SortByVariant, false},
		{"method", SortByMethod, false},
		{"mode", SortByMode, false},
		{"criterion", SortByCriterion, false},
		{"kp", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSortKey(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.in, tt.want, got)
		}
	}
}
