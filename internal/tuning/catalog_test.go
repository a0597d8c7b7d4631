package tuning

import (
	"errors"
	"testing"
)

func TestCombinationsCount(t *testing.T) {
	keys := Combinations()
	if len(keys) != 33 {
		t.Fatalf("expected 33 defined combinations, got %d", len(keys))
	}

	counts := map[Method]int{}
	for _, k := range keys {
		counts[k.Method]++
	}

	want := map[Method]int{
		USORT1:       8,
		USORT2:       8,
		MendezRimolo: 4,
		Lopez:        9,
		Rovira:       4,
	}
	for m, n := range want {
		if counts[m] != n {
			t.Errorf("method %s: expected %d combinations, got %d", m, n, counts[m])
		}
	}
}

func TestCombinationsOrder(t *testing.T) {
	keys := Combinations()

	first := Key{USORT1, Regulator, PI, MsLevel(2.0)}
	if keys[0] != first {
		t.Errorf("expected first key %+v, got %+v", first, keys[0])
	}

	last := Key{Rovira, Servo, PID, ByIndex(ITAE)}
	if keys[len(keys)-1] != last {
		t.Errorf("expected last key %+v, got %+v", last, keys[len(keys)-1])
	}

	// 1GdL always enumerates directly before its 2GdL sibling.
	for i, k := range keys {
		if k.Method != USORT1 {
			continue
		}
		sibling := k
		sibling.Method = USORT2
		if keys[i+1] != sibling {
			t.Errorf("key %d: expected uSORT2 sibling after %+v, got %+v", i, k, keys[i+1])
		}
	}
}

func TestLookupUSORT(t *testing.T) {
	cs, err := Lookup(Key{USORT1, Regulator, PI, MsLevel(2.0)}, 0.5)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if cs.A0 != 0.265 || cs.A1 != 0.603 || cs.A2 != -0.971 {
		t.Errorf("wrong gain coefficients: %+v", cs)
	}
	if cs.B0 != -1.382 || cs.B1 != 2.837 || cs.B2 != 0.211 {
		t.Errorf("wrong integral coefficients: %+v", cs)
	}
	if cs.D0 != 0.372 || cs.D1 != 1.205 || cs.D2 != 0.608 {
		t.Errorf("wrong beta coefficients: %+v", cs)
	}

	// uSORT1 and uSORT2 share rows.
	cs2, err := Lookup(Key{USORT2, Regulator, PI, MsLevel(2.0)}, 0.5)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if cs2 != cs {
		t.Error("uSORT1 and uSORT2 should share coefficient rows")
	}
}

func TestLookupMendezByRatio(t *testing.T) {
	cs, err := Lookup(Key{MendezRimolo, Servo, PI, ByIndex(ITAE)}, 0.5)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if cs.A0 != -0.198 || cs.A1 != 0.788 || cs.A2 != -0.416 {
		t.Errorf("wrong gain coefficients for a=0.5: %+v", cs)
	}

	cs2, err := Lookup(Key{MendezRimolo, Servo, PI, ByIndex(ITAE)}, 1.0)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if cs2 == cs {
		t.Error("expected different rows for different ratios")
	}
}

func TestLookupUndefined(t *testing.T) {
	tests := []struct {
		name  string
		key   Key
		ratio float64
	}{
		{"lopez servo", Key{Lopez, Servo, PI, ByIndex(IAE)}, 0.5},
		{"rovira regulator", Key{Rovira, Regulator, PI, ByIndex(IAE)}, 0.5},
		{"rovira ise", Key{Rovira, Servo, PI, ByIndex(ISE)}, 0.5},
		{"mendez pid", Key{MendezRimolo, Regulator, PID, ByIndex(IAE)}, 0.5},
		{"mendez missing ratio", Key{MendezRimolo, Regulator, PI, ByIndex(IAE)}, 0.9},
		{"usort p-only", Key{USORT1, Regulator, P, MsLevel(2.0)}, 0.5},
		{"usort wrong ms", Key{USORT1, Regulator, PI, MsLevel(1.8)}, 0.5},
		{"usort error index", Key{USORT1, Regulator, PI, ByIndex(IAE)}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lookup(tt.key, tt.ratio)
			if !errors.Is(err, ErrMissingCoefficients) {
				t.Errorf("expected ErrMissingCoefficients, got %v", err)
			}
		})
	}
}

func TestLookupEveryCombination(t *testing.T) {
	for _, a := range RatioLevels {
		for _, k := range Combinations() {
			if _, err := Lookup(k, a); err != nil {
				t.Errorf("a=%g: lookup failed for %+v: %v", a, k, err)
			}
		}
	}
}
