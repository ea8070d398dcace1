package volume

import (
	"math"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, num := range []string{"1", "3", "14.1", "14.2", "25", "46"} {
		e, err := Lookup(num)
		if err != nil {
			t.Fatalf("Lookup(%s) error: %v", num, err)
		}
		if e.Number() != num {
			t.Errorf("Lookup(%s).Number() = %s", num, e.Number())
		}
	}

	if _, err := Lookup("47"); err == nil {
		t.Error("Lookup(47) should fail: no such equation")
	}
	if _, err := Lookup("abc"); err == nil {
		t.Error("Lookup(abc) should fail: not a number")
	}
	if _, err := Lookup("0"); err == nil {
		t.Error("Lookup(0) should fail: out of range")
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 48 {
		t.Fatalf("All() returned %d equations, want 48", len(all))
	}
	if all[0].Number() != "1" {
		t.Errorf("first equation is %s, want 1", all[0].Number())
	}
	if all[len(all)-1].Number() != "46" {
		t.Errorf("last equation is %s, want 46", all[len(all)-1].Number())
	}

	// 14.1 and 14.2 sort between 14 and 15
	idx := map[string]int{}
	for i, e := range all {
		idx[e.Number()] = i
	}
	if !(idx["14"] < idx["14.1"] && idx["14.1"] < idx["14.2"] && idx["14.2"] < idx["15"]) {
		t.Errorf("decimal equation numbers out of order: 14=%d 14.1=%d 14.2=%d 15=%d",
			idx["14"], idx["14.1"], idx["14.2"], idx["15"])
	}
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("cvts")
	if err != nil {
		t.Fatalf("ParseMetric(cvts) error: %v", err)
	}
	if m != CVTS {
		t.Errorf("ParseMetric(cvts) = %s, want CVTS", m)
	}

	if _, err := ParseMetric("board-feet"); err == nil {
		t.Error("ParseMetric should reject unknown metrics")
	}
}

func TestSupportedMetrics(t *testing.T) {
	tests := []struct {
		number  string
		want    []Metric
		notWant []Metric
	}{
		// Softwoods carry the 6-inch sawlog metrics only.
		{"1", []Metric{CVTS, TARIF, CVT, CV4, CV6, SV616, SV632, XINT6}, []Metric{CV8, SV816, XINT8}},
		// Hardwoods trade SV632 for the 8-inch metrics.
		{"26", []Metric{CVTS, TARIF, CVT, CV4, CV6, CV8, SV616, SV816, XINT6, XINT8}, []Metric{SV632}},
		// Shrub-form equations publish CVTS only.
		{"14", []Metric{CVTS}, []Metric{TARIF, CVT, CV4, CV6, CV8}},
		{"45", []Metric{CVTS}, []Metric{TARIF, CVT}},
	}
	for _, tt := range tests {
		e, err := Lookup(tt.number)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", tt.number, err)
		}
		for _, m := range tt.want {
			if !e.Supports(m) {
				t.Errorf("equation %s should support %s", tt.number, m)
			}
		}
		for _, m := range tt.notWant {
			if e.Supports(m) {
				t.Errorf("equation %s should not support %s", tt.number, m)
			}
		}
		if len(e.Metrics()) != len(tt.want) {
			t.Errorf("equation %s Metrics() = %v, want %v", tt.number, e.Metrics(), tt.want)
		}
	}
}

func TestUnsupportedMetric(t *testing.T) {
	if _, err := Eq14.Calc(TARIF, 10, 20); err == nil {
		t.Error("Calc should fail for a metric the equation does not define")
	}
}

func TestInputValidation(t *testing.T) {
	if _, err := Eq1.Calc(CVTS, -5, 100); err == nil {
		t.Error("negative dbh should be rejected")
	}
	if _, err := Eq1.Calc(CVTS, 20, math.NaN()); err == nil {
		t.Error("NaN height should be rejected")
	}
	if _, err := Eq1.Calc(CVTS, math.Inf(1), 100); err == nil {
		t.Error("infinite dbh should be rejected")
	}
}

// TestNoNegativeCVTS sweeps every equation across a grid of diameters and
// heights and checks that total stem volume never goes negative or non-finite.
func TestNoNegativeCVTS(t *testing.T) {
	for _, e := range All() {
		for dbh := 0.0; dbh <= 100; dbh += 1 {
			for ht := 0.0; ht <= 400; ht += 4 {
				v, err := e.Calc(CVTS, dbh, ht)
				if err != nil {
					t.Fatalf("equation %s CVTS(%g, %g): %v", e.Number(), dbh, ht, err)
				}
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("equation %s CVTS(%g, %g) = %v", e.Number(), dbh, ht, v)
				}
				if v < 0 {
					t.Fatalf("equation %s CVTS(%g, %g) = %v, want >= 0", e.Number(), dbh, ht, v)
				}
			}
		}
	}
}

func TestUndersizedTreesHaveZeroVolume(t *testing.T) {
	tests := []struct {
		number string
		metric Metric
		dbh    float64
		ht     float64
	}{
		{"6", CVTS, 0.5, 20}, // below 1-inch minimum
		{"6", CVTS, 20, 0},   // no height
		{"6", CVT, 0.5, 20},
		{"6", CV4, 4, 40},  // below 5-inch minimum
		{"6", CV6, 8, 60},  // below 9-inch minimum
		{"26", CV8, 10, 60}, // below 11-inch minimum
		{"26", SV816, 10, 60},
		{"26", XINT8, 10, 60},
		{"14", CVTS, 0.5, 10},
		{"46", CVTS, 20, 0},
	}
	for _, tt := range tests {
		e, err := Lookup(tt.number)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", tt.number, err)
		}
		v, err := e.Calc(tt.metric, tt.dbh, tt.ht)
		if err != nil {
			t.Fatalf("equation %s %s(%g, %g): %v", tt.number, tt.metric, tt.dbh, tt.ht, err)
		}
		if v != 0 {
			t.Errorf("equation %s %s(%g, %g) = %v, want 0", tt.number, tt.metric, tt.dbh, tt.ht, v)
		}
	}
}

func TestSpotValues(t *testing.T) {
	// Eucalyptus has a closed form with no transcendentals.
	v, err := Eq31.Calc(CVTS, 20, 100)
	if err != nil {
		t.Fatal(err)
	}
	if want := 0.0016144 * 20 * 20 * 100; math.Abs(v-want) > 1e-9 {
		t.Errorf("equation 31 CVTS(20, 100) = %v, want %v", v, want)
	}

	// Western hemlock, DNR note 27 log-linear form.
	v, err = Eq6.Calc(CVTS, 20, 100)
	if err != nil {
		t.Fatal(err)
	}
	if want := 89.19; math.Abs(v-want) > 0.05 {
		t.Errorf("equation 6 CVTS(20, 100) = %v, want %v", v, want)
	}
}

func TestVolumeGrowsWithSize(t *testing.T) {
	for _, e := range All() {
		small, err := e.Calc(CVTS, 12, 60)
		if err != nil {
			t.Fatal(err)
		}
		big, err := e.Calc(CVTS, 30, 120)
		if err != nil {
			t.Fatal(err)
		}
		if big <= small {
			t.Errorf("equation %s: CVTS(30, 120) = %v not greater than CVTS(12, 60) = %v",
				e.Number(), big, small)
		}
	}
}

func TestHardwoodMerchantableOrdering(t *testing.T) {
	// Tighter merchantability limits remove volume.
	for _, num := range []string{"26", "30", "37", "41"} {
		e, err := Lookup(num)
		if err != nil {
			t.Fatal(err)
		}
		cvts, _ := e.Calc(CVTS, 24, 100)
		cv4, _ := e.Calc(CV4, 24, 100)
		cv8, _ := e.Calc(CV8, 24, 100)
		if !(cv8 < cv4 && cv4 < cvts) {
			t.Errorf("equation %s at dbh=24 ht=100: want CV8 < CV4 < CVTS, got %v %v %v",
				num, cv8, cv4, cvts)
		}
	}
}

func TestMultiStemEquations(t *testing.T) {
	// Stem count shifts the juniper and mesquite intercepts.
	single, err := Eq14.CalcStems(CVTS, 8, 20, 1)
	if err != nil {
		t.Fatal(err)
	}
	multi, err := Eq14.CalcStems(CVTS, 8, 20, 3)
	if err != nil {
		t.Fatal(err)
	}
	if single == multi {
		t.Error("equation 14 should distinguish single from multi-stem trees")
	}

	// Calc defaults to a single stem.
	def, err := Eq14.Calc(CVTS, 8, 20)
	if err != nil {
		t.Fatal(err)
	}
	if def != single {
		t.Errorf("Calc = %v, want single-stem value %v", def, single)
	}

	// Mesquite switches forms at 2 cubic-foot d2h volume; above it the stem
	// count no longer matters.
	s, _ := Eq46.CalcStems(CVTS, 3, 10, 1)
	m, _ := Eq46.CalcStems(CVTS, 3, 10, 4)
	if s == m {
		t.Error("equation 46 should distinguish stems for small trees")
	}
	s, _ = Eq46.CalcStems(CVTS, 20, 100, 1)
	m, _ = Eq46.CalcStems(CVTS, 20, 100, 4)
	if s != m {
		t.Error("equation 46 should ignore stems above the size break")
	}

	// Other equations ignore the stem count entirely.
	a, _ := Eq1.CalcStems(CVTS, 20, 100, 1)
	b, _ := Eq1.CalcStems(CVTS, 20, 100, 5)
	if a != b {
		t.Error("equation 1 should ignore stem count")
	}
}

func TestCalcAll(t *testing.T) {
	vals, err := Eq3.CalcAll(20, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 8 {
		t.Fatalf("CalcAll returned %d metrics, want 8", len(vals))
	}
	for m, v := range vals {
		if math.IsNaN(v) || v < 0 {
			t.Errorf("CalcAll %s = %v", m, v)
		}
	}
	if vals[CVTS] <= 0 || vals[SV616] <= 0 {
		t.Error("a 20-inch, 100-foot Douglas-fir should have positive volume")
	}
}

func TestKindString(t *testing.T) {
	if Eq1.Kind() != Softwood || Eq26.Kind() != Hardwood {
		t.Error("equation kind misassigned")
	}
	if Softwood.String() != "softwood" || Hardwood.String() != "hardwood" {
		t.Error("Kind.String mismatch")
	}
}
