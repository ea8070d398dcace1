package biomass

import (
	"math"
	"testing"
)

func TestRegistries(t *testing.T) {
	if n := len(AllBark()); n != 39 {
		t.Errorf("AllBark() = %d equations, want 39", n)
	}
	// 29 published branch equations plus the null assignment.
	if n := len(AllBranch()); n != 30 {
		t.Errorf("AllBranch() = %d equations, want 30", n)
	}

	e, err := LookupBark(12)
	if err != nil {
		t.Fatalf("LookupBark(12): %v", err)
	}
	if e.String() != "BB_12" || e.Component() != Bark {
		t.Errorf("LookupBark(12) = %s (%s)", e, e.Component())
	}

	b, err := LookupBranch(7)
	if err != nil {
		t.Fatalf("LookupBranch(7): %v", err)
	}
	if b.String() != "BLB_7" || b.Component() != Branch {
		t.Errorf("LookupBranch(7) = %s (%s)", b, b.Component())
	}

	if _, err := LookupBark(0); err == nil {
		t.Error("LookupBark(0) should fail")
	}
	if _, err := LookupBranch(30); err == nil {
		t.Error("LookupBranch(30) should fail")
	}
}

// TestNoNegativeBiomass sweeps every equation across a grid of diameters and
// heights and checks estimates stay non-negative and finite.
func TestNoNegativeBiomass(t *testing.T) {
	const density = 25.0
	eqns := append(AllBark(), AllBranch()...)
	for _, e := range eqns {
		for dbh := 0.0; dbh <= 100; dbh += 1 {
			for ht := 0.0; ht <= 400; ht += 4 {
				v, err := e.Calc(dbh, ht, density)
				if err != nil {
					t.Fatalf("%s.Calc(%g, %g): %v", e, dbh, ht, err)
				}
				if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
					t.Fatalf("%s.Calc(%g, %g) = %v", e, dbh, ht, v)
				}
			}
		}
	}
}

func TestZeroSizedTrees(t *testing.T) {
	eqns := append(AllBark(), AllBranch()...)
	for _, e := range eqns {
		if v, _ := e.Calc(0, 30, 25); v != 0 {
			t.Errorf("%s.Calc(0, 30) = %v, want 0", e, v)
		}
		if v, _ := e.Calc(20, 0, 25); v != 0 {
			t.Errorf("%s.Calc(20, 0) = %v, want 0", e, v)
		}
	}
}

func TestInputValidation(t *testing.T) {
	if _, err := BB2.Calc(-5, 30, 25); err == nil {
		t.Error("negative dbh should be rejected")
	}
	if _, err := BLB1.Calc(20, math.NaN(), 25); err == nil {
		t.Error("NaN height should be rejected")
	}
}

func TestSpotValues(t *testing.T) {
	// d2h forms are closed-form.
	v, err := BB2.Calc(20, 30, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := 0.6 + 16.4*0.04*30; math.Abs(v-want) > 1e-9 {
		t.Errorf("BB_2(20, 30) = %v, want %v", v, want)
	}

	v, err = BLB1.Calc(20, 30, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := 13.0 + 12.4*0.04*30; math.Abs(v-want) > 1e-9 {
		t.Errorf("BLB_1(20, 30) = %v, want %v", v, want)
	}

	// The defined-zero and null assignments.
	if v, _ := BB19.Calc(50, 40, 25); v != 0 {
		t.Errorf("BB_19 should always be zero, got %v", v)
	}
	if v, _ := BLB0.Calc(50, 40, 25); v != 0 {
		t.Errorf("BLB_0 should always be zero, got %v", v)
	}
}

func TestShellFormUsesDensity(t *testing.T) {
	// Bark shell volume scales linearly with wood density.
	lo, err := BB30.Calc(40, 20, 20)
	if err != nil {
		t.Fatal(err)
	}
	hi, err := BB30.Calc(40, 20, 40)
	if err != nil {
		t.Fatal(err)
	}
	if lo <= 0 {
		t.Fatalf("BB_30 should be positive for a 40cm oak, got %v", lo)
	}
	if math.Abs(hi-2*lo) > 1e-9*hi {
		t.Errorf("BB_30 density scaling: %v vs %v", hi, 2*lo)
	}
}

func TestBelowground(t *testing.T) {
	if v := Belowground(0); v != 0 {
		t.Errorf("Belowground(0) = %v, want 0", v)
	}
	if v := Belowground(-10); v != 0 {
		t.Errorf("Belowground(-10) = %v, want 0", v)
	}

	v := Belowground(100)
	if want := math.Exp(-1.085 + 0.9256*math.Log(100)); math.Abs(v-want) > 1e-12 {
		t.Errorf("Belowground(100) = %v, want %v", v, want)
	}
	// Roots are a minority share of a large tree.
	if v <= 0 || v >= 100 {
		t.Errorf("Belowground(100) = %v out of range", v)
	}

	// Monotone in aboveground biomass.
	if Belowground(200) <= Belowground(100) {
		t.Error("Belowground should grow with aboveground biomass")
	}
}
