// Package biomass implements the tree biomass component equations required
// by the California Air Resources Board (ARB) for forest carbon projects in
// California, Oregon, or Washington, published as "Aboveground Live-Tree
// Biomass Equations" with the 2015 US Forest Projects protocol.
//
// Bark equations (BB 1-39) and live branch equations (BLB 1-29) take
// diameter at breast height in centimeters and total height in meters and
// return kilograms of dry biomass. Most originate in the BIOPAK library; a
// few bark equations for California hardwoods work by differencing stem
// volume inside and outside bark and need a wood density (lbs per cubic
// foot) to convert the shell volume to mass.
//
// Belowground biomass comes from Cairns et al. (1997) as a function of total
// aboveground biomass.
//
// Negative estimates from the published forms are clipped to zero, and trees
// without a positive diameter and height carry no biomass.
package biomass

import (
	"fmt"
	"math"
	"sort"

	"github.com/ecotrust/arbcarbon/pkg/errors"
)

// Component distinguishes the two aboveground biomass component registries.
type Component string

// Biomass components.
const (
	Bark   Component = "bark"
	Branch Component = "branch"
)

// Equation is one published biomass component equation.
type Equation struct {
	component Component
	number    int
	desc      string
	fn        func(dbh, ht, density float64) float64
}

// Component returns which biomass component the equation estimates.
func (e *Equation) Component() Component { return e.component }

// Number returns the equation number within its component series.
func (e *Equation) Number() int { return e.number }

// Description returns the equation source citation.
func (e *Equation) Description() string { return e.desc }

// String returns the conventional equation label, e.g. "BB_12" or "BLB_7".
func (e *Equation) String() string {
	if e.component == Bark {
		return fmt.Sprintf("BB_%d", e.number)
	}
	return fmt.Sprintf("BLB_%d", e.number)
}

// Calc estimates component biomass in kilograms for one tree. Diameter is in
// centimeters, height in meters, and density in pounds per cubic foot (only
// the volume-differencing bark equations read it).
func (e *Equation) Calc(dbh, ht, density float64) (float64, error) {
	if err := errors.ValidateMeasurement("dbh", dbh); err != nil {
		return 0, err
	}
	if err := errors.ValidateMeasurement("height", ht); err != nil {
		return 0, err
	}
	if dbh <= 0 || ht <= 0 {
		return 0, nil
	}
	return math.Max(e.fn(dbh, ht, density), 0), nil
}

var (
	barkRegistry   = map[int]*Equation{}
	branchRegistry = map[int]*Equation{}
)

func registerBark(number int, desc string, fn func(dbh, ht, density float64) float64) *Equation {
	e := &Equation{component: Bark, number: number, desc: desc, fn: fn}
	barkRegistry[number] = e
	return e
}

func registerBranch(number int, desc string, fn func(dbh, ht, density float64) float64) *Equation {
	e := &Equation{component: Branch, number: number, desc: desc, fn: fn}
	branchRegistry[number] = e
	return e
}

// LookupBark returns bark equation BB_<number>.
func LookupBark(number int) (*Equation, error) {
	e, ok := barkRegistry[number]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no bark biomass equation BB_%d", number)
	}
	return e, nil
}

// LookupBranch returns live branch equation BLB_<number>. Number 0 is the
// null assignment for species with no published branch equation.
func LookupBranch(number int) (*Equation, error) {
	e, ok := branchRegistry[number]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no branch biomass equation BLB_%d", number)
	}
	return e, nil
}

// AllBark returns the bark equations sorted by number.
func AllBark() []*Equation { return sorted(barkRegistry) }

// AllBranch returns the branch equations sorted by number.
func AllBranch() []*Equation { return sorted(branchRegistry) }

func sorted(reg map[int]*Equation) []*Equation {
	out := make([]*Equation, 0, len(reg))
	for _, e := range reg {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].number < out[j].number })
	return out
}

// Belowground estimates belowground (root) biomass in kilograms from total
// aboveground biomass in kilograms, after Cairns, Brown, Helmer &
// Baumgardner (1997), equation 1.
func Belowground(aboveground float64) float64 {
	if aboveground <= 0 {
		return 0
	}
	return math.Exp(-1.085 + 0.9256*math.Log(aboveground))
}

// -----------------------------------------------------------------------------
// Shared regression forms
// -----------------------------------------------------------------------------

// logForm is the log-linear BIOPAK form exp(a + b*ln(dbh)), with an optional
// constant divisor for the forms published in grams.
func logForm(a, b, div float64) func(dbh, ht, density float64) float64 {
	return func(dbh, _, _ float64) float64 {
		return math.Exp(a+b*math.Log(dbh)) / div
	}
}

// d2hForm is the BIOPAK form c0 + c1*(dbh/100)^2*ht.
func d2hForm(c0, c1 float64) func(dbh, ht, density float64) float64 {
	return func(dbh, ht, _ float64) float64 {
		return c0 + c1*(dbh/100)*(dbh/100)*ht
	}
}

// expLog3 is the two-predictor log-linear form exp(a + b*ln(dbh) + c*ln(ht)).
func expLog3(a, b, c, dbh, ht float64) float64 {
	return math.Exp(a + b*math.Log(dbh) + c*math.Log(ht))
}

// circumferenceForm is the BIOPAK form regressed on circumference rather
// than diameter.
func circumferenceForm(a, b float64) func(dbh, ht, density float64) float64 {
	return func(dbh, _, _ float64) float64 {
		return math.Exp(a + b*math.Log(dbh*math.Pi))
	}
}

// shellForm differences Pillsbury stem volume outside and inside bark. The
// outside-bark diameter is recovered as (dbh+off)/div, the shell volume is
// converted to cubic feet, and wood density turns it into kilograms.
func shellForm(off, div, a, b, c float64) func(dbh, ht, density float64) float64 {
	return func(dbh, ht, density float64) float64 {
		adbh := (dbh + off) / div
		htc := math.Pow(ht, c)
		outer := a * math.Pow(adbh, b) * htc
		inner := a * math.Pow(dbh, b) * htc
		return (outer - inner) * 35.30 * density / 2.2046
	}
}
