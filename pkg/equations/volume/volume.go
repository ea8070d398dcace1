// Package volume implements the tree stem volume equations required by the
// California Air Resources Board (ARB) for forest carbon projects located in
// California, Oregon, or Washington.
//
// The equations were published by ARB as "Volume Equations for California,
// Oregon, and Washington" (2015 US Forest Projects protocol). Each numbered
// equation covers one species group and produces up to eleven volume metrics
// from diameter at breast height (inches) and total height (feet):
//
//	CVTS    Cubic foot volume, including top and stump
//	TARIF   Tarif number
//	CVT     Cubic foot volume above stump
//	CV4     Cubic foot volume above stump to 4-inch top
//	CV6     Cubic foot volume above stump to 6-inch top
//	CV8     Cubic foot volume above stump to 8-inch top
//	SV616   Scribner boardfoot volume to 6-inch top with 16-foot logs
//	SV632   Scribner boardfoot volume to 6-inch top with 32-foot logs
//	SV816   Scribner boardfoot volume to 8-inch top with 16-foot logs
//	XINT6   International 1/4-inch boardfoot volume to 6-inch top
//	XINT8   International 1/4-inch boardfoot volume to 8-inch top
//
// Not every metric is defined for every equation: the softwood equations
// stop at the 6-inch sawlog metrics, and the Chojnacky shrub-form equations
// (14, 14.1, 14.2, 45, 46) define CVTS only, from diameter at root collar.
//
// Undersized trees produce zero volume rather than an error. The thresholds
// follow the published forms: CVTS and CVT require dbh >= 1 and height > 0,
// CV4 requires dbh >= 5, the 6-inch metrics require dbh >= 9, and the 8-inch
// metrics require dbh >= 11.
package volume

import (
	"math"
	"sort"

	"github.com/ecotrust/arbcarbon/pkg/errors"
)

// Metric identifies one of the volume metrics an equation can produce.
type Metric string

// The available volume metrics.
const (
	CVTS  Metric = "CVTS"
	TARIF Metric = "TARIF"
	CVT   Metric = "CVT"
	CV4   Metric = "CV4"
	CV6   Metric = "CV6"
	CV8   Metric = "CV8"
	SV616 Metric = "SV616"
	SV632 Metric = "SV632"
	SV816 Metric = "SV816"
	XINT6 Metric = "XINT6"
	XINT8 Metric = "XINT8"
)

// Metrics lists all metrics in canonical report order.
var Metrics = []Metric{CVTS, TARIF, CVT, CV4, CV6, CV8, SV616, SV632, SV816, XINT6, XINT8}

// ParseMetric normalizes and validates a metric name.
func ParseMetric(s string) (Metric, error) {
	m := Metric(toUpper(s))
	for _, known := range Metrics {
		if m == known {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidMetric, "unrecognized volume metric: %q", s)
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// Kind distinguishes softwood from hardwood equation forms.
type Kind int

// Equation kinds.
const (
	Softwood Kind = iota
	Hardwood
)

// String returns the kind as a lowercase word.
func (k Kind) String() string {
	if k == Softwood {
		return "softwood"
	}
	return "hardwood"
}

// metricFn computes one metric from dbh (inches) and height (feet).
type metricFn func(dbh, ht float64) float64

// stemsFn computes CVTS for the multi-stem shrub-form equations, which
// measure diameter at root collar instead of breast height.
type stemsFn func(drc, ht float64, stems int) float64

// Equation is one published volume equation.
type Equation struct {
	number string
	desc   string
	kind   Kind
	fns    map[Metric]metricFn
	stems  stemsFn // non-nil only for the Chojnacky equations
}

// Number returns the equation identifier, e.g. "3" or "14.1".
func (e *Equation) Number() string { return e.number }

// Description returns the species group and source citation.
func (e *Equation) Description() string { return e.desc }

// Kind reports whether this is a softwood or hardwood form.
func (e *Equation) Kind() Kind { return e.kind }

// Supports reports whether the equation defines the given metric.
func (e *Equation) Supports(m Metric) bool {
	_, ok := e.fns[m]
	return ok
}

// Metrics returns the metrics this equation defines, in canonical order.
func (e *Equation) Metrics() []Metric {
	out := make([]Metric, 0, len(e.fns))
	for _, m := range Metrics {
		if e.Supports(m) {
			out = append(out, m)
		}
	}
	return out
}

// Calc computes a single metric for a single-stemmed tree.
func (e *Equation) Calc(m Metric, dbh, ht float64) (float64, error) {
	return e.CalcStems(m, dbh, ht, 1)
}

// CalcStems computes a single metric. The stem count only affects the
// Chojnacky equations; all others ignore it.
func (e *Equation) CalcStems(m Metric, dbh, ht float64, stems int) (float64, error) {
	if err := errors.ValidateMeasurement("dbh", dbh); err != nil {
		return 0, err
	}
	if err := errors.ValidateMeasurement("height", ht); err != nil {
		return 0, err
	}
	if m == CVTS && e.stems != nil {
		return e.stems(dbh, ht, stems), nil
	}
	fn, ok := e.fns[m]
	if !ok {
		return 0, errors.New(errors.ErrCodeUnsupported,
			"metric %s is not defined for equation %s", m, e.number)
	}
	return fn(dbh, ht), nil
}

// CalcAll computes every metric the equation defines.
func (e *Equation) CalcAll(dbh, ht float64) (map[Metric]float64, error) {
	out := make(map[Metric]float64, len(e.fns))
	for _, m := range e.Metrics() {
		v, err := e.Calc(m, dbh, ht)
		if err != nil {
			return nil, err
		}
		out[m] = v
	}
	return out, nil
}

// registry holds every equation keyed by number.
var registry = map[string]*Equation{}

func register(e *Equation) *Equation {
	registry[e.number] = e
	return e
}

// Lookup returns the equation with the given number ("1".."46", "14.1", "14.2").
func Lookup(number string) (*Equation, error) {
	if err := errors.ValidateEquationNumber(number); err != nil {
		return nil, err
	}
	e, ok := registry[number]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no volume equation numbered %s", number)
	}
	return e, nil
}

// All returns every registered equation sorted by number.
func All() []*Equation {
	out := make([]*Equation, 0, len(registry))
	for _, e := range registry {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if na, nb := eqOrder(a.number), eqOrder(b.number); na != nb {
			return na < nb
		}
		return a.number < b.number
	})
	return out
}

// eqOrder sorts "14.1" between "14" and "15".
func eqOrder(num string) float64 {
	var v float64
	var frac, div float64 = 0, 1
	dot := false
	for _, c := range num {
		if c == '.' {
			dot = true
			continue
		}
		if dot {
			div *= 10
			frac = frac*10 + float64(c-'0')
		} else {
			v = v*10 + float64(c-'0')
		}
	}
	return v + frac/div
}

// -----------------------------------------------------------------------------
// Shared pieces of the published forms
// -----------------------------------------------------------------------------

// baFactor converts dbh squared (inches) to basal area (square feet).
const baFactor = 0.005454154

func basalArea(dbh float64) float64 { return baFactor * dbh * dbh }

// rts is the ratio removing stump volume from CVTS.
func rts(dbh float64) float64 { return 0.9679 - 0.1051*math.Pow(0.5523, dbh-1.5) }

// rc6 is the ratio reducing CV4 to a 6-inch top.
func rc6(dbh float64) float64 { return 0.993 - 0.993*math.Pow(0.62, dbh-6.0) }

// rc8 is the ratio reducing to an 8-inch top.
func rc8(dbh float64) float64 { return 0.983 - 0.983*math.Pow(0.65, dbh-8.6) }

// cvtsTerm is the tarif-to-CVTS expansion term. The published tables use a
// decidbh (dbh/10) argument here.
func cvtsTerm(dbh float64) float64 {
	return (1.033*(1.0+1.382937*math.Exp(-4.015292*(dbh/10.0))))*(basalArea(dbh)+0.087266) - 0.174533
}

// tarifFromCVTS converts CVTS to a tarif number using the full-dbh exponent
// carried by most of the DNR report 24 equations.
func tarifFromCVTS(cvts metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh <= 0 || ht <= 0 {
			return 0
		}
		denom := (1.033*(1.0+1.382937*math.Exp(-4.015292*dbh)))*(basalArea(dbh)+0.087266) - 0.174533
		return cvts(dbh, ht) * 0.912733 / denom
	}
}

// tarifFromCVTSDeci is the variant used by equations 1 and 2, which divide
// dbh by ten inside the exponent.
func tarifFromCVTSDeci(cvts metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh <= 0 || ht <= 0 {
			return 0
		}
		denom := (1.033*(1.0+1.382937*math.Exp(-4.105292*(dbh/10.0))))*(basalArea(dbh)+0.087266) - 0.174533
		return cvts(dbh, ht) * 0.912733 / denom
	}
}

func cv4FromTarif(tarif metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 5 || ht <= 0 {
			return 0
		}
		return tarif(dbh, ht) * (basalArea(dbh) - 0.087266) / 0.912733
	}
}

func cvtFromTarif(tarif metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 1 || ht <= 0 {
			return 0
		}
		return tarif(dbh, ht) * rts(dbh) * cvtsTerm(dbh) / 0.912733
	}
}

// -----------------------------------------------------------------------------
// Softwood shared derivations (6-inch sawlog and boardfoot metrics)
// -----------------------------------------------------------------------------

func softwoodCV6(cv4 metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 9 || ht <= 0 {
			return 0
		}
		v4 := cv4(dbh, ht)
		v6 := rc6(dbh) * v4
		if v6 > v4 {
			v6 = v4
		}
		return v6
	}
}

func softwoodSV616(tarif, cv6 metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 9 || ht <= 0 {
			return 0
		}
		t := math.Max(tarif(dbh, ht), 0.01)
		b4 := t / 0.912733
		rs616l := 0.174439 + 0.117594*math.Log10(dbh)*math.Log10(b4) -
			8.210585/(dbh*dbh) + 0.236693*math.Log10(b4) -
			0.00001345*b4*b4 - 0.00001937*dbh*dbh
		return math.Max(math.Pow(10, rs616l)*cv6(dbh, ht), 0)
	}
}

func softwoodSV632(tarif, sv616 metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 9 || ht <= 0 {
			return 0
		}
		t := math.Max(tarif(dbh, ht), 0.01)
		rs632 := 1.001491 - 6.924097/t + 0.00001351*dbh*dbh
		return math.Max(rs632*sv616(dbh, ht), 0)
	}
}

func softwoodXINT6(tarif, cv6 metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 9 || ht <= 0 {
			return 0
		}
		t := tarif(dbh, ht)
		ri6 := -2.904154 + 3.466328*math.Log10(dbh*t) -
			0.02765985*dbh - 0.00008205*t*t + 11.29598/(dbh*dbh)
		return math.Max(ri6*cv6(dbh, ht), 0)
	}
}

// newSoftwood assembles a softwood equation from its primitive metrics,
// filling in the shared 6-inch sawlog and boardfoot derivations.
func newSoftwood(number, desc string, cvts, tarif, cvt, cv4 metricFn) *Equation {
	fns := map[Metric]metricFn{
		CVTS:  cvts,
		TARIF: tarif,
		CVT:   cvt,
		CV4:   cv4,
	}
	cv6 := softwoodCV6(cv4)
	sv616 := softwoodSV616(tarif, cv6)
	fns[CV6] = cv6
	fns[SV616] = sv616
	fns[SV632] = softwoodSV632(tarif, sv616)
	fns[XINT6] = softwoodXINT6(tarif, cv6)
	return &Equation{number: number, desc: desc, kind: Softwood, fns: fns}
}

// -----------------------------------------------------------------------------
// Hardwood shared derivations
// -----------------------------------------------------------------------------

// The hardwood sawlog metrics derive from adjusted CV4 and tarif values
// (cv4x, tarifx). The adjustment differs between the equations published
// with an explicit CV8 regression (WithX) and those without (NoX).

func hardwoodCV6(cv4x metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 9 || ht <= 0 {
			return 0
		}
		return math.Max(rc6(dbh)*cv4x(dbh, ht), 0)
	}
}

func hardwoodSV616(tarifx, cv6 metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 9 || ht <= 0 {
			return 0
		}
		b4 := tarifx(dbh, ht) / 0.912733
		// Published hardwood form repeats the log10(b4) term where the
		// softwood form has log10(dbh)*log10(b4).
		rs616l := 0.174439 + 0.117594*math.Log10(b4) -
			8.210585/(dbh*dbh) + 0.236693*math.Log10(b4) -
			0.00001345*b4*b4 - 0.00001937*dbh*dbh
		return math.Max(math.Pow(10, rs616l)*cv6(dbh, ht), 0)
	}
}

func hardwoodSV816(sv616 metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 11 || ht <= 0 {
			return 0
		}
		rs816 := 0.990 - 0.58*math.Pow(0.484, dbh-9.5)
		return math.Max(rs816*sv616(dbh, ht), 0)
	}
}

func hardwoodXINT6(tarifx, cv6 metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 9 || ht <= 0 {
			return 0
		}
		t := tarifx(dbh, ht)
		ri6 := -2.904154 + 3.466328*math.Log10(dbh*t) -
			0.02765985*dbh - 0.00008205*t*t + 11.29598/(dbh*dbh)
		return math.Max(ri6*cv6(dbh, ht), 0)
	}
}

func hardwoodXINT8(xint6 metricFn) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 11 || ht <= 0 {
			return 0
		}
		ri8 := 0.990 - 0.55*math.Pow(0.485, dbh-9.5)
		return math.Max(xint6(dbh, ht)*ri8, 0)
	}
}

// newHardwoodNoX assembles a hardwood equation without a direct CV8
// regression: cv4x adjusts CVT down to a 4-inch top and tarifx is recovered
// from the derived CV8.
func newHardwoodNoX(number, desc string, cvts, tarif, cvt, cv4, cv8 metricFn) *Equation {
	cv4x := func(dbh, ht float64) float64 {
		d3 := dbh * dbh * dbh
		return cvt(dbh, ht) * (0.99875 - 43.336/d3 - 124.717/(d3*dbh) +
			0.193437*ht/d3 + 479.83/(d3*ht))
	}
	tarifx := func(dbh, ht float64) float64 {
		return cv8(dbh, ht) * 0.912733 /
			(0.983 - 0.983*math.Pow(0.65, dbh-8.6)*basalArea(dbh) - 0.087266)
	}
	return newHardwood(number, desc, cvts, tarif, cvt, cv4, cv8, cv4x, tarifx)
}

// newHardwoodWithX assembles a hardwood equation published with its own CV8
// regression: the sawlog derivations use CVT and tarif directly.
func newHardwoodWithX(number, desc string, cvts, tarif, cvt, cv4, cv8 metricFn) *Equation {
	return newHardwood(number, desc, cvts, tarif, cvt, cv4, cv8, cvt, tarif)
}

func newHardwood(number, desc string, cvts, tarif, cvt, cv4, cv8, cv4x, tarifx metricFn) *Equation {
	fns := map[Metric]metricFn{
		CVTS:  cvts,
		TARIF: tarif,
		CVT:   cvt,
		CV4:   cv4,
		CV8:   cv8,
	}
	cv6 := hardwoodCV6(cv4x)
	sv616 := hardwoodSV616(tarifx, cv6)
	xint6 := hardwoodXINT6(tarifx, cv6)
	fns[CV6] = cv6
	fns[SV616] = sv616
	fns[SV816] = hardwoodSV816(sv616)
	fns[XINT6] = xint6
	fns[XINT8] = hardwoodXINT8(xint6)
	return &Equation{number: number, desc: desc, kind: Hardwood, fns: fns}
}
