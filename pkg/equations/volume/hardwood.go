package volume

import "math"

// newDNRHardwood covers the DNR report 24 hardwood equations: a published
// CVTS regression with the remaining cubic metrics recovered through the
// standard ratios and CV8 derived from CV4.
func newDNRHardwood(number, desc string, cvts metricFn) *Equation {
	tarif := tarifFromCVTS(cvts)
	cv4 := cv4FromTarif(tarif)
	cv8 := func(dbh, ht float64) float64 {
		if dbh < 11 || ht <= 0 {
			return 0
		}
		return rc8(dbh) * cv4(dbh, ht)
	}
	return newHardwoodNoX(number, desc, cvts, tarif, cvtFromTarif(tarif), cv4, cv8)
}

// newPillsbury covers the Pillsbury/Kirkley PNW-414 California hardwoods,
// which publish direct power-form regressions for CVTS, CV4, and CV8.
func newPillsbury(number, desc string, cvts, cv4, cv8 metricFn) *Equation {
	cvt := func(dbh, ht float64) float64 {
		if dbh < 1 || ht <= 0 {
			return 0
		}
		return cvts(dbh, ht) * rts(dbh)
	}
	tarif := func(dbh, ht float64) float64 {
		if dbh <= 0 || ht <= 0 {
			return 0
		}
		return cv8(dbh, ht) * 0.912733 / (rc8(dbh) * (basalArea(dbh) - 0.087266))
	}
	return newHardwoodWithX(number, desc, cvts, tarif, cvt, cv4, cv8)
}

// powerForm builds the a*dbh^b*ht^c regressions used by PNW-414, gated at
// the minimum dbh for the metric.
func powerForm(a, b, c, minDBH float64) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < minDBH || ht <= 0 {
			return 0
		}
		return a * math.Pow(dbh, b) * math.Pow(ht, c)
	}
}

// powerFormFC builds the PNW-414 CV8 regressions that carry a form class
// term. The form class table gives taper percent at 16 feet by dbh class;
// trees still 9 inches or larger at 9 feet score a form class of 10.
func powerFormFC(a, b, c, d float64, ff [4]float64) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 11 || ht <= 0 {
			return 0
		}
		var f float64
		switch {
		case dbh < 21:
			f = ff[0]
		case dbh < 31:
			f = ff[1]
		case dbh < 41:
			f = ff[2]
		default:
			f = ff[3]
		}
		ff9ft := 100 + (f-100)*(9-4.5)/(16-4.5)
		fc := 1.0
		if ff9ft/100*dbh >= 9 && ht >= 9 {
			fc = 10
		}
		return a * math.Pow(dbh, b) * math.Pow(ht, c) * math.Pow(fc, d)
	}
}

var (
	// Equation 25: Red alder (Curtis/Bruce, PNW-56). The source tables were
	// built from trees at least 18 feet tall, so height is floored at 18.
	Eq25 = register(func() *Equation {
		cvt := func(dbh, ht float64) float64 {
			ht = math.Max(ht, 18)
			if dbh < 1 {
				return 0
			}
			z := (ht - 0.5 - dbh/24.0) / (ht - 4.5)
			z25 := math.Pow(z, 2.5)
			z4 := math.Pow(z, 4.0)
			z33 := math.Pow(z, 33.0)
			z41 := math.Pow(z, 41.0)
			f := 0.3651*z25 - 7.9032*z25*dbh/1000.0 + 3.295*z25*ht/1000.0 -
				1.9856*z25*ht*dbh/100000.0 - 2.9668*z25*ht*ht/1000000.0 +
				1.5092*z25*math.Sqrt(ht)/1000.0 + 4.9395*z4*dbh/1000.0 -
				2.05937*z4*ht/1000.0 + 1.5042*z33*ht*dbh/1000000.0 -
				1.1433*z33*math.Sqrt(ht)/10000.0 + 1.809*z41*ht*ht/10000000.0
			return 0.00545415 * dbh * dbh * (ht - 4.5) * f
		}
		tarif := func(dbh, ht float64) float64 {
			ht = math.Max(ht, 18)
			if dbh <= 0 {
				return 0
			}
			return cvt(dbh, ht) * 0.912733 / (rts(dbh) * cvtsTerm(dbh))
		}
		cvts := func(dbh, ht float64) float64 {
			ht = math.Max(ht, 18)
			if dbh < 1 {
				return 0
			}
			return math.Max(tarif(dbh, ht)*cvtsTerm(dbh)/0.912733, 0)
		}
		cv4 := func(dbh, ht float64) float64 {
			ht = math.Max(ht, 18)
			if dbh < 5 {
				return 0
			}
			return tarif(dbh, ht) * (basalArea(dbh) - 0.087266) / 0.912733
		}
		cv8 := func(dbh, ht float64) float64 {
			ht = math.Max(ht, 18)
			if dbh < 11 {
				return 0
			}
			return rc8(dbh) * cv4(dbh, ht)
		}
		return newHardwoodNoX("25", "Red alder (Curtis/Bruce, PNW-56)",
			cvts, tarif, cvt, cv4, cv8)
	}())

	// Equation 26: Red alder (BC alder, DNR report 24, 1977).
	Eq26 = register(newDNRHardwood("26", "Red alder (BC alder, DNR report 24, 1977)",
		log10CVTS(-2.672775, 1.920617, 1.074024)))

	// Equation 27: Black cottonwood (BC cottonwood, DNR report 24, 1977).
	Eq27 = register(newDNRHardwood("27", "Black cottonwood (BC cottonwood, DNR report 24, 1977)",
		log10CVTS(-2.945047, 1.803973, 1.238853)))

	// Equation 28: Aspen (BC aspen, DNR report 24, 1977).
	Eq28 = register(newDNRHardwood("28", "Aspen (BC aspen, DNR report 24, 1977)",
		log10CVTS(-2.635360, 1.946034, 1.024793)))

	// Equation 29: Birch (BC birch, DNR report 24, 1977).
	Eq29 = register(newDNRHardwood("29", "Birch (BC birch, DNR report 24, 1977)",
		log10CVTS(-2.757813, 1.911681, 1.105403)))

	// Equation 30: Bigleaf maple (BC maple, DNR report 24, 1977).
	Eq30 = register(newDNRHardwood("30", "Bigleaf maple (BC maple, DNR report 24, 1977)",
		log10CVTS(-2.770324, 1.885813, 1.119043)))

	// Equation 31: Eucalyptus (MacLean/Farrenkopf memo, 1983).
	Eq31 = register(newDNRHardwood("31", "Eucalyptus (MacLean/Farrenkopf 1983)",
		func(dbh, ht float64) float64 {
			if dbh < 1 || ht <= 0 {
				return 0
			}
			return 0.0016144 * dbh * dbh * ht
		}))

	// Equation 32: Giant chinquapin (Pillsbury/Kirkley, PNW-414).
	Eq32 = register(newPillsbury("32", "Giant chinquapin (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0120372263, 2.02232, 0.68638, 1),
		powerForm(0.0055212937, 2.07202, 0.77467, 5),
		powerForm(0.0018985111, 2.38285, 0.77105, 11)))

	// Equation 33: California laurel (Pillsbury/Kirkley, PNW-414).
	Eq33 = register(newPillsbury("33", "California laurel (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0057821322, 1.94553, 0.88389, 1),
		powerForm(0.0016380753, 2.05910, 1.05293, 5),
		powerForm(0.0018985111, 2.38285, 0.77105, 11)))

	// Equation 34: Tanoak (Pillsbury/Kirkley, PNW-414).
	Eq34 = register(newPillsbury("34", "Tanoak (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0058870024, 1.94165, 0.86562, 1),
		powerForm(0.0005774970, 2.19576, 1.14078, 5),
		powerForm(0.0002526443, 2.30949, 1.21069, 11)))

	// Equation 35: California white oak (Pillsbury/Kirkley, PNW-414).
	Eq35 = register(newPillsbury("35", "California white oak (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0042870077, 2.33631, 0.74872, 1),
		powerForm(0.0009684363, 2.39565, 0.98878, 5),
		powerForm(0.0001880044, 1.87346, 1.62443, 11)))

	// Equation 36: Engelmann oak (Pillsbury/Kirkley, PNW-414).
	// No CV8 regression was published; CV4 stands in above the 11-inch gate.
	Eq36 = register(newPillsbury("36", "Engelmann oak (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0191453191, 2.40248, 0.28060, 1),
		powerForm(0.0053866353, 2.61268, 0.31103, 5),
		powerForm(0.0053866353, 2.61268, 0.31103, 11)))

	// Equation 37: Bigleaf maple (Pillsbury/Kirkley, PNW-414, form class).
	Eq37 = register(newPillsbury("37", "Bigleaf maple (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0101786350, 2.22462, 0.57561, 1),
		powerForm(0.0034214162, 2.35347, 0.69586, 5),
		powerFormFC(0.0004236332, 2.10316, 1.08584, 0.40017, [4]float64{84, 82, 81, 80})))

	// Equation 38: California black oak (Pillsbury/Kirkley, PNW-414, form class).
	Eq38 = register(newPillsbury("38", "California black oak (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0070538108, 1.97437, 0.85034, 1),
		powerForm(0.0036795695, 2.12635, 0.83339, 5),
		powerFormFC(0.0012478663, 2.68099, 0.42441, 0.28385, [4]float64{95, 84, 82, 82})))

	// Equation 39: Blue oak (Pillsbury/Kirkley, PNW-414, form class).
	Eq39 = register(newPillsbury("39", "Blue oak (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0125103008, 2.33089, 0.46100, 1),
		powerForm(0.0042324071, 2.53987, 0.50591, 5),
		powerFormFC(0.0036912408, 1.79732, 0.83884, 0.15958, [4]float64{95, 86, 82, 82})))

	// Equation 40: Pacific madrone (Pillsbury/Kirkley, PNW-414, form class).
	Eq40 = register(newPillsbury("40", "Pacific madrone (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0067322665, 1.96628, 0.83458, 1),
		powerForm(0.0025616425, 1.99295, 1.01532, 5),
		powerFormFC(0.0006181530, 1.72635, 1.26462, 0.37868, [4]float64{86, 82, 79, 79})))

	// Equation 41: Oregon white oak (Pillsbury/Kirkley, PNW-414, form class).
	Eq41 = register(newPillsbury("41", "Oregon white oak (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0072695058, 2.14321, 0.74220, 1),
		powerForm(0.0024277027, 2.25575, 0.87108, 5),
		powerFormFC(0.0008281647, 2.10651, 0.91215, 0.32652, [4]float64{95, 89, 89, 89})))

	// Equation 42: Canyon live oak (Pillsbury/Kirkley, PNW-414, form class).
	Eq42 = register(newPillsbury("42", "Canyon live oak (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0097438611, 2.20527, 0.61190, 1),
		powerForm(0.0031670596, 2.32519, 0.74348, 5),
		powerFormFC(0.0006540144, 2.24437, 0.81358, 0.43381, [4]float64{94, 85, 80, 80})))

	// Equation 43: Coast live oak (Pillsbury/Kirkley, PNW-414, form class).
	Eq43 = register(newPillsbury("43", "Coast live oak (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0065261029, 2.31958, 0.62528, 1),
		powerForm(0.0024574847, 2.53284, 0.60764, 5),
		powerFormFC(0.0006540144, 2.24437, 0.81358, 0.43381, [4]float64{95, 86, 82, 82})))

	// Equation 44: Interior live oak (Pillsbury/Kirkley, PNW-414, form class).
	Eq44 = register(newPillsbury("44", "Interior live oak (Pillsbury/Kirkley, PNW-414)",
		powerForm(0.0136818837, 2.02989, 0.63257, 1),
		powerForm(0.0041192264, 2.14915, 0.77843, 5),
		powerFormFC(0.0006540144, 2.24437, 0.81358, 0.43381, [4]float64{95, 95, 95, 95})))

	// Equation 45: Mountain mahogany (Chojnacky 1985).
	Eq45 = register(newStemsOnly("45", "Mountain mahogany (Chojnacky 1985)", Hardwood,
		func(drc, ht float64, stems int) float64 {
			if drc < 1 || ht <= 0 {
				return 0
			}
			factor := 1.0
			if drc >= 3 && ht > 0 {
				factor = drc * drc * ht
			}
			base := -0.13363 + 0.128222*math.Cbrt(factor)
			if stems <= 1 {
				base += 0.080208
			}
			return math.Max(base*base*base, 0.1)
		}))

	// Equation 46: Mesquite (Chojnacky 1985).
	Eq46 = register(newStemsOnly("46", "Mesquite (Chojnacky 1985)", Hardwood,
		func(drc, ht float64, stems int) float64 {
			if drc < 1 || ht <= 0 {
				return 0
			}
			v := drc * drc * ht / 1000
			var cvts float64
			switch {
			case v <= 2 && stems <= 1:
				cvts = -0.043 + 2.3378*v + 0.8024*v*v
			case v <= 2:
				cvts = 0.020 + 1.8972*v + 0.5756*v*v
			default:
				cvts = 9.586 + 2.3378*v - 12.839/v
			}
			return math.Max(cvts, 0.1)
		}))
)
