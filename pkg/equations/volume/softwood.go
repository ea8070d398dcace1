package volume

import "math"

// Builders shared by several softwood families.

// newDNRSoftwood covers the DNR report 24 style equations: a published CVTS
// regression with tarif, CVT, and CV4 recovered through the standard ratios.
func newDNRSoftwood(number, desc string, cvts metricFn) *Equation {
	tarif := tarifFromCVTS(cvts)
	return newSoftwood(number, desc, cvts, tarif, cvtFromTarif(tarif), cv4FromTarif(tarif))
}

// newPNW266 covers the MacLean/Berger PNW-266 equations, which publish a
// 4-inch-top form factor (cf4) instead of CVTS. Trees under 6 inches use a
// tarif interpolated from a 6-inch reference tree.
func newPNW266(number, desc string, cf4 func(dbh, ht float64) float64) *Equation {
	cv4 := func(dbh, ht float64) float64 {
		if dbh < 5 || ht <= 0 {
			return 0
		}
		return cf4(dbh, ht) * basalArea(dbh) * ht
	}
	tarif := func(dbh, ht float64) float64 {
		if dbh <= 0 || ht <= 0 {
			return 0
		}
		if dbh < 6 {
			cv4Ref := cf4(6, ht) * basalArea(6) * ht
			tarifRef := math.Max(cv4Ref*0.912733/(basalArea(6)-0.087266), 0.01)
			d := 6.0 - dbh
			return math.Max(tarifRef*(0.5*d*d+(1.0+0.063*d*d)), 0.01)
		}
		return math.Max(cv4(dbh, ht)*0.912733/(basalArea(dbh)-0.087266), 0.01)
	}
	cvts := func(dbh, ht float64) float64 {
		if dbh < 1 || ht <= 0 {
			return 0
		}
		if dbh < 6 {
			return tarif(dbh, ht) * cvtsTerm(dbh)
		}
		return cv4(dbh, ht) * cvtsTerm(dbh) / (basalArea(dbh) - 0.087266)
	}
	return newSoftwood(number, desc, cvts, tarif, cvtFromTarif(tarif), cv4)
}

// newStemsOnly covers the Chojnacky pinyon-juniper and shrub-form equations,
// which publish CVTS only and measure diameter at root collar.
func newStemsOnly(number, desc string, kind Kind, fn stemsFn) *Equation {
	cvts := func(drc, ht float64) float64 { return fn(drc, ht, 1) }
	return &Equation{
		number: number,
		desc:   desc,
		kind:   kind,
		fns:    map[Metric]metricFn{CVTS: cvts},
		stems:  fn,
	}
}

// log10CVTS builds the common log10-linear CVTS regression of DNR report 24.
func log10CVTS(a, b, c float64) metricFn {
	return func(dbh, ht float64) float64 {
		if dbh < 1 || ht <= 0 {
			return 0
		}
		return math.Pow(10, a+b*math.Log10(dbh)+c*math.Log10(ht))
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

var (
	// Equation 1: Douglas-fir (Brackett, DNR report 24, 1977).
	Eq1 = register(func() *Equation {
		cvts := func(dbh, ht float64) float64 {
			if dbh < 1 || ht <= 0 {
				return 0
			}
			ld, lh := math.Log10(dbh), math.Log10(ht)
			cvtsl := -3.21809 + 0.04948*lh*ld - 0.15664*ld*ld +
				2.02132*ld + 1.63408*lh - 0.16185*lh*lh
			return math.Pow(10, cvtsl)
		}
		tarif := tarifFromCVTSDeci(cvts)
		return newSoftwood("1", "Douglas-fir (Weyerhaeuser-DNR report 24, 1977)",
			cvts, tarif, cvtFromTarif(tarif), cv4FromTarif(tarif))
	}())

	// Equation 2: Douglas-fir (Summerfield, DNR memo, 1980).
	Eq2 = register(func() *Equation {
		cvts := func(dbh, ht float64) float64 {
			if dbh < 1 || ht <= 0 {
				return 0
			}
			return math.Exp(-6.110493 + 1.81306*math.Log(dbh) + 1.083884*math.Log(ht))
		}
		tarif := tarifFromCVTSDeci(cvts)
		return newSoftwood("2", "Douglas-fir (DNR memo, Summerfield 1980)",
			cvts, tarif, cvtFromTarif(tarif), cv4FromTarif(tarif))
	}())

	// Equation 3: Douglas-fir (MacLean/Berger, PNW-266).
	Eq3 = register(newPNW266("3", "Douglas-fir (USDA-FS research note PNW-266)",
		func(dbh, ht float64) float64 {
			return clamp(0.248569+0.0253524*(ht/dbh)-0.0000560175*(ht*ht/dbh), 0.3, 0.4)
		}))

	// Equation 4: Ponderosa pine (Summerfield, DNR memo, 1980).
	Eq4 = register(newDNRSoftwood("4", "Ponderosa pine (DNR memo, Summerfield 1980)",
		func(dbh, ht float64) float64 {
			if dbh < 1 || ht <= 0 {
				return 0
			}
			lh := math.Log(ht)
			cvtsl := -8.521558 + 1.977243*math.Log(dbh) - 0.105288*lh*lh +
				136.0489/(ht*ht) + 1.99546*lh
			return math.Exp(cvtsl)
		}))

	// Equation 5: Ponderosa pine (MacLean/Berger, PNW-266).
	Eq5 = register(newPNW266("5", "Ponderosa pine (USDA-FS research note PNW-266)",
		func(dbh, ht float64) float64 {
			return clamp(0.402060-0.899914/dbh, 0.3, 0.4)
		}))

	// Equation 6: Western hemlock (Chambers/Foltz, DNR note 27, 1979).
	Eq6 = register(newDNRSoftwood("6", "Western hemlock (DNR note 27, 1979)",
		func(dbh, ht float64) float64 {
			if dbh < 1 || ht <= 0 {
				return 0
			}
			return math.Pow(10, -2.72170+2.00857*math.Log10(dbh)+1.08620*math.Log10(ht)-0.00568*dbh)
		}))

	// Equation 7: Western hemlock (Browne, BC Forest Service, 1962).
	Eq7 = register(newDNRSoftwood("7", "Western hemlock (Browne 1962, BC Forest Service)",
		log10CVTS(-2.663834, 1.79023, 1.124873)))

	// Equation 8: Western redcedar, interior (DNR report 24, 1977).
	Eq8 = register(newDNRSoftwood("8", "Western redcedar interior (DNR report 24, 1977)",
		log10CVTS(-2.464614, 1.701993, 1.067038)))

	// Equation 9: Western redcedar, coast (DNR report 24, 1977).
	Eq9 = register(newDNRSoftwood("9", "Western redcedar coast (DNR report 24, 1977)",
		log10CVTS(-2.379642, 1.682300, 1.039712)))

	// Equation 10: True firs, interior balsam (DNR report 24, 1977).
	Eq10 = register(newDNRSoftwood("10", "True firs interior balsam (DNR report 24, 1977)",
		log10CVTS(-2.502332, 1.864963, 1.004903)))

	// Equation 11: True firs, coast balsam (DNR report 24, 1977).
	Eq11 = register(newDNRSoftwood("11", "True firs coast balsam (DNR report 24, 1977)",
		log10CVTS(-2.575642, 1.806775, 1.094665)))

	// Equation 12: Sitka spruce, interior (DNR report 24, 1977).
	Eq12 = register(newDNRSoftwood("12", "Sitka spruce interior (DNR report 24, 1977)",
		log10CVTS(-2.539944, 1.841226, 1.034051)))

	// Equation 13: Sitka spruce, mature (DNR report 24, 1977).
	Eq13 = register(newDNRSoftwood("13", "Sitka spruce mature (DNR report 24, 1977)",
		log10CVTS(-2.700574, 1.754171, 1.164531)))

	// Equation 14: Other junipers (Chojnacky 1985).
	Eq14 = register(newStemsOnly("14", "Other junipers (Chojnacky 1985)", Softwood,
		func(drc, ht float64, stems int) float64 {
			if drc < 1 || ht <= 0 {
				return 0
			}
			factor := 0.0
			if drc >= 3 && ht > 0 {
				factor = drc * drc * ht
			}
			base := -0.13386 + 0.133726*math.Cbrt(factor)
			if stems <= 1 {
				base += 0.036329
			}
			return math.Max(base*base*base, 0.1)
		}))

	// Equation 14.1: Singleleaf pinyon (Chojnacky 1985).
	Eq14_1 = register(newStemsOnly("14.1", "Singleleaf pinyon (Chojnacky 1985)", Softwood,
		func(drc, ht float64, stems int) float64 {
			if drc < 1 || ht <= 0 {
				return 0
			}
			factor := 0.0
			if drc >= 3 && ht > 0 {
				factor = drc * drc * ht
			}
			base := -0.14240 + 0.148190*math.Cbrt(factor)
			if stems <= 1 {
				base -= 0.16712
			}
			return math.Max(base*base*base, 0.1)
		}))

	// Equation 14.2: Rocky Mountain juniper (Chojnacky 1985).
	Eq14_2 = register(newStemsOnly("14.2", "Rocky Mountain juniper (Chojnacky 1985)", Softwood,
		func(drc, ht float64, _ int) float64 {
			if drc < 1 || ht <= 0 {
				return 0
			}
			factor := 0.0
			if drc >= 3 && ht > 0 {
				factor = drc * drc * ht
			}
			base := 0.02434 + 0.119106*math.Cbrt(factor)
			return math.Max(base*base*base, 0.1)
		}))

	// Equation 15: Lodgepole pine (DNR report 24, 1977).
	Eq15 = register(newDNRSoftwood("15", "Lodgepole pine (DNR report 24, 1977)",
		log10CVTS(-2.615591, 1.847504, 1.085772)))

	// Equation 16: Lodgepole pine (MacLean/Berger, PNW-266).
	Eq16 = register(newPNW266("16", "Lodgepole pine (USDA-FS research note PNW-266)",
		func(dbh, ht float64) float64 {
			return clamp(0.422709-0.0000612236*(ht*ht/dbh), 0.3, 0.4)
		}))

	// Equation 17: Mountain hemlock (Bell et al., OSU research bulletin 35).
	Eq17 = register(newDNRSoftwood("17", "Mountain hemlock (OSU research bulletin 35)",
		func(dbh, ht float64) float64 {
			if dbh < 1 || ht <= 0 {
				return 0
			}
			return 0.001106485 * math.Pow(dbh, 1.8140497) * math.Pow(ht, 1.2744923)
		}))

	// Equation 18: Shasta red fir (MacLean/Berger, PNW-266).
	Eq18 = register(newPNW266("18", "Shasta red fir (USDA-FS research note PNW-266)",
		func(dbh, ht float64) float64 {
			return clamp(0.231237+0.028176*(ht/dbh), 0.3, 0.4)
		}))

	// Equation 19: Incense cedar (MacLean/Berger, PNW-266).
	// The form factor has no upper clip for this species.
	Eq19 = register(newPNW266("19", "Incense cedar (USDA-FS research note PNW-266)",
		func(dbh, ht float64) float64 {
			return math.Max(0.225786+4.44236/ht, 0.27)
		}))

	// Equation 20: Sugar pine (MacLean/Berger, PNW-266).
	Eq20 = register(newPNW266("20", "Sugar pine (USDA-FS research note PNW-266)",
		func(dbh, ht float64) float64 {
			return clamp(0.358550-0.488134/dbh, 0.3, 0.4)
		}))

	// Equation 21: Western juniper (Chittester/MacLean, PNW-420).
	Eq21 = register(func() *Equation {
		cvts := func(dbh, ht float64) float64 {
			if dbh < 1 || ht <= 0 {
				return 0
			}
			hr := ht / (ht - 4.5)
			v := baFactor * (0.30708901 + 0.00086157622*ht - 0.0037255243*dbh*ht/(ht-4.5)) *
				dbh * dbh * ht * hr * hr
			return math.Max(v, 0)
		}
		tarif := tarifFromCVTS(cvts)
		cv4 := func(dbh, ht float64) float64 {
			if dbh < 5 || ht <= 0 {
				return 0
			}
			return (cvts(dbh, ht)+3.48)/(1.18052+0.32736*math.Exp(-0.1*dbh)) - 2.948
		}
		return newSoftwood("21", "Western juniper (Chittester/MacLean, PNW-420)",
			cvts, tarif, cvtFromTarif(tarif), cv4)
	}())

	// Equation 22: Western larch (DNR report 24, 1977).
	Eq22 = register(newDNRSoftwood("22", "Western larch (DNR report 24, 1977)",
		log10CVTS(-2.624325, 1.847123, 1.044007)))

	// Equation 23: White fir (MacLean/Berger, PNW-266).
	Eq23 = register(newPNW266("23", "White fir (USDA-FS research note PNW-266)",
		func(dbh, ht float64) float64 {
			return clamp(0.299039+1.91272/ht+0.0000367217*(ht*ht/dbh), 0.3, 0.4)
		}))

	// Equation 24: Redwood (Krumland/Wensel 1975).
	Eq24 = register(newDNRSoftwood("24", "Redwood (Krumland/Wensel 1975)",
		func(dbh, ht float64) float64 {
			if dbh < 1 || ht <= 0 {
				return 0
			}
			return math.Exp(-6.2597 + 1.9967*math.Log(dbh) + 0.9642*math.Log(ht))
		}))
)
