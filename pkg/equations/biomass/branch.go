package biomass

import "math"

// Live branch biomass equations BLB_1 through BLB_29. BLB_0 is the null
// assignment for species without a published branch equation.

var (
	BLB0 = registerBranch(0, "no branch equation", func(_, _, _ float64) float64 { return 0 })

	BLB1  = registerBranch(1, "BIOPAK 889", d2hForm(13.0, 12.4))
	BLB2  = registerBranch(2, "BIOPAK 919", d2hForm(3.6, 44.2))
	BLB3  = registerBranch(3, "BIOPAK 28", logForm(-4.1817, 2.3324, 1))
	BLB4  = registerBranch(4, "BIOPAK 877", d2hForm(16.8, 14.4))
	BLB5  = registerBranch(5, "BIOPAK 847", d2hForm(9.7, 22.0))
	BLB6  = registerBranch(6, "BIOPAK 2", logForm(-3.6941, 2.1382, 1))
	BLB7  = registerBranch(7, "BIOPAK 702", func(dbh, ht, _ float64) float64 {
		return expLog3(-4.1068, 1.5177, 1.0424, dbh, ht)
	})
	BLB8  = registerBranch(8, "log-linear", logForm(-7.637, 3.3648, 1))
	BLB9  = registerBranch(9, "BIOPAK 901", d2hForm(9.5, 16.8))
	BLB10 = registerBranch(10, "BIOPAK 459", func(dbh, ht, _ float64) float64 {
		return 0.199 + 0.00381*dbh*dbh*ht
	})
	BLB11 = registerBranch(11, "BIOPAK 907", d2hForm(7.8, 12.3))
	BLB12 = registerBranch(12, "log-linear", logForm(-4.570, 2.271, 1))
	BLB13 = registerBranch(13, "BIOPAK 51", circumferenceForm(-7.2775, 2.3337))
	BLB14 = registerBranch(14, "BIOPAK 944", d2hForm(1.7, 26.2))
	BLB15 = registerBranch(15, "BIOPAK 932", d2hForm(2.5, 36.8))

	// Total branch wood less the foliage fraction.
	BLB16 = registerBranch(16, "branch wood less foliage", func(dbh, _, _ float64) float64 {
		total := math.Exp(-4.5648 + 2.6232*math.Log(dbh))
		return total - total/(2.7638+0.062*math.Pow(dbh, 1.3364))
	})

	BLB17 = registerBranch(17, "log-linear", logForm(-5.2581, 2.6045, 1))
	BLB18 = registerBranch(18, "BIOPAK 883", d2hForm(4.5, 22.7))
	BLB19 = registerBranch(19, "BIOPAK 925", d2hForm(5.3, 9.7))
	BLB20 = registerBranch(20, "BIOPAK 895", d2hForm(20.4, 7.7))
	BLB21 = registerBranch(21, "BIOPAK 446", func(dbh, ht, _ float64) float64 {
		return 0.626 + 0.00079*dbh*dbh*ht
	})
	BLB22 = registerBranch(22, "BIOPAK 859", d2hForm(12.6, 23.5))
	BLB23 = registerBranch(23, "Weyerhaeuser Co", func(dbh, ht, _ float64) float64 {
		return 0.047 + 0.00413*dbh*dbh*ht
	})
	BLB24 = registerBranch(24, "BIOPAK 913", d2hForm(4.2, 17.4))
	BLB25 = registerBranch(25, "BIOPAK 950", d2hForm(-0.6, 45.1))
	BLB26 = registerBranch(26, "BIOPAK 938", d2hForm(8.1, 21.5))

	BLB27 = registerBranch(27, "Snell et al. 1983, bigleaf maple", snellForm(4.0543553, 2.1505, 4.6762, 0.0163, 2.039))
	BLB28 = registerBranch(28, "Snell et al. 1983, Pacific madrone", snellForm(3.0136553, 2.4839, 1.6013, 0.1060, 1.309))
	BLB29 = registerBranch(29, "Snell et al. 1983, giant chinkapin", snellForm(3.1980553, 2.2699, 1.6048, 0.2979, 0.6828))
)

// snellForm is the Snell et al. (1983) hardwood branch form: gram-scale
// total branch mass discounted by a diameter-dependent foliage ratio.
func snellForm(a, b, c, d, e float64) func(dbh, ht, density float64) float64 {
	return func(dbh, _, _ float64) float64 {
		return math.Exp(a+b*math.Log(dbh)) * (1 - 1/(c+d*math.Pow(dbh, e))) / 1000
	}
}
