package biomass

// Bark biomass equations BB_1 through BB_39. The BIOPAK equation numbers in
// the descriptions refer to the library the protocol sourced each form from.

var (
	BB1  = registerBark(1, "BIOPAK 379", logForm(2.1069, 2.7271, 1000))
	BB2  = registerBark(2, "BIOPAK 887", d2hForm(0.6, 16.4))
	BB3  = registerBark(3, "BIOPAK 917", d2hForm(1.0, 17.2))
	BB4  = registerBark(4, "BIOPAK 382", logForm(1.47146, 2.8421, 1000))
	BB5  = registerBark(5, "BIOPAK 251", logForm(2.79189, 2.4313, 1000))
	BB6  = registerBark(6, "BIOPAK 845", d2hForm(1.3, 12.6))
	BB7  = registerBark(7, "BIOPAK 875", d2hForm(4.5, 9.3))
	BB8  = registerBark(8, "BIOPAK 5", logForm(-4.3103, 2.4300, 1))
	BB9  = registerBark(9, "BIOPAK 705", func(dbh, ht, _ float64) float64 {
		return expLog3(-3.6263, 1.34077, 0.8567, dbh, ht)
	})
	BB10 = registerBark(10, "BIOPAK 391", logForm(2.183174, 2.6610, 1000))
	BB11 = registerBark(11, "BIOPAK 899", d2hForm(1.2, 11.2))
	BB12 = registerBark(12, "BIOPAK 385", logForm(-13.3146, 2.8594, 1))
	BB13 = registerBark(13, "BIOPAK 461", func(dbh, ht, _ float64) float64 {
		return 0.336 + 0.00058*dbh*dbh*ht
	})
	BB14 = registerBark(14, "BIOPAK 904", d2hForm(3.2, 9.1))
	BB15 = registerBark(15, "BIOPAK 174", logForm(-4.371, 2.259, 1))
	BB16 = registerBark(16, "BIOPAK 54", circumferenceForm(-10.175, 2.6333))
	BB17 = registerBark(17, "BIOPAK 394", logForm(7.189689, 1.5837, 1000))
	BB18 = registerBark(18, "BIOPAK 942", d2hForm(1.3, 27.6))

	// BB_19 is assigned to species whose bark is inseparable from the wood;
	// the protocol defines it as zero.
	BB19 = registerBark(19, "defined zero", func(_, _, _ float64) float64 { return 0 })

	BB20 = registerBark(20, "BIOPAK 275", logForm(-4.6424, 2.4617, 1))
	BB21 = registerBark(21, "BIOPAK 911", d2hForm(0.9, 27.4))
	BB22 = registerBark(22, "BIOPAK 881", d2hForm(1.0, 15.6))
	BB23 = registerBark(23, "BIOPAK 923", d2hForm(1.8, 9.6))
	BB24 = registerBark(24, "BIOPAK 893", d2hForm(2.4, 15.0))
	BB25 = registerBark(25, "BIOPAK 857", d2hForm(3.6, 18.2))
	BB26 = registerBark(26, "BIOPAK 455", func(dbh, ht, _ float64) float64 {
		return -0.025 + 0.00134*dbh*dbh*ht
	})
	BB27 = registerBark(27, "BIOPAK 948", d2hForm(-1.2, 29.1))
	BB28 = registerBark(28, "BIOPAK 930", d2hForm(1.2, 15.5))

	// Volume-differencing forms for California hardwoods.
	BB29 = registerBark(29, "bigleaf maple shell volume", shellForm(-0.21235, 0.94782, 0.0000246916, 2.354347, 0.69586))
	BB30 = registerBark(30, "California black oak shell volume", shellForm(0.68133, 0.95767, 0.0000386403, 2.12635, 0.83339))
	BB31 = registerBark(31, "canyon live oak shell volume", shellForm(0.48584, 0.96147, 0.0000248325, 2.32519, 0.74348))
	BB32 = registerBark(32, "golden chinkapin shell volume", shellForm(-0.39534, 0.90182, 0.000056884, 2.07202, 0.77467))
	BB33 = registerBark(33, "California laurel shell volume", shellForm(0.32491, 0.96579, 0.0000237733, 2.05910, 1.05293))
	BB34 = registerBark(34, "Pacific madrone shell volume", shellForm(0.03425, 0.98155, 0.0000378129, 1.99295, 1.01532))
	BB35 = registerBark(35, "Oregon white oak shell volume", shellForm(0.78034, 0.95956, 0.0000236325, 2.25575, 0.87108))
	BB36 = registerBark(36, "tanoak shell volume", shellForm(4.1177, 0.95354, 0.0000081905, 2.19576, 1.14078))
	BB37 = registerBark(37, "blue oak shell volume", shellForm(0.44003, 0.95354, 0.0000204864, 2.53987, 0.50591))

	BB38 = registerBark(38, "BIOPAK", d2hForm(3.3, 9.0))
	BB39 = registerBark(39, "BIOPAK 936", d2hForm(-1.2, 24.0))
)
