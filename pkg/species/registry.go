package species

import "github.com/ecotrust/arbcarbon/pkg/equations/volume"

// The built-in species table: FIA code, common name, specific gravity, and
// per-region equation assignments. Wood density derives from specific
// gravity at 62.428 lbs per cubic foot of water.

var registry = map[int]*Species{}

const waterDensity = 62.42796 // lbs per cubic foot

func add(fia int, name string, kind volume.Kind, sg float64, assignments map[Region]Assignment) {
	registry[fia] = &Species{
		FIA:             fia,
		CommonName:      name,
		Kind:            kind,
		SpecificGravity: sg,
		Density:         sg * waterDensity,
		assignments:     assignments,
	}
}

// everywhere assigns the same equations in all five regions.
func everywhere(vol string, bark, branch int) map[Region]Assignment {
	a := Assignment{Volume: vol, Bark: bark, Branch: branch}
	return map[Region]Assignment{WOR: a, WWA: a, EOR: a, EWA: a, CA: a}
}

// westEastCA splits assignments between the westside, eastside, and
// California regions.
func westEastCA(west, east, ca Assignment) map[Region]Assignment {
	return map[Region]Assignment{WOR: west, WWA: west, EOR: east, EWA: east, CA: ca}
}

func a(vol string, bark, branch int) Assignment {
	return Assignment{Volume: vol, Bark: bark, Branch: branch}
}

func init() {
	// Softwoods.
	add(11, "Pacific silver fir", volume.Softwood, 0.40, westEastCA(a("11", 2, 2), a("10", 2, 2), a("23", 2, 2)))
	add(15, "white fir", volume.Softwood, 0.37, westEastCA(a("23", 3, 2), a("10", 3, 2), a("23", 3, 2)))
	add(17, "grand fir", volume.Softwood, 0.35, westEastCA(a("11", 3, 2), a("10", 3, 2), a("23", 3, 2)))
	add(19, "subalpine fir", volume.Softwood, 0.31, everywhere("10", 2, 2))
	add(20, "California red fir", volume.Softwood, 0.36, everywhere("18", 4, 2))
	add(22, "noble fir", volume.Softwood, 0.37, westEastCA(a("11", 2, 2), a("10", 2, 2), a("18", 2, 2)))
	add(64, "western juniper", volume.Softwood, 0.44, everywhere("21", 15, 3))
	add(65, "Utah juniper", volume.Softwood, 0.44, everywhere("14", 19, 0))
	add(66, "Rocky Mountain juniper", volume.Softwood, 0.44, everywhere("14.2", 19, 0))
	add(73, "western larch", volume.Softwood, 0.48, everywhere("22", 12, 12))
	add(81, "incense cedar", volume.Softwood, 0.35, everywhere("19", 14, 11))
	add(93, "Engelmann spruce", volume.Softwood, 0.33, everywhere("12", 11, 9))
	add(98, "Sitka spruce", volume.Softwood, 0.37, westEastCA(a("13", 11, 9), a("12", 11, 9), a("13", 11, 9)))
	add(101, "whitebark pine", volume.Softwood, 0.36, everywhere("15", 8, 6))
	add(108, "lodgepole pine", volume.Softwood, 0.38, westEastCA(a("15", 8, 6), a("15", 8, 6), a("16", 8, 6)))
	add(116, "Jeffrey pine", volume.Softwood, 0.37, everywhere("5", 9, 7))
	add(117, "sugar pine", volume.Softwood, 0.34, everywhere("20", 10, 8))
	add(119, "western white pine", volume.Softwood, 0.35, everywhere("20", 10, 8))
	add(122, "ponderosa pine", volume.Softwood, 0.38, westEastCA(a("4", 9, 7), a("5", 9, 7), a("5", 9, 7)))
	add(133, "singleleaf pinyon", volume.Softwood, 0.50, everywhere("14.1", 19, 0))
	add(202, "Douglas-fir", volume.Softwood, 0.45, westEastCA(a("1", 1, 1), a("2", 1, 1), a("3", 1, 1)))
	add(211, "redwood", volume.Softwood, 0.36, everywhere("24", 13, 10))
	add(242, "western redcedar", volume.Softwood, 0.31, westEastCA(a("9", 7, 4), a("8", 7, 4), a("9", 7, 4)))
	add(263, "western hemlock", volume.Softwood, 0.42, westEastCA(a("6", 6, 5), a("7", 6, 5), a("6", 6, 5)))
	add(264, "mountain hemlock", volume.Softwood, 0.42, everywhere("17", 6, 5))

	// Hardwoods.
	add(312, "bigleaf maple", volume.Hardwood, 0.44, westEastCA(a("30", 29, 27), a("30", 29, 27), a("37", 29, 27)))
	add(351, "red alder", volume.Hardwood, 0.37, westEastCA(a("25", 16, 13), a("26", 16, 13), a("26", 16, 13)))
	add(361, "Pacific madrone", volume.Hardwood, 0.58, everywhere("40", 34, 28))
	add(375, "paper birch", volume.Hardwood, 0.48, everywhere("29", 22, 18))
	add(431, "golden chinquapin", volume.Hardwood, 0.42, everywhere("32", 32, 29))
	add(475, "curlleaf mountain mahogany", volume.Hardwood, 0.81, everywhere("45", 19, 0))
	add(510, "eucalyptus", volume.Hardwood, 0.55, everywhere("31", 38, 26))
	add(631, "tanoak", volume.Hardwood, 0.58, everywhere("34", 36, 24))
	add(746, "quaking aspen", volume.Hardwood, 0.35, everywhere("28", 21, 15))
	add(747, "black cottonwood", volume.Hardwood, 0.31, everywhere("27", 18, 14))
	add(755, "mesquite", volume.Hardwood, 0.70, everywhere("46", 19, 0))
	add(801, "coast live oak", volume.Hardwood, 0.70, everywhere("43", 31, 19))
	add(805, "canyon live oak", volume.Hardwood, 0.70, everywhere("42", 31, 19))
	add(807, "blue oak", volume.Hardwood, 0.64, everywhere("39", 37, 19))
	add(811, "Engelmann oak", volume.Hardwood, 0.60, everywhere("36", 35, 19))
	add(815, "Oregon white oak", volume.Hardwood, 0.64, everywhere("41", 35, 19))
	add(818, "California black oak", volume.Hardwood, 0.51, everywhere("38", 30, 19))
	add(821, "California white oak", volume.Hardwood, 0.55, everywhere("35", 35, 19))
	add(839, "interior live oak", volume.Hardwood, 0.70, everywhere("44", 31, 19))
	add(981, "California laurel", volume.Hardwood, 0.51, everywhere("33", 33, 24))
}
