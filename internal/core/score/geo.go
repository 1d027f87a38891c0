package score

// adjacencyGroups are fixed clusters of neighboring or treaty-linked markets.
// Two different locations in the same group earn half geo credit
var adjacencyGroups = [][]string{
	{"france", "belgium", "luxembourg", "switzerland", "monaco"},
	{"germany", "austria", "switzerland", "netherlands"},
	{"spain", "portugal"},
	{"usa", "united states", "canada", "mexico"},
	{"uk", "united kingdom", "ireland"},
	{"sweden", "norway", "denmark", "finland"},
	{"singapore", "malaysia", "indonesia"},
	{"uae", "saudi arabia", "qatar"},
}

// geoFit scores location proximity: identical tokens get full weight,
// adjacent markets half, anything else (including unknowns) zero
func geoFit(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return WeightGeo
	}
	for _, group := range adjacencyGroups {
		if inGroup(group, a) && inGroup(group, b) {
			return WeightGeo / 2
		}
	}
	return 0
}

func inGroup(group []string, loc string) bool {
	for _, g := range group {
		if g == loc {
			return true
		}
	}
	return false
}
