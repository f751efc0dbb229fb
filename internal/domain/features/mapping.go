package features

import "sort"

// None is the default categorical value for absent fields.
const None = "none"

var degreeOrdinals = map[string]int{ //nolint:gochecknoglobals // read-only mapping table
	"none":           0,
	"apprenticeship": 1,
	"bachelor":       2,
	"master":         3,
	"doctorate":      4,
}

var seniorityOrdinals = map[string]int{ //nolint:gochecknoglobals // read-only mapping table
	"none":     0,
	"junior":   1,
	"midlevel": 2,
	"senior":   3,
}

var ratingOrdinals = map[string]int{ //nolint:gochecknoglobals // read-only mapping table
	"none": 0,
	"A1":   1,
	"A2":   2,
	"B1":   3,
	"B2":   4,
	"C1":   5,
	"C2":   6,
}

// salaryBinEdges are the left-closed lower bounds of bins 1..9.
var salaryBinEdges = [...]int{0, 50_000, 60_000, 70_000, 80_000, 90_000, 100_000, 110_000, 120_000} //nolint:gochecknoglobals // read-only bin layout

// DegreeOrdinal maps a degree to its rank.
func DegreeOrdinal(s string) (int, bool) {
	v, ok := degreeOrdinals[s]
	return v, ok
}

// SeniorityOrdinal maps a seniority to its rank.
func SeniorityOrdinal(s string) (int, bool) {
	v, ok := seniorityOrdinals[s]
	return v, ok
}

// RatingOrdinal maps a CEFR rating (or "none") to its rank.
func RatingOrdinal(s string) (int, bool) {
	v, ok := ratingOrdinals[s]
	return v, ok
}

// SalaryBin returns the 1-based bin of a non-negative salary. A salary equal
// to an edge falls in the bin that edge opens.
func SalaryBin(salary int) int {
	// index of the first edge greater than salary
	return sort.Search(len(salaryBinEdges), func(i int) bool { return salaryBinEdges[i] > salary })
}

// Degrees lists accepted degree values in ascending order.
func Degrees() []string { return sortedKeys(degreeOrdinals) }

// Seniorities lists accepted seniority values in ascending order.
func Seniorities() []string { return sortedKeys(seniorityOrdinals) }

// Ratings lists accepted language ratings in ascending order.
func Ratings() []string { return sortedKeys(ratingOrdinals) }

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return m[keys[i]] < m[keys[j]] })
	return keys
}
