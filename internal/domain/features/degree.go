package features

const opDegree = "degree"

// Degree writes the degree ordinals and whether the talent meets the minimum.
func Degree(r Record, row Row) error {
	talent, ok := DegreeOrdinal(r.TalentDegree)
	if !ok {
		return Validationf(opDegree, PathTalentDegree, "unknown degree %q", r.TalentDegree)
	}
	minimum, ok := DegreeOrdinal(r.JobMinDegree)
	if !ok {
		return Validationf(opDegree, PathJobMinDegree, "unknown degree %q", r.JobMinDegree)
	}

	row[ColTalentDegreeLabel] = float64(talent)
	row[ColJobMinDegreeLabel] = float64(minimum)
	row[ColDegreeMatch] = boolFloat(talent >= minimum)
	return nil
}
