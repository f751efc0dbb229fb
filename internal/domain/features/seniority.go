package features

import "fmt"

const opSeniority = "seniority"

// Seniority writes whether the talent level is accepted by the job and
// whether it exceeds every accepted level.
func Seniority(r Record, row Row) error {
	talent, ok := SeniorityOrdinal(r.TalentSeniority)
	if !ok {
		return Validationf(opSeniority, PathTalentSeniority, "unknown seniority %q", r.TalentSeniority)
	}

	match, exceed := false, true
	for i, s := range r.JobSeniorities {
		level, ok := SeniorityOrdinal(s)
		if !ok {
			return Validationf(opSeniority, fmt.Sprintf("%s[%d]", PathJobSeniorities, i), "unknown seniority %q", s)
		}
		if level == talent {
			match = true
		}
		if talent <= level {
			exceed = false
		}
	}

	row[ColTalentSeniorityLabel] = float64(talent)
	row[ColSeniorityMatch] = boolFloat(match)
	row[ColSeniorityExceed] = boolFloat(exceed)
	return nil
}
