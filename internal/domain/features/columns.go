package features

// Feature column names written by the transformers.
const (
	ColSalaryMatch       = "salary_match_binary"
	ColSalaryDiff        = "salary_diff"
	ColTalentSalaryBin   = "talent_salary_bin"
	ColJobMaxSalaryBin   = "job_max_salary_bin"
	ColDegreeMatch       = "degree_match_binary"
	ColSeniorityMatch    = "seniority_match_binary"
	ColSeniorityExceed   = "seniority_exceed_binary"
	ColJobRolesMatch     = "job_roles_match_binary"
	ColLanguageMustHave  = "language_must_have_match_binary"
	ColLanguageGood2Have = "language_good2have_count"

	// Intermediate ordinals kept for inspection only.
	ColTalentDegreeLabel    = "talent_degree_label"
	ColJobMinDegreeLabel    = "job_min_degree_label"
	ColTalentSeniorityLabel = "talent_seniority_label"
)

var defaultColumns = [...]string{ //nolint:gochecknoglobals // fixed column order, copied on read
	ColSalaryMatch,
	ColSalaryDiff,
	ColTalentSalaryBin,
	ColJobMaxSalaryBin,
	ColDegreeMatch,
	ColSeniorityMatch,
	ColSeniorityExceed,
	ColJobRolesMatch,
	ColLanguageMustHave,
	ColLanguageGood2Have,
}

// DefaultColumns returns a fresh copy of the ordered scoring columns.
func DefaultColumns() []string {
	out := make([]string, len(defaultColumns))
	copy(out, defaultColumns[:])
	return out
}

// GateColumns returns the binary features that must all hold for a
// rule-based match.
func GateColumns() []string {
	return []string{
		ColSalaryMatch,
		ColDegreeMatch,
		ColSeniorityMatch,
		ColJobRolesMatch,
		ColLanguageMustHave,
	}
}
