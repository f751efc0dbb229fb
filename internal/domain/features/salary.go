package features

import "math"

const opSalary = "salary"

// Salary writes the salary match, relative gap and bin features.
func Salary(r Record, row Row) error {
	if r.TalentSalary < 0 {
		return Validationf(opSalary, PathTalentSalary, "negative value %d", r.TalentSalary)
	}
	if r.JobMaxSalary < 0 {
		return Validationf(opSalary, PathJobMaxSalary, "negative value %d", r.JobMaxSalary)
	}

	row[ColSalaryMatch] = boolFloat(r.TalentSalary <= r.JobMaxSalary)
	row[ColSalaryDiff] = SalaryDiff(r.TalentSalary, r.JobMaxSalary)
	row[ColTalentSalaryBin] = float64(SalaryBin(r.TalentSalary))
	row[ColJobMaxSalaryBin] = float64(SalaryBin(r.JobMaxSalary))
	return nil
}

// SalaryDiff is the gap between the job maximum and the expectation relative
// to the maximum, rounded to two decimals. It is 0 when the maximum is 0.
func SalaryDiff(expectation, maxSalary int) float64 {
	if maxSalary == 0 {
		return 0
	}
	return math.Round(float64(maxSalary-expectation)/float64(maxSalary)*100) / 100
}
