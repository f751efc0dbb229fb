package features

import (
	"github.com/okian/talentmatch/internal/domain/model"
)

func defaultLanguages() []model.Language {
	return []model.Language{{Title: None, Rating: None}}
}

func defaultList() []string {
	return []string{None}
}

// Normalize fills absent fields with their defaults. An empty list is kept
// as given; only nil is replaced.
func Normalize(p Pair) Record {
	t, j := p.Talent, p.Job
	r := Record{
		TalentID:        t.TalentID,
		JobID:           j.JobID,
		TalentDegree:    deref(t.Degree, None),
		TalentSalary:    deref(t.SalaryExpectation, 0),
		TalentSeniority: deref(t.Seniority, None),
		TalentJobRoles:  t.JobRoles,
		TalentLanguages: t.Languages,
		JobMinDegree:    deref(j.MinDegree, None),
		JobMaxSalary:    deref(j.MaxSalary, 0),
		JobSeniorities:  j.Seniorities,
		JobJobRoles:     j.JobRoles,
		JobLanguages:    j.Languages,
	}
	if r.TalentJobRoles == nil {
		r.TalentJobRoles = defaultList()
	}
	if r.JobJobRoles == nil {
		r.JobJobRoles = defaultList()
	}
	if r.JobSeniorities == nil {
		r.JobSeniorities = defaultList()
	}
	if r.TalentLanguages == nil {
		r.TalentLanguages = defaultLanguages()
	}
	if r.JobLanguages == nil {
		r.JobLanguages = defaultLanguages()
	}
	return r
}

// NormalizeAll normalizes pairs preserving order.
func NormalizeAll(pairs []Pair) []Record {
	out := make([]Record, len(pairs))
	for i, p := range pairs {
		out[i] = Normalize(p)
	}
	return out
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
