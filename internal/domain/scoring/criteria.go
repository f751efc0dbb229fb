package scoring

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/okian/talentmatch/internal/domain/features"
	"github.com/okian/talentmatch/internal/domain/model"
)

// Supported criteria keys.
const (
	CriterionSalaryExpectation = "salary_expectation"
	CriterionSeniority         = "seniority"
)

type jobFilter func(model.Job) bool

// compile turns criteria into job filters. Unsupported keys are reported
// and skipped.
func (m *Matcher) compile(criteria model.Criteria) ([]jobFilter, error) {
	keys := make([]string, 0, len(criteria))
	for k := range criteria {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	filters := make([]jobFilter, 0, len(keys))
	for _, k := range keys {
		v := criteria[k]
		switch k {
		case CriterionSalaryExpectation:
			want, ok := number(v)
			if !ok {
				return nil, features.Validationf("rank_and_filter", "criteria."+k, "must be a number, got %T", v)
			}
			filters = append(filters, func(j model.Job) bool {
				ceiling := 0
				if j.MaxSalary != nil {
					ceiling = *j.MaxSalary
				}
				return float64(ceiling) >= want
			})
		case CriterionSeniority:
			want, ok := v.(string)
			if !ok {
				return nil, features.Validationf("rank_and_filter", "criteria."+k, "must be a string, got %T", v)
			}
			filters = append(filters, func(j model.Job) bool {
				for _, s := range j.Seniorities {
					if s == want {
						return true
					}
				}
				return false
			})
		default:
			m.onIgnored(k)
		}
	}
	return filters, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
