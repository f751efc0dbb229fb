package loadtest

import (
	"fmt"

	"github.com/okian/talentmatch/internal/domain/model"
)

// Verify checks a response against the request that produced it: scores
// are probabilities in descending order, filtered responses hold only
// positive labels, and unfiltered responses cover every pair.
func Verify(r Request, results []model.MatchResult) error {
	pairs := r.Talents * r.Jobs
	if len(results) > pairs {
		return fmt.Errorf("%d results for %d pairs", len(results), pairs)
	}
	if !r.Filter && len(results) != pairs {
		return fmt.Errorf("%d results for %d pairs without filtering", len(results), pairs)
	}

	for i, res := range results {
		if res.Score < 0 || res.Score > 1 {
			return fmt.Errorf("result %d: score %.4f outside [0, 1]", i, res.Score)
		}
		if r.Filter && !res.Label {
			return fmt.Errorf("result %d: negative label survived filtering", i)
		}
		if i > 0 && res.Score > results[i-1].Score {
			return fmt.Errorf("result %d: score %.4f above previous %.4f", i, res.Score, results[i-1].Score)
		}
	}
	return nil
}
