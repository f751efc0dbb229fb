package features

import (
	"fmt"

	"github.com/okian/talentmatch/internal/domain/model"
)

const opLanguage = "language"

// Language writes the must-have gate and the good-to-have count. When a
// title repeats on one side its highest rating is used.
func Language(r Record, row Row) error {
	held, err := ratingLookup(r.TalentLanguages, PathTalentLanguages, func(model.Language) bool { return true })
	if err != nil {
		return err
	}
	mustHave, err := ratingLookup(r.JobLanguages, PathJobLanguages, func(l model.Language) bool { return l.MustHave })
	if err != nil {
		return err
	}
	good2Have, err := ratingLookup(r.JobLanguages, PathJobLanguages, func(l model.Language) bool { return !l.MustHave })
	if err != nil {
		return err
	}

	gate := true
	for title, required := range mustHave {
		if have, ok := held[title]; !ok || have < required {
			gate = false
			break
		}
	}

	count := 0
	for title, required := range good2Have {
		if have, ok := held[title]; ok && have >= required {
			count++
		}
	}

	row[ColLanguageMustHave] = boolFloat(gate)
	row[ColLanguageGood2Have] = float64(count)
	return nil
}

func ratingLookup(langs []model.Language, path string, keep func(model.Language) bool) (map[string]int, error) {
	out := make(map[string]int, len(langs))
	for i, l := range langs {
		field := fmt.Sprintf("%s[%d]", path, i)
		if l.Title == "" {
			return nil, Validationf(opLanguage, field+".title", "empty title")
		}
		rating, ok := RatingOrdinal(l.Rating)
		if !ok {
			return nil, Validationf(opLanguage, field+".rating", "unknown rating %q", l.Rating)
		}
		if !keep(l) {
			continue
		}
		if prev, seen := out[l.Title]; !seen || rating > prev {
			out[l.Title] = rating
		}
	}
	return out, nil
}
