package service

import (
	"strings"

	"github.com/urbanfix/backend/internal/models"
)

// ClassifyDepartment scores every rule against the normalized issue text
// and returns the department name of the best-scoring rule. Keywords match
// whole words only; multi-word keywords match as phrases and contribute
// their word count, so a phrase hit outweighs a single word. Ties keep the
// first rule in table order. A zero best score means no match.
func ClassifyDepartment(description, issueType string, rules []models.DepartmentRule) (string, bool) {
	text := NormalizeText(strings.TrimSpace(issueType + " " + description))
	if text == "" {
		return "", false
	}
	words := strings.Split(text, " ")

	bestScore := 0
	bestName := ""
	for _, rule := range rules {
		score := 0
		for _, kw := range rule.Keywords {
			normalized := NormalizeText(kw)
			if normalized == "" {
				continue
			}
			phrase := strings.Split(normalized, " ")
			if containsPhrase(words, phrase) {
				score += len(phrase)
			}
		}
		if score > bestScore {
			bestScore = score
			bestName = rule.Department
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return bestName, true
}

func containsPhrase(words, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(words); i++ {
		matched := true
		for j := range phrase {
			if words[i+j] != phrase[j] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// ResolveDepartmentByName maps a classified department name to a directory
// record. Comparison is on normalized names; when several records share a
// name the first in caller order wins.
func ResolveDepartmentByName(name string, departments []models.Department) (models.Department, bool) {
	want := NormalizeText(name)
	if want == "" {
		return models.Department{}, false
	}
	for _, d := range departments {
		if NormalizeText(d.Name) == want {
			return d, true
		}
	}
	return models.Department{}, false
}
