package service

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urbanfix/backend/internal/models"
)

// DefaultRules returns the built-in keyword routing table. The table is
// constructed fresh on each call so callers can never mutate shared state;
// it is loaded once at startup and injected where needed.
func DefaultRules() []models.DepartmentRule {
	return []models.DepartmentRule{
		{Department: "PWD", Keywords: []string{
			"pothole", "road", "footpath", "pavement", "bridge",
			"road damage", "broken road", "speed breaker",
		}},
		{Department: "Sanitation", Keywords: []string{
			"garbage", "trash", "waste", "dustbin", "litter",
			"garbage collection", "dead animal", "open dump",
		}},
		{Department: "Water Supply", Keywords: []string{
			"water", "pipeline", "leakage", "water leak", "no water",
			"water supply", "contaminated water", "burst pipe",
		}},
		{Department: "Electricity", Keywords: []string{
			"electricity", "power", "transformer", "power cut",
			"electric pole", "loose wire", "electric shock",
		}},
		{Department: "Street Lighting", Keywords: []string{
			"street light", "streetlight", "lamp post",
			"light not working", "dark street",
		}},
		{Department: "Drainage", Keywords: []string{
			"drain", "drainage", "sewage", "sewer", "manhole",
			"blocked drain", "waterlogging", "overflowing drain",
		}},
		{Department: "Parks & Horticulture", Keywords: []string{
			"park", "garden", "playground", "fallen tree",
			"tree trimming", "tree cutting",
		}},
		{Department: "Traffic", Keywords: []string{
			"traffic", "signal", "traffic light", "zebra crossing",
			"illegal parking", "encroachment",
		}},
	}
}

// LoadRulesFile reads a keyword table from a JSON file, for deployments
// that override the built-in rules.
func LoadRulesFile(path string) ([]models.DepartmentRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var rules []models.DepartmentRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rules file %s is empty", path)
	}
	return rules, nil
}
