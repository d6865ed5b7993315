package service

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `[{"department":"PWD","keywords":["pothole","road"]}]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	rules, err := LoadRulesFile(path)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if len(rules) != 1 || rules[0].Department != "PWD" || len(rules[0].Keywords) != 2 {
		t.Fatalf("unexpected rules: %+v", rules)
	}
}

func TestLoadRulesFileRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	if _, err := LoadRulesFile(path); err == nil {
		t.Fatalf("expected error for empty rules file")
	}
}

func TestDefaultRulesStable(t *testing.T) {
	a := DefaultRules()
	b := DefaultRules()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("unexpected rule table size: %d vs %d", len(a), len(b))
	}
	// Callers each get their own copy; mutating one must not leak.
	a[0].Keywords[0] = "mutated"
	if b[0].Keywords[0] == "mutated" {
		t.Fatalf("rule table shares state between calls")
	}
	if DefaultRules()[0].Keywords[0] == "mutated" {
		t.Fatalf("rule table retained mutation")
	}
}
