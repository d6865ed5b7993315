package service

import (
	"testing"

	"github.com/urbanfix/backend/internal/models"
)

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  Pot-hole!!  on   MAIN road ", "pot hole on main road"},
		{"Überflow @ sector #7", "berflow sector 7"},
		{"already normal", "already normal"},
	}
	for _, tc := range cases {
		if got := NormalizeText(tc.in); got != tc.want {
			t.Fatalf("NormalizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{"", "Pot-hole on Main Road!", "  a  b\tc ", "9 lives"}
	for _, in := range inputs {
		once := NormalizeText(in)
		if twice := NormalizeText(once); twice != once {
			t.Fatalf("normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestClassifyPotholeRoutesToPWD(t *testing.T) {
	name, ok := ClassifyDepartment("There is a pothole on the main road", "", DefaultRules())
	if !ok || name != "PWD" {
		t.Fatalf("expected PWD, got %q ok=%v", name, ok)
	}
}

func TestClassifyGarbageRoutesToSanitation(t *testing.T) {
	name, ok := ClassifyDepartment("garbage overflowing near my house", "", DefaultRules())
	if !ok || name != "Sanitation" {
		t.Fatalf("expected Sanitation, got %q ok=%v", name, ok)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	if name, ok := ClassifyDepartment("my cat is stuck in a tree", "", DefaultRules()); ok {
		t.Fatalf("expected no match, got %q", name)
	}
	if _, ok := ClassifyDepartment("", "", DefaultRules()); ok {
		t.Fatalf("expected no match for empty text")
	}
}

func TestClassifyIssueTypeContributes(t *testing.T) {
	name, ok := ClassifyDepartment("it has been broken for weeks", "streetlight", DefaultRules())
	if !ok || name != "Street Lighting" {
		t.Fatalf("expected Street Lighting from issue type, got %q ok=%v", name, ok)
	}
}

func TestClassifyPhraseOutweighsSingleWord(t *testing.T) {
	rules := []models.DepartmentRule{
		{Department: "A", Keywords: []string{"water"}},
		{Department: "B", Keywords: []string{"water leak"}},
	}
	name, ok := ClassifyDepartment("there is a water leak outside", "", rules)
	if !ok || name != "B" {
		t.Fatalf("expected phrase rule B to win, got %q ok=%v", name, ok)
	}
}

func TestClassifyWholeWordOnly(t *testing.T) {
	rules := []models.DepartmentRule{
		{Department: "A", Keywords: []string{"road"}},
	}
	if name, ok := ClassifyDepartment("the broadband is down", "", rules); ok {
		t.Fatalf("substring must not match whole-word keyword, got %q", name)
	}
}

func TestClassifyTieKeepsFirstRule(t *testing.T) {
	rules := []models.DepartmentRule{
		{Department: "First", Keywords: []string{"alpha"}},
		{Department: "Second", Keywords: []string{"beta"}},
	}
	name, ok := ClassifyDepartment("alpha beta", "", rules)
	if !ok || name != "First" {
		t.Fatalf("expected first rule to win tie, got %q ok=%v", name, ok)
	}
}

func TestResolveDepartmentByName(t *testing.T) {
	departments := []models.Department{
		{ID: 1, Name: "Sanitation"},
		{ID: 2, Name: "PWD"},
		{ID: 3, Name: "pwd"},
	}
	dept, ok := ResolveDepartmentByName("PWD", departments)
	if !ok || dept.ID != 2 {
		t.Fatalf("expected first matching record id=2, got %+v ok=%v", dept, ok)
	}
	if _, ok := ResolveDepartmentByName("Water Supply", departments); ok {
		t.Fatalf("expected no match for unknown name")
	}
}
