package model

import (
	"encoding/json"
	"testing"
)

func TestSkillsFieldDecodesMappingInOrder(t *testing.T) {
	raw := `{"skills": {"Languages": "Go, Python", "Cloud": ["AWS", "GCP"], "Data": "Postgres"}}`

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !doc.Skills.IsMapping() {
		t.Fatal("expected mapping skills")
	}
	want := []SkillCategory{
		{Name: "Languages", Items: "Go, Python"},
		{Name: "Cloud", Items: "AWS, GCP"},
		{Name: "Data", Items: "Postgres"},
	}
	if len(doc.Skills.Categories) != len(want) {
		t.Fatalf("got %d categories, want %d", len(doc.Skills.Categories), len(want))
	}
	for i, cat := range doc.Skills.Categories {
		if cat != want[i] {
			t.Fatalf("category %d = %+v, want %+v", i, cat, want[i])
		}
	}
}

func TestSkillsFieldDecodesList(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{"skills": ["Go", "SQL"]}`), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if doc.Skills.IsMapping() {
		t.Fatal("expected free-text skills")
	}
	if doc.Skills.FreeText != "Go, SQL" {
		t.Fatalf("got %q", doc.Skills.FreeText)
	}
}

func TestSkillsFieldDecodesString(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{"skills": "Go and SQL"}`), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if doc.Skills.FreeText != "Go and SQL" {
		t.Fatalf("got %q", doc.Skills.FreeText)
	}
}

func TestSkillsFieldMarshalRoundTripKeepsOrder(t *testing.T) {
	skills := SkillsField{Categories: []SkillCategory{
		{Name: "Zeta", Items: "one"},
		{Name: "Alpha", Items: "two"},
	}}
	raw, err := json.Marshal(skills)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded SkillsField
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(decoded.Categories) != 2 || decoded.Categories[0].Name != "Zeta" || decoded.Categories[1].Name != "Alpha" {
		t.Fatalf("order lost: %+v", decoded.Categories)
	}
}

func TestDocumentDecodesFullShape(t *testing.T) {
	raw := `{
		"name": "Ada Lovelace",
		"contact_info": "ada@example.com | London",
		"summary": "Engineer.",
		"skills": {"Languages": "Go"},
		"experience": [{"role": "Engineer", "company": "Example Corp", "dates": "2020-2024", "bullets": ["Built things."]}],
		"education": [{"degree": "BSc Mathematics", "school": "University of London"}]
	}`

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if doc.Name != "Ada Lovelace" {
		t.Fatalf("name = %q", doc.Name)
	}
	if len(doc.Experience) != 1 || doc.Experience[0].Company != "Example Corp" {
		t.Fatalf("experience = %+v", doc.Experience)
	}
	if len(doc.Education) != 1 || doc.Education[0].Degree != "BSc Mathematics" {
		t.Fatalf("education = %+v", doc.Education)
	}
}
