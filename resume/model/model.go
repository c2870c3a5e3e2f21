package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Document is the structured rewrite produced by the model. Every field is
// optional; renderers must skip absent sections rather than fail.
type Document struct {
	Name        string       `json:"name"`
	ContactInfo string       `json:"contact_info"`
	Summary     string       `json:"summary"`
	Skills      SkillsField  `json:"skills"`
	Experience  []Experience `json:"experience"`
	Education   []Education  `json:"education"`
}

// Experience is a single work-history entry.
type Experience struct {
	Role    string   `json:"role"`
	Company string   `json:"company"`
	Dates   string   `json:"dates"`
	Bullets []string `json:"bullets"`
}

// Education is a single education entry.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
}

// SkillCategory is one entry of a mapping-shaped skills field.
type SkillCategory struct {
	Name  string
	Items string
}

// SkillsField accepts the two shapes the model emits for skills: a JSON
// object mapping category names to items (insertion order preserved), or a
// free-text blob. Exactly one of Categories and FreeText is populated.
type SkillsField struct {
	Categories []SkillCategory
	FreeText   string
}

// IsMapping reports whether the field carried the mapping shape.
func (s SkillsField) IsMapping() bool {
	return len(s.Categories) > 0
}

// IsEmpty reports whether the field carried no usable content.
func (s SkillsField) IsEmpty() bool {
	return len(s.Categories) == 0 && strings.TrimSpace(s.FreeText) == ""
}

// UnmarshalJSON decodes either shape. Object keys are read token by token so
// the original insertion order survives; Go's map decoding would lose it.
func (s *SkillsField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = SkillsField{}
		return nil
	}

	switch trimmed[0] {
	case '{':
		categories, err := decodeOrderedCategories(trimmed)
		if err != nil {
			return err
		}
		*s = SkillsField{Categories: categories}
		return nil
	case '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		*s = SkillsField{FreeText: strings.Join(items, ", ")}
		return nil
	default:
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		*s = SkillsField{FreeText: text}
		return nil
	}
}

// MarshalJSON re-emits the shape that was decoded.
func (s SkillsField) MarshalJSON() ([]byte, error) {
	if !s.IsMapping() {
		return json.Marshal(s.FreeText)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range s.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(cat.Items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeOrderedCategories(data []byte) ([]SkillCategory, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("skills: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("skills: expected object")
	}

	var categories []SkillCategory
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("skills: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("skills: non-string key")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("skills %q: %w", key, err)
		}
		items, err := decodeCategoryItems(raw)
		if err != nil {
			return nil, fmt.Errorf("skills %q: %w", key, err)
		}
		categories = append(categories, SkillCategory{Name: key, Items: items})
	}

	return categories, nil
}

// decodeCategoryItems accepts a category value as a string or a string list.
func decodeCategoryItems(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return "", err
		}
		return strings.Join(items, ", "), nil
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return "", err
	}
	return text, nil
}
