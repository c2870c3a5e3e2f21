package llm

import "strings"

// CleanJSON strips markdown code fences that models sometimes wrap around
// JSON output despite instructions.
func CleanJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// ExtractJSONObject returns the substring spanning the first '{' through the
// last '}' so prose around the object does not break decoding. Returns the
// cleaned input unchanged when no braces are found.
func ExtractJSONObject(raw string) string {
	cleaned := CleanJSON(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return cleaned
	}
	return cleaned[start : end+1]
}
