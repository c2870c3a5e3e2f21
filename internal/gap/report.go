package gap

// Report is the outcome of matching a resume against a job description.
type Report struct {
	// MatchPercentage is clamped to [0, 100].
	MatchPercentage int      `json:"match_percentage"`
	MissingKeywords []string `json:"missing_keywords"`
	Advice          string   `json:"advice"`
}
