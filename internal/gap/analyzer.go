package gap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kmanav329/ai-resume-screener/internal/llm"
	"github.com/kmanav329/ai-resume-screener/internal/shared/config"
)

// ErrUpstream wraps provider failures so handlers can map them to 502.
var ErrUpstream = errors.New("gap analysis provider failed")

// ErrMalformedReport is returned when the model output fails schema
// validation even after cleanup.
var ErrMalformedReport = errors.New("malformed gap report")

// Analyzer scores a resume against a job description.
type Analyzer struct {
	llm             llm.Client
	promptCharLimit int
	policy          config.ScoringPolicy
}

func NewAnalyzer(client llm.Client, promptCharLimit int, policy config.ScoringPolicy) *Analyzer {
	if promptCharLimit <= 0 {
		promptCharLimit = config.DefaultPromptCharLimit
	}
	return &Analyzer{llm: client, promptCharLimit: promptCharLimit, policy: policy}
}

// Analyze returns a gap report for the resume text. Both inputs are truncated
// to the prompt character limit before the prompt is built, so oversized
// documents degrade instead of failing.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobDescription string) (Report, error) {
	prompt := llm.GapPrompt(
		Truncate(resumeText, a.promptCharLimit),
		Truncate(jobDescription, a.promptCharLimit),
		a.policyClauses(),
	)

	raw, err := a.llm.CompleteJSON(ctx, prompt)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return parseReport(raw)
}

func (a *Analyzer) policyClauses() string {
	if a.policy.IgnoreSoftSkills {
		return "When collecting missing keywords, only include hard skills, tools and technologies. Ignore soft skills such as communication or teamwork."
	}
	return ""
}

func parseReport(raw string) (Report, error) {
	cleaned := llm.ExtractJSONObject(raw)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(reportSchema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return Report{}, fmt.Errorf("%w: %s", ErrMalformedReport, strings.Join(issues, "; "))
	}

	var decoded struct {
		MatchPercentage float64  `json:"match_percentage"`
		MissingKeywords []string `json:"missing_keywords"`
		Advice          string   `json:"advice"`
	}
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}

	report := Report{
		MatchPercentage: clampScore(int(decoded.MatchPercentage)),
		MissingKeywords: decoded.MissingKeywords,
		Advice:          decoded.Advice,
	}
	if report.MissingKeywords == nil {
		report.MissingKeywords = []string{}
	}
	return report, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Truncate cuts s to at most limit characters, preserving rune boundaries.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
