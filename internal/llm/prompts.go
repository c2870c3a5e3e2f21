package llm

import (
	"strings"

	_ "embed"
)

var (
	//go:embed prompts/gap_v1.txt
	gapV1 string
	//go:embed prompts/rewrite_v1.txt
	rewriteV1 string
	//go:embed prompts/cover_letter_v1.txt
	coverLetterV1 string
)

// GapPrompt renders the gap-analysis prompt. policyClauses is appended to the
// instruction block and may be empty.
func GapPrompt(resumeText, jobDescription, policyClauses string) string {
	return render(gapV1,
		"{{RESUME}}", resumeText,
		"{{JOB_DESCRIPTION}}", jobDescription,
		"{{POLICY_CLAUSES}}", policyClauses,
	)
}

// RewritePrompt renders the resume-rewrite prompt. gapReportJSON is the raw
// gap report handed back to the model as grounding; missingKeywords is the
// report's keyword list spelled out so the integration instruction is
// explicit rather than implied by the attached JSON.
func RewritePrompt(resumeText, jobDescription, gapReportJSON, missingKeywords, policyClauses string) string {
	return render(rewriteV1,
		"{{RESUME}}", resumeText,
		"{{JOB_DESCRIPTION}}", jobDescription,
		"{{GAP_REPORT}}", gapReportJSON,
		"{{MISSING_KEYWORDS}}", missingKeywords,
		"{{POLICY_CLAUSES}}", policyClauses,
	)
}

// CoverLetterPrompt renders the cover-letter prompt.
func CoverLetterPrompt(resumeText, jobDescription string) string {
	return render(coverLetterV1,
		"{{RESUME}}", resumeText,
		"{{JOB_DESCRIPTION}}", jobDescription,
	)
}

func render(template string, pairs ...string) string {
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template))
}
