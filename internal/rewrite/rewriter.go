package rewrite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kmanav329/ai-resume-screener/internal/gap"
	"github.com/kmanav329/ai-resume-screener/internal/llm"
	"github.com/kmanav329/ai-resume-screener/internal/shared/config"
	"github.com/kmanav329/ai-resume-screener/resume/model"
)

// ErrUpstream wraps provider failures so handlers can map them to 502.
var ErrUpstream = errors.New("rewrite provider failed")

// ErrMalformedResume is returned when the model output does not decode into
// a usable resume document.
var ErrMalformedResume = errors.New("malformed rewritten resume")

// Rewriter produces an optimized structured resume and a cover letter.
type Rewriter struct {
	llm             llm.Client
	promptCharLimit int
	policy          config.RewritePolicy
}

func NewRewriter(client llm.Client, promptCharLimit int, policy config.RewritePolicy) *Rewriter {
	if promptCharLimit <= 0 {
		promptCharLimit = config.DefaultPromptCharLimit
	}
	return &Rewriter{llm: client, promptCharLimit: promptCharLimit, policy: policy}
}

// Rewrite returns the resume restructured and optimized for the job
// description, grounded on the gap report.
func (r *Rewriter) Rewrite(ctx context.Context, resumeText, jobDescription string, report gap.Report) (model.Document, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return model.Document{}, fmt.Errorf("marshal gap report: %w", err)
	}

	prompt := llm.RewritePrompt(
		gap.Truncate(resumeText, r.promptCharLimit),
		gap.Truncate(jobDescription, r.promptCharLimit),
		string(reportJSON),
		keywordList(report.MissingKeywords),
		r.policyClauses(),
	)

	raw, err := r.llm.CompleteJSON(ctx, prompt)
	if err != nil {
		return model.Document{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var doc model.Document
	if err := json.Unmarshal([]byte(llm.ExtractJSONObject(raw)), &doc); err != nil {
		return model.Document{}, fmt.Errorf("%w: %v", ErrMalformedResume, err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return model.Document{}, fmt.Errorf("%w: missing candidate name", ErrMalformedResume)
	}
	return doc, nil
}

// CoverLetter returns a plain-text cover letter for the resume and job
// description.
func (r *Rewriter) CoverLetter(ctx context.Context, resumeText, jobDescription string) (string, error) {
	prompt := llm.CoverLetterPrompt(
		gap.Truncate(resumeText, r.promptCharLimit),
		gap.Truncate(jobDescription, r.promptCharLimit),
	)

	letter, err := r.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	letter = strings.TrimSpace(letter)
	if letter == "" {
		return "", fmt.Errorf("%w: empty cover letter", ErrMalformedResume)
	}
	return letter, nil
}

// policyClauses selects exactly one of the two mutually exclusive metric
// policies, so the base template stays neutral on fabrication.
func (r *Rewriter) policyClauses() string {
	if r.policy.AllowFabricatedMetrics {
		return "Where the original resume lacks numbers, invent plausible metrics so every accomplishment bullet is quantified."
	}
	return "Keep every statement truthful to the original resume. Never invent metrics, employers, titles or dates that are not present in the original resume."
}

func keywordList(keywords []string) string {
	if len(keywords) == 0 {
		return "(none)"
	}
	return strings.Join(keywords, ", ")
}
