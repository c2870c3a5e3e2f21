package rewrite

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kmanav329/ai-resume-screener/internal/gap"
	"github.com/kmanav329/ai-resume-screener/internal/shared/config"
)

type stubLLM struct {
	response string
	err      error
	prompts  []string
}

func (s *stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return s.CompleteJSON(ctx, prompt)
}

func (s *stubLLM) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

const rewriteResponse = `{
	"name": "Ada Lovelace",
	"contact_info": "ada@example.com",
	"summary": "Engineer with strong Go background.",
	"skills": {"Languages": "Go, Python"},
	"experience": [{"role": "Engineer", "company": "Example Corp", "dates": "2020-2024", "bullets": ["Built things."]}],
	"education": [{"degree": "BSc", "school": "UoL"}]
}`

func TestRewriteDecodesDocument(t *testing.T) {
	stub := &stubLLM{response: rewriteResponse}
	rewriter := NewRewriter(stub, 0, config.RewritePolicy{})

	doc, err := rewriter.Rewrite(context.Background(), "resume", "job", gap.Report{MatchPercentage: 40})
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if doc.Name != "Ada Lovelace" {
		t.Fatalf("name = %q", doc.Name)
	}
	if !doc.Skills.IsMapping() {
		t.Fatal("expected mapping skills")
	}
}

func TestRewritePassesGapReportToPrompt(t *testing.T) {
	stub := &stubLLM{response: rewriteResponse}
	rewriter := NewRewriter(stub, 0, config.RewritePolicy{})

	report := gap.Report{MatchPercentage: 40, MissingKeywords: []string{"Kubernetes"}, Advice: "add infra"}
	if _, err := rewriter.Rewrite(context.Background(), "resume", "job", report); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if !strings.Contains(stub.prompts[0], "Kubernetes") {
		t.Fatal("gap report missing from prompt")
	}
}

func TestRewritePromptCarriesKeywordIntegrationInstruction(t *testing.T) {
	stub := &stubLLM{response: rewriteResponse}
	rewriter := NewRewriter(stub, 0, config.RewritePolicy{})

	report := gap.Report{MatchPercentage: 40, MissingKeywords: []string{"Kubernetes", "Terraform"}}
	if _, err := rewriter.Rewrite(context.Background(), "resume", "job", report); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	prompt := stub.prompts[0]
	if !strings.Contains(prompt, "Integrate each of these missing keywords") {
		t.Fatal("keyword-integration instruction missing from prompt")
	}
	if !strings.Contains(prompt, "Kubernetes, Terraform") {
		t.Fatal("keyword list missing from prompt")
	}
	if !strings.Contains(prompt, "measured by Y") {
		t.Fatal("quantified-bullet instruction missing from prompt")
	}
}

func TestRewritePromptHandlesEmptyKeywordList(t *testing.T) {
	stub := &stubLLM{response: rewriteResponse}
	rewriter := NewRewriter(stub, 0, config.RewritePolicy{})

	if _, err := rewriter.Rewrite(context.Background(), "resume", "job", gap.Report{MatchPercentage: 95}); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if !strings.Contains(stub.prompts[0], "(none)") {
		t.Fatal("empty keyword list should render as (none)")
	}
	if strings.Contains(stub.prompts[0], "{{MISSING_KEYWORDS}}") {
		t.Fatal("unreplaced keyword token in prompt")
	}
}

func TestRewriteRejectsNamelessDocument(t *testing.T) {
	stub := &stubLLM{response: `{"summary": "no name here"}`}
	rewriter := NewRewriter(stub, 0, config.RewritePolicy{})

	_, err := rewriter.Rewrite(context.Background(), "resume", "job", gap.Report{})
	if !errors.Is(err, ErrMalformedResume) {
		t.Fatalf("expected ErrMalformedResume, got %v", err)
	}
}

func TestRewriteFabricationClause(t *testing.T) {
	stub := &stubLLM{response: rewriteResponse}
	rewriter := NewRewriter(stub, 0, config.RewritePolicy{AllowFabricatedMetrics: false})
	if _, err := rewriter.Rewrite(context.Background(), "resume", "job", gap.Report{}); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if !strings.Contains(stub.prompts[0], "Never invent metrics") {
		t.Fatal("authenticity clause missing")
	}
	if !strings.Contains(stub.prompts[0], "truthful to the original resume") {
		t.Fatal("truthfulness clause missing")
	}
	if strings.Contains(stub.prompts[0], "invent plausible metrics") {
		t.Fatal("fabrication clause present when fabrication is disallowed")
	}

	stub = &stubLLM{response: rewriteResponse}
	rewriter = NewRewriter(stub, 0, config.RewritePolicy{AllowFabricatedMetrics: true})
	if _, err := rewriter.Rewrite(context.Background(), "resume", "job", gap.Report{}); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if strings.Contains(stub.prompts[0], "Never invent metrics") ||
		strings.Contains(stub.prompts[0], "truthful to the original resume") {
		t.Fatal("authenticity clause present when fabrication is allowed")
	}
	if !strings.Contains(stub.prompts[0], "invent plausible metrics") {
		t.Fatal("fabrication clause missing when fabrication is allowed")
	}
}

func TestCoverLetterTrimsAndValidates(t *testing.T) {
	stub := &stubLLM{response: "\n\nDear Hiring Manager,\n...\n"}
	rewriter := NewRewriter(stub, 0, config.RewritePolicy{})

	letter, err := rewriter.CoverLetter(context.Background(), "resume", "job")
	if err != nil {
		t.Fatalf("cover letter failed: %v", err)
	}
	if !strings.HasPrefix(letter, "Dear Hiring Manager,") {
		t.Fatalf("got %q", letter)
	}

	stub = &stubLLM{response: "   "}
	rewriter = NewRewriter(stub, 0, config.RewritePolicy{})
	if _, err := rewriter.CoverLetter(context.Background(), "resume", "job"); !errors.Is(err, ErrMalformedResume) {
		t.Fatalf("expected ErrMalformedResume for empty letter, got %v", err)
	}
}
