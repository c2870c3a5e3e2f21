package optimize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/kmanav329/ai-resume-screener/internal/jobdesc"
	"github.com/kmanav329/ai-resume-screener/internal/shared/config"
	localstore "github.com/kmanav329/ai-resume-screener/internal/shared/storage/object/local"
)

const gapResponse = `{"match_percentage": 40, "missing_keywords": ["Kubernetes"], "advice": "Add infra work."}`
const rescoreResponse = `{"match_percentage": 85, "missing_keywords": [], "advice": "Looks strong."}`

const rewriteResponse = `{
	"name": "Ada Lovelace",
	"contact_info": "ada@example.com",
	"summary": "Engineer with Kubernetes experience.",
	"skills": {"Languages": "Go", "Infrastructure": "Kubernetes"},
	"experience": [{"role": "Engineer", "company": "Example Corp", "dates": "2020-2024", "bullets": ["Ran Kubernetes clusters."]}],
	"education": [{"degree": "BSc", "school": "UoL"}]
}`

// scriptedLLM returns canned responses in pipeline order: gap analysis,
// rewrite, rescore, then cover letter.
type scriptedLLM struct {
	jsonCalls int
}

func (s *scriptedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return "Dear Hiring Manager,\n\nI am excited to apply.", nil
}

func (s *scriptedLLM) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	s.jsonCalls++
	switch s.jsonCalls {
	case 1:
		return gapResponse, nil
	case 2:
		return rewriteResponse, nil
	case 3:
		return rescoreResponse, nil
	default:
		return "", fmt.Errorf("unexpected call %d", s.jsonCalls)
	}
}

type stubHTMLToPDF struct {
	err error
}

func (s stubHTMLToPDF) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func newTestService(t *testing.T, llmClient *scriptedLLM, htmlPDF stubHTMLToPDF) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	store := localstore.New(t.TempDir())
	cfg := config.Config{
		PromptCharLimit: 3000,
		Scoring:         config.ScoringPolicy{IgnoreSoftSkills: true},
	}
	svc := NewService(repo, store, llmClient, jobdesc.NewFetcher("http://127.0.0.1:1"), htmlPDF, cfg)
	return svc, repo
}

func TestRunFullPipeline(t *testing.T) {
	svc, repo := newTestService(t, &scriptedLLM{}, stubHTMLToPDF{})

	run, err := svc.Run(context.Background(), RunInput{
		ResumeData:     []byte("Ada Lovelace. Engineer. Go, Python."),
		ResumeFilename: "resume.txt",
		ResumeMIME:     "text/plain",
		JobText:        "Senior engineer role needing Kubernetes.",
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if run.GapReport.MatchPercentage != 40 {
		t.Fatalf("before = %d", run.GapReport.MatchPercentage)
	}
	if run.Rescore.After.MatchPercentage != 85 || run.Rescore.Delta != 45 {
		t.Fatalf("rescore = %+v", run.Rescore)
	}
	if run.Resume.Name != "Ada Lovelace" {
		t.Fatalf("resume name = %q", run.Resume.Name)
	}
	if run.CoverLetter == "" {
		t.Fatal("cover letter missing")
	}
	if run.DocxKey == "" || run.PDFKey == "" || run.TextPDFKey == "" || run.CoverKey == "" {
		t.Fatalf("missing artifact keys: %+v", run)
	}
	if len(run.RenderWarnings) != 0 {
		t.Fatalf("unexpected warnings: %v", run.RenderWarnings)
	}

	stored, err := repo.GetByID(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("run not persisted: %v", err)
	}
	if stored.JobSource != JobSourceText {
		t.Fatalf("job source = %q", stored.JobSource)
	}
}

func TestRunPDFFailureBecomesWarning(t *testing.T) {
	svc, _ := newTestService(t, &scriptedLLM{}, stubHTMLToPDF{err: errors.New("chrome crashed")})

	run, err := svc.Run(context.Background(), RunInput{
		ResumeData:     []byte("Ada Lovelace. Engineer."),
		ResumeFilename: "resume.txt",
		ResumeMIME:     "text/plain",
		JobText:        "Engineer role.",
	})
	if err != nil {
		t.Fatalf("run should complete despite pdf failure: %v", err)
	}

	if run.PDFKey != "" {
		t.Fatal("pdf key should be empty after render failure")
	}
	if run.DocxKey == "" || run.TextPDFKey == "" {
		t.Fatal("other artifacts should still render")
	}
	found := false
	for _, w := range run.RenderWarnings {
		if strings.Contains(w, "pdf render failed") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected pdf warning, got %v", run.RenderWarnings)
	}
}

func TestRunRequiresJobDescription(t *testing.T) {
	svc, _ := newTestService(t, &scriptedLLM{}, stubHTMLToPDF{})

	_, err := svc.Run(context.Background(), RunInput{
		ResumeData:     []byte("Ada Lovelace."),
		ResumeFilename: "resume.txt",
		ResumeMIME:     "text/plain",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRunRequiresResume(t *testing.T) {
	svc, _ := newTestService(t, &scriptedLLM{}, stubHTMLToPDF{})

	_, err := svc.Run(context.Background(), RunInput{JobText: "Engineer role."})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOpenArtifactStreamsStoredBytes(t *testing.T) {
	svc, _ := newTestService(t, &scriptedLLM{}, stubHTMLToPDF{})

	run, err := svc.Run(context.Background(), RunInput{
		ResumeData:     []byte("Ada Lovelace. Engineer."),
		ResumeFilename: "resume.txt",
		ResumeMIME:     "text/plain",
		JobText:        "Engineer role.",
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	body, fileName, contentType, err := svc.OpenArtifact(context.Background(), run.ID, FormatCover)
	if err != nil {
		t.Fatalf("open artifact failed: %v", err)
	}
	defer body.Close()

	if fileName != "cover_letter.txt" || !strings.HasPrefix(contentType, "text/plain") {
		t.Fatalf("fileName=%q contentType=%q", fileName, contentType)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.HasPrefix(string(data), "Dear Hiring Manager,") {
		t.Fatalf("got %q", data)
	}
}

func TestOpenArtifactErrors(t *testing.T) {
	svc, _ := newTestService(t, &scriptedLLM{}, stubHTMLToPDF{err: errors.New("down")})

	run, err := svc.Run(context.Background(), RunInput{
		ResumeData:     []byte("Ada Lovelace."),
		ResumeFilename: "resume.txt",
		ResumeMIME:     "text/plain",
		JobText:        "Engineer role.",
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, _, _, err := svc.OpenArtifact(context.Background(), run.ID, "tarball"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, _, _, err := svc.OpenArtifact(context.Background(), run.ID, FormatPDF); !errors.Is(err, ErrArtifactUnavailable) {
		t.Fatalf("expected ErrArtifactUnavailable, got %v", err)
	}
	if _, _, _, err := svc.OpenArtifact(context.Background(), "missing-id", FormatDocx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
