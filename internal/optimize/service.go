package optimize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kmanav329/ai-resume-screener/internal/extract"
	"github.com/kmanav329/ai-resume-screener/internal/gap"
	"github.com/kmanav329/ai-resume-screener/internal/jobdesc"
	"github.com/kmanav329/ai-resume-screener/internal/llm"
	"github.com/kmanav329/ai-resume-screener/internal/rescore"
	"github.com/kmanav329/ai-resume-screener/internal/rewrite"
	"github.com/kmanav329/ai-resume-screener/internal/shared/config"
	"github.com/kmanav329/ai-resume-screener/internal/shared/metrics"
	"github.com/kmanav329/ai-resume-screener/internal/shared/storage/object"
	"github.com/kmanav329/ai-resume-screener/internal/shared/telemetry"
	"github.com/kmanav329/ai-resume-screener/resume/render"
)

// RunInput carries everything needed to start an optimization.
type RunInput struct {
	ResumeData     []byte
	ResumeFilename string
	ResumeMIME     string
	JobText        string
	JobURL         string
}

// Service orchestrates the full pipeline: extract, analyze, rewrite, rescore,
// render, persist.
type Service struct {
	repo    Repo
	store   object.ObjectStore
	llmBase llm.Client
	fetcher *jobdesc.Fetcher
	htmlPDF render.HTMLToPDF

	promptCharLimit int
	scoring         config.ScoringPolicy
	rewriting       config.RewritePolicy
}

func NewService(repo Repo, store object.ObjectStore, client llm.Client, fetcher *jobdesc.Fetcher, htmlPDF render.HTMLToPDF, cfg config.Config) *Service {
	return &Service{
		repo:            repo,
		store:           store,
		llmBase:         client,
		fetcher:         fetcher,
		htmlPDF:         htmlPDF,
		promptCharLimit: cfg.PromptCharLimit,
		scoring:         cfg.Scoring,
		rewriting:       cfg.Rewrite,
	}
}

// Run executes the pipeline and persists the completed run. Rendering
// failures do not fail the run; they are recorded as warnings and the
// affected artifact stays unavailable.
func (s *Service) Run(ctx context.Context, input RunInput) (Run, error) {
	start := time.Now()
	metrics.IncOptimizationStarted()

	run, err := s.run(ctx, input)
	if err != nil {
		metrics.IncOptimizationFailed()
		return Run{}, err
	}

	metrics.IncOptimizationCompleted()
	metrics.ObserveOptimizationDurationMs(float64(time.Since(start).Milliseconds()))
	return run, nil
}

func (s *Service) run(ctx context.Context, input RunInput) (Run, error) {
	if len(input.ResumeData) == 0 {
		return Run{}, fmt.Errorf("%w: resume file is required", ErrValidation)
	}

	resumeText, err := extract.Text(ctx, input.ResumeData, input.ResumeMIME, input.ResumeFilename)
	if err != nil {
		return Run{}, err
	}

	jobDescription, jobSource := strings.TrimSpace(input.JobText), JobSourceText
	if jobDescription == "" && strings.TrimSpace(input.JobURL) != "" {
		jobDescription, jobSource = s.fetcher.Fetch(ctx, input.JobURL), JobSourceURL
	}
	if jobDescription == "" {
		return Run{}, fmt.Errorf("%w: a job description or a fetchable job URL is required", ErrValidation)
	}

	runID := uuid.NewString()
	client := llm.WithRetry(s.llmBase, runID)
	analyzer := gap.NewAnalyzer(client, s.promptCharLimit, s.scoring)
	rewriter := rewrite.NewRewriter(client, s.promptCharLimit, s.rewriting)
	scorer := rescore.NewScorer(analyzer)

	report, err := analyzer.Analyze(ctx, resumeText, jobDescription)
	if err != nil {
		return Run{}, err
	}

	doc, err := rewriter.Rewrite(ctx, resumeText, jobDescription, report)
	if err != nil {
		return Run{}, err
	}

	comparison, err := scorer.Score(ctx, report, doc, jobDescription)
	if err != nil {
		return Run{}, err
	}

	run := Run{
		ID:             runID,
		ResumeFilename: input.ResumeFilename,
		JobSource:      jobSource,
		JobURL:         strings.TrimSpace(input.JobURL),
		GapReport:      report,
		Rescore:        comparison,
		Resume:         doc,
		RenderWarnings: []string{},
		CreatedAt:      time.Now().UTC(),
	}

	letter, err := rewriter.CoverLetter(ctx, resumeText, jobDescription)
	if err != nil {
		run.warn("cover letter generation failed", err)
	} else {
		run.CoverLetter = letter
	}

	s.renderArtifacts(ctx, &run)

	if err := s.repo.Create(ctx, run); err != nil {
		return Run{}, fmt.Errorf("persist run: %w", err)
	}
	return run, nil
}

// renderArtifacts produces every download format. Each artifact fails
// independently.
func (s *Service) renderArtifacts(ctx context.Context, run *Run) {
	if data, err := render.RenderDOCX(run.Resume); err != nil {
		run.warn("docx render failed", err)
	} else {
		run.DocxKey = s.saveArtifact(ctx, run, "optimized_resume.docx", render.MIMEDocx, data, "docx upload failed")
	}

	if s.htmlPDF == nil {
		run.warn("pdf render failed", fmt.Errorf("no html-to-pdf renderer configured"))
	} else if data, err := s.htmlPDF.RenderHTMLToPDF(ctx, render.RenderHTML(run.Resume)); err != nil {
		run.warn("pdf render failed", err)
	} else {
		run.PDFKey = s.saveArtifact(ctx, run, "optimized_resume.pdf", render.MIMEPDF, data, "pdf upload failed")
	}

	if data, err := render.RenderTextPDF(render.Flatten(run.Resume)); err != nil {
		run.warn("text pdf render failed", err)
	} else {
		run.TextPDFKey = s.saveArtifact(ctx, run, "optimized_resume_text.pdf", render.MIMEPDF, data, "text pdf upload failed")
	}

	if run.CoverLetter != "" {
		run.CoverKey = s.saveArtifact(ctx, run, "cover_letter.txt", "text/plain; charset=utf-8", []byte(run.CoverLetter), "cover letter upload failed")
	}
}

func (s *Service) saveArtifact(ctx context.Context, run *Run, fileName, contentType string, data []byte, failMsg string) string {
	key, _, err := s.store.Save(ctx, run.ID, fileName, contentType, bytes.NewReader(data))
	if err != nil {
		run.warn(failMsg, err)
		return ""
	}
	return key
}

func (r *Run) warn(msg string, err error) {
	metrics.IncRenderFailed()
	telemetry.Warn(msg, map[string]any{"run_id": r.ID, "error": err.Error()})
	r.RenderWarnings = append(r.RenderWarnings, fmt.Sprintf("%s: %v", msg, err))
}

// Get returns a run by ID.
func (s *Service) Get(ctx context.Context, id string) (Run, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns recent runs, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListRecent(ctx, limit)
}

// OpenArtifact resolves a run's artifact for streaming.
func (s *Service) OpenArtifact(ctx context.Context, id, format string) (body io.ReadCloser, fileName, contentType string, err error) {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", "", err
	}

	key, fileName, contentType := run.ArtifactKey(format)
	if fileName == "" {
		return nil, "", "", ErrUnsupportedFormat
	}
	if key == "" {
		return nil, "", "", ErrArtifactUnavailable
	}

	body, err = s.store.Open(ctx, key)
	if err != nil {
		return nil, "", "", fmt.Errorf("open artifact: %w", err)
	}
	return body, fileName, contentType, nil
}
