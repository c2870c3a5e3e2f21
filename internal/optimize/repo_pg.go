package optimize

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kmanav329/ai-resume-screener/internal/gap"
	"github.com/kmanav329/ai-resume-screener/internal/rescore"
	"github.com/kmanav329/ai-resume-screener/resume/model"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a run with the report columns serialized as JSONB.
func (r *PGRepo) Create(ctx context.Context, run Run) error {
	const query = `
INSERT INTO optimizations (
    id,
    resume_filename,
    job_source,
    job_url,
    gap_report,
    rescore_report,
    resume_json,
    cover_letter,
    docx_key,
    pdf_key,
    text_pdf_key,
    cover_key,
    render_warnings,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	gapJSON, err := json.Marshal(run.GapReport)
	if err != nil {
		return fmt.Errorf("marshal gap report: %w", err)
	}
	rescoreJSON, err := json.Marshal(run.Rescore)
	if err != nil {
		return fmt.Errorf("marshal rescore report: %w", err)
	}
	resumeJSON, err := json.Marshal(run.Resume)
	if err != nil {
		return fmt.Errorf("marshal resume: %w", err)
	}
	warnings := run.RenderWarnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		run.ID,
		run.ResumeFilename,
		run.JobSource,
		nullString(run.JobURL),
		gapJSON,
		rescoreJSON,
		resumeJSON,
		run.CoverLetter,
		nullString(run.DocxKey),
		nullString(run.PDFKey),
		nullString(run.TextPDFKey),
		nullString(run.CoverKey),
		warningsJSON,
		run.CreatedAt,
	)
	return err
}

// GetByID returns a run by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Run, error) {
	const query = `
SELECT id, resume_filename, job_source, job_url, gap_report, rescore_report, resume_json, cover_letter, docx_key, pdf_key, text_pdf_key, cover_key, render_warnings, created_at
FROM optimizations
WHERE id = $1`
	run, err := scanRun(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, err
	}
	return run, nil
}

// ListRecent returns up to limit runs, newest first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	const query = `
SELECT id, resume_filename, job_source, job_url, gap_report, rescore_report, resume_json, cover_letter, docx_key, pdf_key, text_pdf_key, cover_key, render_warnings, created_at
FROM optimizations
ORDER BY created_at DESC
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run          Run
		jobURL       sql.NullString
		docxKey      sql.NullString
		pdfKey       sql.NullString
		textPDFKey   sql.NullString
		coverKey     sql.NullString
		gapJSON      []byte
		rescoreJSON  []byte
		resumeJSON   []byte
		warningsJSON []byte
	)
	err := row.Scan(
		&run.ID,
		&run.ResumeFilename,
		&run.JobSource,
		&jobURL,
		&gapJSON,
		&rescoreJSON,
		&resumeJSON,
		&run.CoverLetter,
		&docxKey,
		&pdfKey,
		&textPDFKey,
		&coverKey,
		&warningsJSON,
		&run.CreatedAt,
	)
	if err != nil {
		return Run{}, err
	}

	run.JobURL = jobURL.String
	run.DocxKey = docxKey.String
	run.PDFKey = pdfKey.String
	run.TextPDFKey = textPDFKey.String
	run.CoverKey = coverKey.String

	if len(gapJSON) > 0 {
		var report gap.Report
		if err := json.Unmarshal(gapJSON, &report); err != nil {
			return Run{}, fmt.Errorf("unmarshal gap report: %w", err)
		}
		run.GapReport = report
	}
	if len(rescoreJSON) > 0 {
		var comparison rescore.Comparison
		if err := json.Unmarshal(rescoreJSON, &comparison); err != nil {
			return Run{}, fmt.Errorf("unmarshal rescore report: %w", err)
		}
		run.Rescore = comparison
	}
	if len(resumeJSON) > 0 {
		var doc model.Document
		if err := json.Unmarshal(resumeJSON, &doc); err != nil {
			return Run{}, fmt.Errorf("unmarshal resume: %w", err)
		}
		run.Resume = doc
	}
	if len(warningsJSON) > 0 {
		if err := json.Unmarshal(warningsJSON, &run.RenderWarnings); err != nil {
			return Run{}, fmt.Errorf("unmarshal warnings: %w", err)
		}
	}
	return run, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
