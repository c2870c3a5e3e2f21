package optimize

import (
	"time"

	"github.com/kmanav329/ai-resume-screener/internal/gap"
	"github.com/kmanav329/ai-resume-screener/internal/rescore"
	"github.com/kmanav329/ai-resume-screener/resume/model"
)

// RunResponse is the API shape of an optimization run.
type RunResponse struct {
	ID             string             `json:"id"`
	ResumeFilename string             `json:"resume_filename"`
	JobSource      string             `json:"job_source"`
	JobURL         string             `json:"job_url,omitempty"`
	GapReport      gap.Report         `json:"gap_report"`
	Rescore        rescore.Comparison `json:"rescore"`
	Resume         model.Document     `json:"resume"`
	CoverLetter    string             `json:"cover_letter"`
	Artifacts      map[string]bool    `json:"artifacts"`
	RenderWarnings []string           `json:"render_warnings"`
	CreatedAt      time.Time          `json:"created_at"`
}

// RunSummary is the list shape: reports without the full document payload.
type RunSummary struct {
	ID              string    `json:"id"`
	ResumeFilename  string    `json:"resume_filename"`
	JobSource       string    `json:"job_source"`
	MatchPercentage int       `json:"match_percentage"`
	RescoredMatch   int       `json:"rescored_match"`
	Delta           int       `json:"delta"`
	CreatedAt       time.Time `json:"created_at"`
}

func toRunResponse(run Run) RunResponse {
	warnings := run.RenderWarnings
	if warnings == nil {
		warnings = []string{}
	}
	return RunResponse{
		ID:             run.ID,
		ResumeFilename: run.ResumeFilename,
		JobSource:      run.JobSource,
		JobURL:         run.JobURL,
		GapReport:      run.GapReport,
		Rescore:        run.Rescore,
		Resume:         run.Resume,
		CoverLetter:    run.CoverLetter,
		Artifacts: map[string]bool{
			FormatDocx:    run.DocxKey != "",
			FormatPDF:     run.PDFKey != "",
			FormatTextPDF: run.TextPDFKey != "",
			FormatCover:   run.CoverKey != "",
		},
		RenderWarnings: warnings,
		CreatedAt:      run.CreatedAt,
	}
}

func toRunSummary(run Run) RunSummary {
	return RunSummary{
		ID:              run.ID,
		ResumeFilename:  run.ResumeFilename,
		JobSource:       run.JobSource,
		MatchPercentage: run.GapReport.MatchPercentage,
		RescoredMatch:   run.Rescore.After.MatchPercentage,
		Delta:           run.Rescore.Delta,
		CreatedAt:       run.CreatedAt,
	}
}
