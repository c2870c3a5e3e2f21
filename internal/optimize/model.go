package optimize

import (
	"time"

	"github.com/kmanav329/ai-resume-screener/internal/gap"
	"github.com/kmanav329/ai-resume-screener/internal/rescore"
	"github.com/kmanav329/ai-resume-screener/resume/model"
	"github.com/kmanav329/ai-resume-screener/resume/render"
)

// Job source values recorded on a run.
const (
	JobSourceText = "text"
	JobSourceURL  = "url"
)

// Artifact format identifiers used in download URLs and storage keys.
const (
	FormatDocx    = "docx"
	FormatPDF     = "pdf"
	FormatTextPDF = "text"
	FormatCover   = "cover"
)

// Run is one completed optimization: the gap analysis, the rewritten resume,
// the rescore and the rendered artifact keys.
type Run struct {
	ID             string
	ResumeFilename string
	JobSource      string
	JobURL         string
	GapReport      gap.Report
	Rescore        rescore.Comparison
	Resume         model.Document
	CoverLetter    string
	DocxKey        string
	PDFKey         string
	TextPDFKey     string
	CoverKey       string
	RenderWarnings []string
	CreatedAt      time.Time
}

// ArtifactKey returns the storage key for a download format, or "" when the
// artifact was not produced.
func (r Run) ArtifactKey(format string) (key, fileName, contentType string) {
	switch format {
	case FormatDocx:
		return r.DocxKey, "optimized_resume.docx", render.MIMEDocx
	case FormatPDF:
		return r.PDFKey, "optimized_resume.pdf", render.MIMEPDF
	case FormatTextPDF:
		return r.TextPDFKey, "optimized_resume_text.pdf", render.MIMEPDF
	case FormatCover:
		return r.CoverKey, "cover_letter.txt", "text/plain; charset=utf-8"
	default:
		return "", "", ""
	}
}
