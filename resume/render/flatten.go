package render

import (
	"strings"

	"github.com/kmanav329/ai-resume-screener/resume/model"
)

// Flatten serializes a Document to plain text in the fixed section order
// name/contact, summary, skills, experience, education. This is the single
// serialization used both by the plain-text PDF renderer and by rescoring, so
// before/after scores always compare the same textual form.
func Flatten(doc model.Document) string {
	var b strings.Builder

	if strings.TrimSpace(doc.Name) != "" {
		b.WriteString(doc.Name)
		b.WriteString("\n")
	}
	if strings.TrimSpace(doc.ContactInfo) != "" {
		b.WriteString(doc.ContactInfo)
		b.WriteString("\n")
	}

	if strings.TrimSpace(doc.Summary) != "" {
		b.WriteString("\nPROFESSIONAL SUMMARY\n")
		b.WriteString(doc.Summary)
		b.WriteString("\n")
	}

	if !doc.Skills.IsEmpty() {
		b.WriteString("\nTECHNICAL SKILLS\n")
		if doc.Skills.IsMapping() {
			for _, cat := range doc.Skills.Categories {
				b.WriteString(cat.Name)
				b.WriteString(": ")
				b.WriteString(cat.Items)
				b.WriteString("\n")
			}
		} else {
			b.WriteString(doc.Skills.FreeText)
			b.WriteString("\n")
		}
	}

	if len(doc.Experience) > 0 {
		b.WriteString("\nPROFESSIONAL EXPERIENCE\n")
		for _, job := range doc.Experience {
			b.WriteString(joinNonEmpty(" | ", job.Role, job.Company))
			if strings.TrimSpace(job.Dates) != "" {
				b.WriteString(" (" + job.Dates + ")")
			}
			b.WriteString("\n")
			for _, bullet := range job.Bullets {
				b.WriteString("- ")
				b.WriteString(bullet)
				b.WriteString("\n")
			}
		}
	}

	if len(doc.Education) > 0 {
		b.WriteString("\nEDUCATION & CERTIFICATIONS\n")
		for _, edu := range doc.Education {
			b.WriteString(joinNonEmpty(" - ", edu.Degree, edu.School))
			b.WriteString("\n")
		}
	}

	return strings.TrimSpace(b.String())
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, sep)
}
