package render

import (
	"html"
	"strings"

	"github.com/kmanav329/ai-resume-screener/resume/model"
)

// resumeCSS is the fixed stylesheet combined with generated markup before
// PDF conversion. The markup itself stays a constrained subset: headings,
// bold, italic, lists and paragraphs only.
const resumeCSS = `
body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; color: #222; margin: 2.2cm; }
h1 { font-size: 22pt; color: #0070D2; text-align: center; margin-bottom: 2px; }
p.contact { text-align: center; margin-top: 0; color: #444; }
h2 { font-size: 13pt; color: #0070D2; border-bottom: 1px solid #0070D2; margin-top: 18px; }
p.role { font-weight: bold; margin-bottom: 2px; }
span.dates { font-style: italic; font-weight: normal; color: #555; }
ul { margin-top: 4px; }
`

// RenderHTML renders the structured rewrite as a standalone HTML page.
// Sections follow the same fixed order as the other renderers and absent
// sections are omitted entirely.
func RenderHTML(doc model.Document) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>")
	b.WriteString(resumeCSS)
	b.WriteString("</style></head><body>")

	if strings.TrimSpace(doc.Name) != "" {
		b.WriteString("<h1>" + html.EscapeString(doc.Name) + "</h1>")
	}
	if strings.TrimSpace(doc.ContactInfo) != "" {
		b.WriteString(`<p class="contact">` + html.EscapeString(doc.ContactInfo) + "</p>")
	}

	if strings.TrimSpace(doc.Summary) != "" {
		b.WriteString("<h2>Professional Summary</h2>")
		b.WriteString("<p>" + html.EscapeString(doc.Summary) + "</p>")
	}

	if !doc.Skills.IsEmpty() {
		b.WriteString("<h2>Technical Skills</h2>")
		if doc.Skills.IsMapping() {
			b.WriteString("<ul>")
			for _, cat := range doc.Skills.Categories {
				b.WriteString("<li><b>" + html.EscapeString(cat.Name) + ":</b> " + html.EscapeString(cat.Items) + "</li>")
			}
			b.WriteString("</ul>")
		} else {
			b.WriteString("<p>" + html.EscapeString(doc.Skills.FreeText) + "</p>")
		}
	}

	if len(doc.Experience) > 0 {
		b.WriteString("<h2>Professional Experience</h2>")
		for _, job := range doc.Experience {
			b.WriteString(`<p class="role">` + html.EscapeString(joinNonEmpty(" | ", job.Role, job.Company)))
			if strings.TrimSpace(job.Dates) != "" {
				b.WriteString(` <span class="dates">(` + html.EscapeString(job.Dates) + ")</span>")
			}
			b.WriteString("</p>")
			if len(job.Bullets) > 0 {
				b.WriteString("<ul>")
				for _, bullet := range job.Bullets {
					b.WriteString("<li>" + html.EscapeString(bullet) + "</li>")
				}
				b.WriteString("</ul>")
			}
		}
	}

	if len(doc.Education) > 0 {
		b.WriteString("<h2>Education &amp; Certifications</h2><ul>")
		for _, edu := range doc.Education {
			b.WriteString("<li>" + html.EscapeString(joinNonEmpty(" - ", edu.Degree, edu.School)) + "</li>")
		}
		b.WriteString("</ul>")
	}

	b.WriteString("</body></html>")
	return b.String()
}
