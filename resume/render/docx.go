package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/kmanav329/ai-resume-screener/resume/model"
)

// MIMEDocx is the content type of the rendered Word document.
const MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const accentColor = "0070D2"

// RenderDOCX builds a Word document from the structured rewrite. Sections are
// walked in fixed order and any absent section is skipped entirely, heading
// included.
func RenderDOCX(doc model.Document) ([]byte, error) {
	documentXML := buildDocumentXML(doc)
	if err := validateDocumentXML(documentXML); err != nil {
		return nil, err
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML},
	}
	for _, part := range parts {
		dst, err := writer.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := dst.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func buildDocumentXML(doc model.Document) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	if strings.TrimSpace(doc.Name) != "" {
		b.WriteString(paragraph(paraCentered, run(doc.Name, runProps{Bold: true, SizeHalfPts: 48, Color: accentColor})))
	}
	if strings.TrimSpace(doc.ContactInfo) != "" {
		b.WriteString(paragraph(paraCentered, run(doc.ContactInfo, runProps{})))
	}

	if strings.TrimSpace(doc.Summary) != "" {
		b.WriteString(heading("PROFESSIONAL SUMMARY"))
		b.WriteString(paragraph(paraPlain, run(doc.Summary, runProps{})))
	}

	if !doc.Skills.IsEmpty() {
		b.WriteString(heading("TECHNICAL SKILLS"))
		if doc.Skills.IsMapping() {
			for _, cat := range doc.Skills.Categories {
				b.WriteString(paragraph(paraPlain,
					run(cat.Name+": ", runProps{Bold: true}),
					run(cat.Items, runProps{}),
				))
			}
		} else {
			b.WriteString(paragraph(paraPlain, run(doc.Skills.FreeText, runProps{})))
		}
	}

	if len(doc.Experience) > 0 {
		b.WriteString(heading("PROFESSIONAL EXPERIENCE"))
		for _, job := range doc.Experience {
			title := joinNonEmpty(" | ", job.Role, job.Company)
			runs := []string{run(title, runProps{Bold: true, SizeHalfPts: 22})}
			if strings.TrimSpace(job.Dates) != "" {
				runs = append(runs, run("  ("+job.Dates+")", runProps{Italic: true}))
			}
			b.WriteString(paragraph(paraPlain, runs...))
			for _, bullet := range job.Bullets {
				b.WriteString(paragraph(paraBullet, run(bullet, runProps{})))
			}
		}
	}

	if len(doc.Education) > 0 {
		b.WriteString(heading("EDUCATION & CERTIFICATIONS"))
		for _, edu := range doc.Education {
			b.WriteString(paragraph(paraPlain, run(joinNonEmpty(" - ", edu.Degree, edu.School), runProps{})))
		}
	}

	b.WriteString(`<w:sectPr/></w:body></w:document>`)
	return b.String()
}

type paraStyle int

const (
	paraPlain paraStyle = iota
	paraCentered
	paraBullet
)

type runProps struct {
	Bold        bool
	Italic      bool
	SizeHalfPts int
	Color       string
}

func heading(text string) string {
	return paragraph(paraPlain, run(text, runProps{Bold: true, SizeHalfPts: 26, Color: accentColor}))
}

func paragraph(style paraStyle, runs ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	switch style {
	case paraCentered:
		b.WriteString(`<w:pPr><w:jc w:val="center"/></w:pPr>`)
	case paraBullet:
		b.WriteString(`<w:pPr><w:ind w:left="360"/></w:pPr>`)
		b.WriteString(run("• ", runProps{}))
	}
	for _, r := range runs {
		b.WriteString(r)
	}
	b.WriteString("</w:p>")
	return b.String()
}

func run(text string, props runProps) string {
	var b strings.Builder
	b.WriteString("<w:r>")
	if props.Bold || props.Italic || props.SizeHalfPts > 0 || props.Color != "" {
		b.WriteString("<w:rPr>")
		if props.Bold {
			b.WriteString("<w:b/>")
		}
		if props.Italic {
			b.WriteString("<w:i/>")
		}
		if props.Color != "" {
			b.WriteString(`<w:color w:val="` + props.Color + `"/>`)
		}
		if props.SizeHalfPts > 0 {
			b.WriteString(fmt.Sprintf(`<w:sz w:val="%d"/>`, props.SizeHalfPts))
		}
		b.WriteString("</w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escapeXML(text))
	b.WriteString("</w:t></w:r>")
	return b.String()
}

func escapeXML(text string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(text))
	return buf.String()
}

// validateDocumentXML round-trips the produced markup through the XML parser
// so a malformed document never leaves this package.
func validateDocumentXML(xmlText string) error {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("document.xml parse failed: %w", err)
		}
	}
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const relsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`
