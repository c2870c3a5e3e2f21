package render

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// MIMEPDF is the content type of rendered PDF artifacts.
const MIMEPDF = "application/pdf"

// RenderTextPDF lays out plain text as wrapped paragraphs in an A4 PDF.
// The core font requires a single-byte encoding, so the text is transcoded
// to Windows-1252 with unencodable runes dropped. Lossy, and intentionally so.
func RenderTextPDF(text string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	for _, line := range strings.Split(text, "\n") {
		encoded := encodeLossyCP1252(line)
		if strings.TrimSpace(encoded) == "" {
			pdf.Ln(4)
			continue
		}
		pdf.MultiCell(0, 5.5, encoded, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeLossyCP1252 transcodes rune by rune and drops anything the target
// encoding cannot represent.
func encodeLossyCP1252(s string) string {
	enc := charmap.Windows1252.NewEncoder()
	var b strings.Builder
	for _, r := range s {
		out, err := enc.String(string(r))
		if err != nil {
			continue
		}
		b.WriteString(out)
	}
	return b.String()
}
