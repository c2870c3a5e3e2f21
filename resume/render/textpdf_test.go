package render

import (
	"bytes"
	"testing"
)

func TestRenderTextPDFProducesPDF(t *testing.T) {
	data, err := RenderTextPDF("Ada Lovelace\n\nPROFESSIONAL SUMMARY\nAnalytical engineer.")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with PDF header: %q", data[:min(8, len(data))])
	}
}

func TestRenderTextPDFSurvivesNonLatinText(t *testing.T) {
	if _, err := RenderTextPDF("Résumé for 王小明 🚀"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
}

func TestEncodeLossyCP1252DropsUnencodable(t *testing.T) {
	got := encodeLossyCP1252("Résumé 🚀 done")
	if got != "Résumé  done" {
		t.Fatalf("got %q", got)
	}
}
