package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/kmanav329/ai-resume-screener/resume/model"
)

func readDocumentXML(t *testing.T, docxBytes []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		t.Fatalf("open docx zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		return string(raw)
	}
	t.Fatal("document.xml not found in archive")
	return ""
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q", needle)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected output to not contain %q", needle)
	}
}

func TestRenderDOCXFullDocument(t *testing.T) {
	docxBytes, err := RenderDOCX(fullDocument())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	documentXML := readDocumentXML(t, docxBytes)
	assertContains(t, documentXML, "Ada Lovelace")
	assertContains(t, documentXML, `<w:color w:val="0070D2"/>`)
	assertContains(t, documentXML, `<w:jc w:val="center"/>`)
	assertContains(t, documentXML, "PROFESSIONAL SUMMARY")
	assertContains(t, documentXML, "Languages: ")
	assertContains(t, documentXML, "Go, Python")
	assertContains(t, documentXML, "Engineer | Example Corp")
	assertContains(t, documentXML, "(2020-2024)")
	assertContains(t, documentXML, "Built the pipeline.")
	assertContains(t, documentXML, "BSc Mathematics - University of London")
}

func TestRenderDOCXSkipsAbsentSections(t *testing.T) {
	docxBytes, err := RenderDOCX(model.Document{Name: "Grace Hopper"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	documentXML := readDocumentXML(t, docxBytes)
	assertContains(t, documentXML, "Grace Hopper")
	assertNotContains(t, documentXML, "PROFESSIONAL SUMMARY")
	assertNotContains(t, documentXML, "TECHNICAL SKILLS")
	assertNotContains(t, documentXML, "PROFESSIONAL EXPERIENCE")
	assertNotContains(t, documentXML, "EDUCATION")
}

func TestRenderDOCXEscapesMarkupCharacters(t *testing.T) {
	doc := model.Document{
		Name:    "A&B <Consulting>",
		Summary: `Shipped "big" systems & more`,
	}
	docxBytes, err := RenderDOCX(doc)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	documentXML := readDocumentXML(t, docxBytes)
	assertContains(t, documentXML, "A&amp;B &lt;Consulting&gt;")
	assertNotContains(t, documentXML, "<Consulting>")
	if err := validateDocumentXML(documentXML); err != nil {
		t.Fatalf("expected well-formed XML: %v", err)
	}
}

func TestRenderDOCXFreeTextSkills(t *testing.T) {
	doc := model.Document{
		Name:   "Katherine Johnson",
		Skills: model.SkillsField{FreeText: "Orbital mechanics, FORTRAN"},
	}
	docxBytes, err := RenderDOCX(doc)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	documentXML := readDocumentXML(t, docxBytes)
	assertContains(t, documentXML, "TECHNICAL SKILLS")
	assertContains(t, documentXML, "Orbital mechanics, FORTRAN")
}
