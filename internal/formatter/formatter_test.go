package formatter

import (
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/subform-dev/subform/internal/models"
	tu "github.com/subform-dev/subform/internal/testing"
)

func sampleReport() *models.VocabularyReport {
	return &models.VocabularyReport{
		UniqueMatches: []string{"go", "run"},
		Present: []models.AffectedWord{
			{Lemma: "go", Count: 3, Forms: []string{"goes", "went"}},
		},
		Absent: []models.AffectedWord{
			{Lemma: "run", Count: 1, Forms: []string{"running"}},
		},
		Lemmas: map[string]string{"goes": "go", "went": "go", "running": "run"},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleReport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output should parse as CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[1][0] != "present" || records[1][1] != "go" || records[1][2] != "3" {
		t.Errorf("unexpected present row %v", records[1])
	}
	if records[2][0] != "absent" || records[2][1] != "run" {
		t.Errorf("unexpected absent row %v", records[2])
	}
}

func TestExportToMarkdown(t *testing.T) {
	t.Run("renders tables", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleReport())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := string(data)
		for _, want := range []string{
			"## In target vocabulary",
			"## Not in target vocabulary",
			"## Original forms",
			"| go | 3 | goes, went |",
			"| running | run |",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("pipe characters stay inside their cell", func(t *testing.T) {
		report := sampleReport()
		report.Present[0].Lemma = "go|went"
		report.Present[0].Forms = []string{"go|es"}

		data, err := ExportToMarkdown(report)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := string(data)
		if !strings.Contains(out, `go\|went`) {
			t.Error("expected lemma pipe to be escaped")
		}
		if !strings.Contains(out, `go\|es`) {
			t.Error("expected surface form pipe to be escaped")
		}
		if strings.Contains(out, "| go|went |") {
			t.Error("expected no raw pipe inside a cell")
		}
	})

	t.Run("empty report renders empty state", func(t *testing.T) {
		data, err := ExportToMarkdown(nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(string(data), "No vocabulary matches.") {
			t.Error("expected explicit empty state")
		}
	})
}

func TestExportToHTML(t *testing.T) {
	t.Run("escapes cell content", func(t *testing.T) {
		report := sampleReport()
		report.Present[0].Lemma = `<script>alert("x")</script>`

		data, err := ExportToHTML(report)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := string(data)
		if strings.Contains(out, "<script>") {
			t.Error("expected script tag to be escaped")
		}
		if !strings.Contains(out, "&lt;script&gt;") {
			t.Error("expected escaped form in output")
		}
	})

	t.Run("empty report", func(t *testing.T) {
		data, err := ExportToHTML(&models.VocabularyReport{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(data), "No vocabulary matches.") {
			t.Error("expected explicit empty state")
		}
	})
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleReport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "go ×3 (goes, went)") {
		t.Errorf("unexpected text output:\n%s", out)
	}
}

func TestWriteReport(t *testing.T) {
	t.Run("writes each format", func(t *testing.T) {
		tmpDir := t.TempDir()

		for _, format := range []string{"csv", "markdown", "html", "txt"} {
			path := filepath.Join(tmpDir, "report-"+format)
			written, err := WriteReport(sampleReport(), format, path)
			if err != nil {
				t.Fatalf("format %s: %v", format, err)
			}
			tu.AssertFileExists(t, written)
			if tu.MustReadFile(t, written) == "" {
				t.Errorf("format %s: expected non-empty file", format)
			}
		}
	})

	t.Run("defaults to markdown", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "vocab.md")

		if _, err := WriteReport(sampleReport(), "", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(tu.MustReadFile(t, path), "# Vocabulary report") {
			t.Error("expected markdown output")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := WriteReport(sampleReport(), "pdf", ""); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
