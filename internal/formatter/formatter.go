// package formatter provides functions to export vocabulary reports to various formats (CSV, Markdown, HTML, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html"
	"os"
	"strconv"
	"strings"

	"github.com/subform-dev/subform/internal/models"
	"github.com/subform-dev/subform/internal/view"
)

// ExportToCSV converts a VocabularyReport to CSV format with columns: Category, Lemma, Count, Forms
func ExportToCSV(report *models.VocabularyReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Category", "Lemma", "Count", "Forms"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	write := func(category string, words []models.AffectedWord) error {
		for _, w := range words {
			record := []string{category, w.Lemma, strconv.Itoa(w.Count), strings.Join(w.Forms, "|")}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	}

	if !report.Empty() {
		if err := write("present", report.Present); err != nil {
			return nil, err
		}
		if err := write("absent", report.Absent); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a VocabularyReport to Markdown with one table per
// category and the original→lemma debug grid.
func ExportToMarkdown(report *models.VocabularyReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Vocabulary report\n\n")

	vv := view.BuildVocab(report)
	if vv.Empty {
		buf.WriteString("No vocabulary matches.\n")
		return buf.Bytes(), nil
	}

	buf.WriteString(fmt.Sprintf("**Unique matches**: %d\n\n", len(report.UniqueMatches)))

	table := func(title string, rows [][]string) {
		buf.WriteString(fmt.Sprintf("## %s\n\n", title))
		buf.WriteString("| Lemma | Count | Surface forms |\n")
		buf.WriteString("| --- | --- | --- |\n")
		for _, row := range rows {
			buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n", escapeCell(row[0]), escapeCell(row[1]), escapeCell(row[2])))
		}
		buf.WriteString("\n")
	}

	table("In target vocabulary", vv.PresentRows)
	table("Not in target vocabulary", vv.AbsentRows)

	buf.WriteString("## Original forms\n\n")
	buf.WriteString("| Original | Lemma |\n")
	buf.WriteString("| --- | --- |\n")
	for _, row := range vv.MappingRows {
		buf.WriteString(fmt.Sprintf("| %s | %s |\n", escapeCell(row[0]), escapeCell(row[1])))
	}

	return buf.Bytes(), nil
}

// escapeCell escapes pipe characters in transcript-derived text so a lemma or
// surface form cannot break out of its table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// ExportToHTML converts a VocabularyReport to standalone HTML tables. Every
// cell is escaped: lemmas and surface forms come from transcript text.
func ExportToHTML(report *models.VocabularyReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("<!doctype html>\n<html>\n<head><meta charset=\"utf-8\"><title>Vocabulary report</title></head>\n<body>\n")
	buf.WriteString("<h1>Vocabulary report</h1>\n")

	vv := view.BuildVocab(report)
	if vv.Empty {
		buf.WriteString("<p>No vocabulary matches.</p>\n</body>\n</html>\n")
		return buf.Bytes(), nil
	}

	writeTable := func(title string, headers []string, rows [][]string) {
		buf.WriteString(fmt.Sprintf("<h2>%s</h2>\n<table>\n<tr>", html.EscapeString(title)))
		for _, h := range headers {
			buf.WriteString(fmt.Sprintf("<th>%s</th>", html.EscapeString(h)))
		}
		buf.WriteString("</tr>\n")
		for _, row := range rows {
			buf.WriteString("<tr>")
			for _, cell := range row {
				buf.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(cell)))
			}
			buf.WriteString("</tr>\n")
		}
		buf.WriteString("</table>\n")
	}

	writeTable("In target vocabulary", view.TableHeaders(), vv.PresentRows)
	writeTable("Not in target vocabulary", view.TableHeaders(), vv.AbsentRows)
	writeTable("Original forms", view.MappingHeaders(), vv.MappingRows)

	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// ExportToText converts a VocabularyReport to plain text format
func ExportToText(report *models.VocabularyReport) ([]byte, error) {
	var buf bytes.Buffer

	if report.Empty() {
		buf.WriteString("No vocabulary matches.\n")
		return buf.Bytes(), nil
	}

	buf.WriteString(fmt.Sprintf("Unique matches: %d\n\n", len(report.UniqueMatches)))

	section := func(title string, words []models.AffectedWord) {
		buf.WriteString(title + "\n")
		for i, w := range words {
			forms := ""
			if len(w.Forms) > 0 {
				forms = fmt.Sprintf(" (%s)", strings.Join(w.Forms, ", "))
			}
			buf.WriteString(fmt.Sprintf("%d. %s ×%d%s\n", i+1, w.Lemma, w.Count, forms))
		}
		buf.WriteString("\n")
	}

	section("In target vocabulary:", report.Present)
	section("Not in target vocabulary:", report.Absent)

	return buf.Bytes(), nil
}

// WriteReport exports a report in the given format, writing to path and
// returning the written filename. Format defaults to markdown.
func WriteReport(report *models.VocabularyReport, format, path string) (string, error) {
	var (
		data []byte
		err  error
		ext  string
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(report)
		ext = ".csv"
	case "html":
		data, err = ExportToHTML(report)
		ext = ".html"
	case "txt", "text":
		data, err = ExportToText(report)
		ext = ".txt"
	case "", "md", "markdown":
		data, err = ExportToMarkdown(report)
		ext = ".md"
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	if path == "" {
		path = "vocabulary" + ext
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}
