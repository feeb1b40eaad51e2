// Package extract pulls plain text out of uploaded resume files so the AI
// delegates can work on it. PDF and DOCX are handled with dedicated parsers;
// plain text and markdown pass through.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Placeholders returned for documents with no extractable text.
const (
	EmptyPDFPlaceholder  = "[PDF contains no extractable text - may be image-based]"
	EmptyDocxPlaceholder = "[Document contains no extractable text]"
)

// MIME types this package understands.
const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// UnsupportedFormatError indicates a file format that cannot be parsed.
type UnsupportedFormatError struct {
	Filename string
	Message  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Filename)
}

// ParseError indicates a supported format that failed to parse.
type ParseError struct {
	Filename string
	Cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Filename, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ResumeText extracts text from a resume file, choosing the parser by
// extension and MIME type. Legacy .doc files are rejected with a
// conversion hint; unknown formats are attempted as plain text.
func ResumeText(content []byte, filename, mimeType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case ext == ".pdf" || mimeType == mimePDF:
		return pdfText(content, filename)
	case ext == ".docx" || mimeType == mimeDOCX:
		return docxText(content, filename)
	case ext == ".doc":
		return "", &UnsupportedFormatError{
			Filename: filename,
			Message:  "legacy .doc format not supported; please convert to .docx or .pdf",
		}
	case ext == ".txt" || ext == ".md" || ext == ".markdown":
		return plainText(content), nil
	default:
		return plainText(content), nil
	}
}

func pdfText(content []byte, filename string) (string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", &ParseError{Filename: filename, Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if sb.Len() > 0 && text != "" {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return EmptyPDFPlaceholder, nil
	}
	return result, nil
}

var docxRunPattern = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

func docxText(content []byte, filename string) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &ParseError{Filename: filename, Cause: err}
	}
	defer func() { _ = doc.Close() }()

	// GetContent returns the raw document XML; collect the text runs.
	raw := doc.Editable().GetContent()
	var sb strings.Builder
	for _, match := range docxRunPattern.FindAllStringSubmatch(raw, -1) {
		sb.WriteString(match[1])
		sb.WriteString(" ")
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return EmptyDocxPlaceholder, nil
	}
	return result, nil
}

// plainText decodes file bytes as text, replacing invalid sequences rather
// than failing.
func plainText(content []byte) string {
	if utf8.Valid(content) {
		return strings.TrimSpace(string(content))
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(content), "�"))
}
