// Package upload validates candidate resume files and prepares them for
// transport. Both input paths (drag-and-drop readers and file-picker paths)
// converge on the same validation and FileData construction.
package upload

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/career-harvester/internal/types"
)

// MaxFileSize is the largest accepted resume file: 20 MiB.
const MaxFileSize = 20 << 20

// Accepted resume MIME types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrorKind classifies upload failures.
type ErrorKind string

const (
	// KindInvalidInput is a client-side validation failure (type or size).
	KindInvalidInput ErrorKind = "invalid_input"
	// KindReadError is a local file-read failure during preparation.
	KindReadError ErrorKind = "read_error"
)

// Error is a validation or read failure with a user-facing message.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upload error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("upload error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validate checks MIME type and size against the accepted limits without
// reading the file. Size may be -1 when unknown up front; the limit is then
// enforced while reading.
func Validate(mimeType string, size int64) error {
	if mimeType != MIMEPDF && mimeType != MIMEDOCX {
		return &Error{
			Kind:    KindInvalidInput,
			Message: "unsupported file type; please upload a PDF or DOCX resume",
		}
	}
	if size > MaxFileSize {
		return &Error{
			Kind:    KindInvalidInput,
			Message: "file is too large; the maximum size is 20 MB",
		}
	}
	return nil
}

// Process validates and reads a resume from r, producing the FileData the
// session holds for the rest of its lifetime. size may be -1 when unknown.
// The enhanced flag is carried through to the upload untouched; it does not
// alter validation.
func Process(r io.Reader, filename, mimeType string, size int64, enhanced bool) (*types.FileData, error) {
	if mimeType == "" {
		mimeType = MIMETypeForFilename(filename)
	}
	if err := Validate(mimeType, size); err != nil {
		return nil, err
	}

	// Read one byte past the limit so oversized streams with unknown size
	// are still rejected.
	raw, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, &Error{
			Kind:    KindReadError,
			Message: "error reading file",
			Cause:   err,
		}
	}
	if len(raw) > MaxFileSize {
		return nil, &Error{
			Kind:    KindInvalidInput,
			Message: "file is too large; the maximum size is 20 MB",
		}
	}

	return &types.FileData{
		Raw:      raw,
		Base64:   base64.StdEncoding.EncodeToString(raw),
		MIMEType: mimeType,
		Filename: filename,
		Enhanced: enhanced,
	}, nil
}

// ProcessFile is the file-picker path: it stats and opens a local file, then
// hands it to Process.
func ProcessFile(path string, enhanced bool) (*types.FileData, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &Error{
			Kind:    KindReadError,
			Message: "error reading file",
			Cause:   err,
		}
	}

	filename := filepath.Base(path)
	if err := Validate(MIMETypeForFilename(filename), info.Size()); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{
			Kind:    KindReadError,
			Message: "error reading file",
			Cause:   err,
		}
	}
	defer func() { _ = f.Close() }()

	return Process(f, filename, MIMETypeForFilename(filename), info.Size(), enhanced)
}

// MIMETypeForFilename infers the MIME type from the file extension.
// Unknown extensions return an empty string, which fails validation.
func MIMETypeForFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDOCX
	default:
		return ""
	}
}
