package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

// Source converts raw document bytes into per-page text.
type Source interface {
	Pages(r io.Reader, filename string) ([]document.Page, error)
}

// SupportedExtensions lists file extensions this tool can read.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Options tunes format-specific behaviour.
type Options struct {
	FallbackPdftotext bool // Retry unreadable PDFs with the pdftotext binary
}

// ForFile returns the appropriate source for a filename.
func ForFile(filename string, opts Options) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextSource{}, nil
	case ".md", ".markdown":
		return &MarkdownSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".pdf":
		return &PDFSource{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".docx":
		return &DOCXSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// OpenFile reads path and returns its pages. Every failure, including a
// missing file, comes back as an *UnreadableError.
func OpenFile(path string, opts Options) ([]document.Page, error) {
	name := filepath.Base(path)
	src, err := ForFile(name, opts)
	if err != nil {
		return nil, &UnreadableError{Document: name, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &UnreadableError{Document: name, Err: err}
	}
	return Parse(src, data, name)
}

// Parse runs src over data. Panics raised by third-party decoders on
// malformed input are turned into an *UnreadableError.
func Parse(src Source, data []byte, name string) (pages []document.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &UnreadableError{Document: name, Err: fmt.Errorf("decoder panic: %v", r)}
		}
	}()

	pages, err = src.Pages(bytes.NewReader(data), name)
	if err != nil {
		var ue *UnreadableError
		if errors.As(err, &ue) {
			if ue.Document == "" {
				ue.Document = name
			}
			return nil, ue
		}
		return nil, &UnreadableError{Document: name, Err: err}
	}
	return pages, nil
}
