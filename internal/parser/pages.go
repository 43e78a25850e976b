package parser

import (
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

// pageBuilder accumulates the blocks of a structured document (markdown,
// HTML, DOCX) into a single page, remembering which lines were headings.
type pageBuilder struct {
	lines    []string
	headings []string
}

func (b *pageBuilder) heading(text string) {
	text = collapse(text)
	if text == "" {
		return
	}
	b.lines = append(b.lines, text)
	b.headings = append(b.headings, text)
}

func (b *pageBuilder) paragraph(text string) {
	for _, line := range strings.Split(text, "\n") {
		if line = collapse(line); line != "" {
			b.lines = append(b.lines, line)
		}
	}
}

// pages returns nil when nothing but whitespace was collected.
func (b *pageBuilder) pages() []document.Page {
	if len(b.lines) == 0 {
		return nil
	}
	return []document.Page{{
		Number:   1,
		Text:     strings.Join(b.lines, "\n"),
		Headings: b.headings,
	}}
}

// splitPages splits extracted text on form feeds. Page numbers follow the
// position in the source, so blank pages still consume a number.
func splitPages(text string) []document.Page {
	var pages []document.Page
	for i, raw := range strings.Split(text, "\f") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		pages = append(pages, document.Page{Number: i + 1, Text: raw})
	}
	return pages
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
