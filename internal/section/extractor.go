// Package section turns page text into titled section candidates.
//
// Pages from formats that mark headings (markdown, HTML, DOCX) are split on
// those headings. Raw page text (PDF, plain text) is split on lines that
// look like headings. Boilerplate such as page numbers, copyright notices
// and running headers is removed first, and a page that yields no titled
// section falls back to a single section covering the whole page.
package section

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/chunker"
	"github.com/dgallion1/docrank/internal/document"
)

// Options controls extraction.
type Options struct {
	MinBodyChars      int     // Sections with a shorter body are dropped
	MaxTitleChars     int     // Longer titles are truncated; longer raw lines are never titles
	MaxPages          int     // Pages considered per document (0 = all)
	RepeatedLineRatio float64 // Share of pages a line must appear on to count as a running header/footer
	TableLineRatio    float64 // Share of numeric lines that marks a page as a table
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		MinBodyChars:      40,
		MaxTitleChars:     100,
		MaxPages:          0,
		RepeatedLineRatio: 0.5,
		TableLineRatio:    0.6,
	}
}

// Extractor finds sections in a document's pages. It holds no state
// between calls.
type Extractor struct {
	opts Options
}

// New returns an Extractor. Zero-valued options fall back to defaults.
func New(opts Options) *Extractor {
	def := DefaultOptions()
	if opts.MinBodyChars <= 0 {
		opts.MinBodyChars = def.MinBodyChars
	}
	if opts.MaxTitleChars <= 0 {
		opts.MaxTitleChars = def.MaxTitleChars
	}
	if opts.RepeatedLineRatio <= 0 {
		opts.RepeatedLineRatio = def.RepeatedLineRatio
	}
	if opts.TableLineRatio <= 0 {
		opts.TableLineRatio = def.TableLineRatio
	}
	return &Extractor{opts: opts}
}

// Extract returns the document's sections in page and line order. Order
// counts from zero within the document.
func (e *Extractor) Extract(documentID string, pages []document.Page) []document.Section {
	if e.opts.MaxPages > 0 && len(pages) > e.opts.MaxPages {
		pages = pages[:e.opts.MaxPages]
	}
	repeated := repeatedLines(pages, e.opts.RepeatedLineRatio)

	var out []document.Section
	for _, page := range pages {
		lines := cleanLines(page.Text, repeated)
		if len(lines) == 0 || isTablePage(lines, e.opts.TableLineRatio) {
			continue
		}
		for _, s := range e.pageSections(page, lines) {
			s.DocumentID = documentID
			s.Page = page.Number
			s.Order = len(out)
			out = append(out, s)
		}
	}
	return out
}

type block struct {
	title string
	body  []string
}

func (e *Extractor) pageSections(page document.Page, lines []string) []document.Section {
	declared := len(page.Headings) > 0

	var blocks []block
	for _, line := range lines {
		heading := page.IsHeading(line)
		if !declared {
			heading = isTitle(line, e.opts.MaxTitleChars)
		}
		if heading {
			blocks = append(blocks, block{title: cleanTitle(line)})
			continue
		}
		// Text before the first heading is the tail of the previous
		// page's section and is dropped unless the page has no headings.
		if len(blocks) > 0 {
			blocks[len(blocks)-1].body = append(blocks[len(blocks)-1].body, line)
		}
	}

	var secs []document.Section
	for _, b := range blocks {
		body := strings.Join(b.body, " ")
		if b.title == "" || isBoilerplate(b.title) || utf8.RuneCountInString(body) < e.opts.MinBodyChars {
			continue
		}
		secs = append(secs, document.Section{
			Title: chunker.Truncate(b.title, e.opts.MaxTitleChars),
			Body:  body,
		})
	}
	if len(secs) > 0 {
		return secs
	}

	body := strings.Join(lines, " ")
	if utf8.RuneCountInString(body) < e.opts.MinBodyChars {
		return nil
	}
	return []document.Section{{
		Title: chunker.Truncate(SynthesizeTitle(lines), e.opts.MaxTitleChars),
		Body:  body,
	}}
}

// cleanLines splits page text into collapsed, non-empty lines with
// boilerplate removed.
func cleanLines(text string, repeated map[string]bool) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.Join(strings.Fields(raw), " ")
		if line == "" || repeated[line] || isBoilerplate(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
