package document

// Page is the raw text of one page of a source document.
type Page struct {
	Number   int      // 1-based page number
	Text     string   // Page text, lines separated by "\n"
	Headings []string // Lines the source format marks as headings (empty for PDF and plain text)
}

// FallbackTitle names a section whose text offered nothing resembling a
// title.
const FallbackTitle = "Content Section"

// Section is a titled block of text found on a single page. Sections are
// values: nothing downstream rewrites one after the extractor creates it.
type Section struct {
	DocumentID string // Source document identifier (file name)
	Page       int    // 1-based page number
	Title      string // Never empty
	Body       string // Trimmed, whitespace-collapsed text
	Order      int    // Emission sequence; used only to break score ties
}

// IsHeading reports whether line is one of the page's declared headings.
func (p Page) IsHeading(line string) bool {
	for _, h := range p.Headings {
		if h == line {
			return true
		}
	}
	return false
}
