package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docrank/internal/document"
)

func TestForFile_Extensions(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"a.pdf", false},
		{"a.PDF", false},
		{"a.txt", false},
		{"a.md", false},
		{"a.markdown", false},
		{"a.html", false},
		{"a.htm", false},
		{"a.docx", false},
		{"a.csv", true},
		{"a", true},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.filename, Options{})
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q): expected error=%v, got %v", tt.filename, tt.wantErr, err)
		}
		if IsSupportedExtension(tt.filename) == tt.wantErr {
			t.Errorf("IsSupportedExtension(%q): expected %v", tt.filename, !tt.wantErr)
		}
	}
}

func TestOpenFile_MissingFileIsUnreadable(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.pdf"), Options{})
	if !errors.Is(err, ErrDocumentUnreadable) {
		t.Fatalf("expected ErrDocumentUnreadable, got %v", err)
	}
	var ue *UnreadableError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UnreadableError, got %T", err)
	}
	if ue.Document != "missing.pdf" {
		t.Errorf("expected document %q, got %q", "missing.pdf", ue.Document)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestOpenFile_CorruptPDFIsUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := OpenFile(path, Options{})
	if !errors.Is(err, ErrDocumentUnreadable) {
		t.Fatalf("expected ErrDocumentUnreadable, got %v", err)
	}
}

// buildPDF assembles a minimal PDF with one page per content stream and a
// correct cross-reference table.
func buildPDF(streams ...string) []byte {
	var objs []string
	kids := make([]string, len(streams))
	for i := range streams {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(streams)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i, content := range streams {
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

const (
	goodPageStream   = "BT /F1 12 Tf 72 720 Td (Intro) Tj ET"
	brokenPageStream = "BT /F1 Tf (Meat Dishes) Tj ET"
)

func TestPDFSource_ReadsPages(t *testing.T) {
	pages, err := Parse(&PDFSource{}, buildPDF(goodPageStream, goodPageStream), "menu.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[1].Number != 2 || !strings.Contains(pages[1].Text, "Intro") {
		t.Errorf("unexpected second page: %+v", pages[1])
	}
}

func TestPDFSource_BrokenPageMakesDocumentUnreadable(t *testing.T) {
	tests := []struct {
		name     string
		streams  []string
		wantPage int
	}{
		{"second page broken", []string{goodPageStream, brokenPageStream}, 2},
		{"every page broken", []string{brokenPageStream, brokenPageStream}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "menu.pdf")
			if err := os.WriteFile(path, buildPDF(tt.streams...), 0o644); err != nil {
				t.Fatal(err)
			}
			pages, err := OpenFile(path, Options{})
			if !errors.Is(err, ErrDocumentUnreadable) {
				t.Fatalf("expected ErrDocumentUnreadable, got pages=%d err=%v", len(pages), err)
			}
			var ue *UnreadableError
			if !errors.As(err, &ue) {
				t.Fatalf("expected *UnreadableError, got %T", err)
			}
			if ue.Document != "menu.pdf" {
				t.Errorf("expected document %q, got %q", "menu.pdf", ue.Document)
			}
			if ue.Page != tt.wantPage {
				t.Errorf("expected page %d, got %d", tt.wantPage, ue.Page)
			}
		})
	}
}

func TestOpenFile_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.txt")
	if err := os.WriteFile(path, []byte("Heading\nBody text."), 0o644); err != nil {
		t.Fatal(err)
	}
	pages, err := OpenFile(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 || !strings.Contains(pages[0].Text, "Body text.") {
		t.Fatalf("unexpected pages: %+v", pages)
	}
}

// sourceFunc adapts a plain function into a Source for tests.
type sourceFunc func()

func (f sourceFunc) Pages(io.Reader, string) ([]document.Page, error) {
	f()
	return nil, nil
}

func TestParse_RecoversDecoderPanic(t *testing.T) {
	_, err := Parse(sourceFunc(func() { panic("malformed xref table") }), []byte("x"), "bad.pdf")
	if !errors.Is(err, ErrDocumentUnreadable) {
		t.Fatalf("expected ErrDocumentUnreadable, got %v", err)
	}
	if !strings.Contains(err.Error(), "malformed xref table") {
		t.Errorf("expected panic value in error, got %q", err.Error())
	}
}

func TestUnreadableError_Message(t *testing.T) {
	err := &UnreadableError{Document: "a.pdf", Page: 3, Err: errors.New("bad stream")}
	want := "document unreadable: a.pdf page 3: bad stream"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestHTMLSource_HeadingsAndParagraphs(t *testing.T) {
	input := `<html><head><title>Guide</title><style>p{}</style></head>
<body>
<nav>Home | About</nav>
<h1>Vegetarian Recipes</h1>
<p>Lentil curry with rice.</p>
<ul><li>Tofu stir fry</li></ul>
<script>var x = 1;</script>
</body></html>`
	p := &HTMLSource{}
	pages, err := p.Pages(strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	page := pages[0]
	if len(page.Headings) != 1 || page.Headings[0] != "Vegetarian Recipes" {
		t.Errorf("expected heading %q, got %q", "Vegetarian Recipes", page.Headings)
	}
	want := "Vegetarian Recipes\nLentil curry with rice.\nTofu stir fry"
	if page.Text != want {
		t.Errorf("expected %q, got %q", want, page.Text)
	}
}
