package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

// TextSource handles plain text files. Form feeds separate pages.
type TextSource struct{}

func (p *TextSource) Pages(r io.Reader, filename string) ([]document.Page, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var text strings.Builder
	for scanner.Scan() {
		text.WriteString(strings.TrimRight(scanner.Text(), "\r"))
		text.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return splitPages(text.String()), nil
}
