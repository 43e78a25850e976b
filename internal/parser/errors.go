package parser

import (
	"errors"
	"fmt"
)

// ErrDocumentUnreadable marks a document that could not be opened or
// decoded. Callers skip the document and keep going.
var ErrDocumentUnreadable = errors.New("document unreadable")

// UnreadableError carries the document and, when known, the page that
// failed.
type UnreadableError struct {
	Document string
	Page     int
	Err      error
}

func (e *UnreadableError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s: %s page %d: %v", ErrDocumentUnreadable, e.Document, e.Page, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrDocumentUnreadable, e.Document, e.Err)
}

func (e *UnreadableError) Unwrap() error { return e.Err }

func (e *UnreadableError) Is(target error) bool {
	return target == ErrDocumentUnreadable
}
