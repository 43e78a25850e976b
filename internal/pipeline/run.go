package pipeline

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/docrank/internal/document"
)

// RunStatus represents the state of a collection run.
type RunStatus string

const (
	StatusQueued     RunStatus = "queued"
	StatusExtracting RunStatus = "extracting"
	StatusScoring    RunStatus = "scoring"
	StatusRanking    RunStatus = "ranking"
	StatusCompleted  RunStatus = "completed"
	StatusPartial    RunStatus = "partial" // report written, some documents skipped
	StatusFailed     RunStatus = "failed"
)

// Run tracks one pass over a collection.
type Run struct {
	mu sync.Mutex

	ID         string `json:"run_id"`
	Collection string `json:"collection"`

	Status RunStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	errors  []string
	skipped []SkippedDocument
}

// Progress tracks processing progress.
type Progress struct {
	DocumentsTotal     int      `json:"documents_total"`
	DocumentsProcessed int      `json:"documents_processed"`
	DocumentsSkipped   int      `json:"documents_skipped"`
	SectionsExtracted  int      `json:"sections_extracted"`
	Errors             []string `json:"errors"`
}

// SkippedDocument records why a document contributed nothing.
type SkippedDocument struct {
	Document string `json:"document"`
	Reason   string `json:"reason"`
}

// NewRun returns a queued run with a fresh id.
func NewRun(collection string) *Run {
	now := time.Now()
	return &Run{
		ID:         uuid.NewString(),
		Collection: collection,
		Status:     StatusQueued,
		Phase:      "queued",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SetStatus updates run status atomically.
func (r *Run) SetStatus(status RunStatus, phase string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = status
	r.Phase = phase
	r.UpdatedAt = time.Now()
}

// AddError records an error.
func (r *Run) AddError(err string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
	r.Progress.Errors = r.errors
	r.UpdatedAt = time.Now()
}

// SetTotalDocuments records the number of documents in the collection.
func (r *Run) SetTotalDocuments(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.DocumentsTotal = n
	r.UpdatedAt = time.Now()
}

// DocumentDone records a document that was read, with its section count.
func (r *Run) DocumentDone(sections int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.DocumentsProcessed++
	r.Progress.SectionsExtracted += sections
	r.UpdatedAt = time.Now()
}

// SkipDocument records a document left out of the pooled corpus.
func (r *Run) SkipDocument(name, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, SkippedDocument{Document: name, Reason: reason})
	r.Progress.DocumentsSkipped++
	r.UpdatedAt = time.Now()
}

// RunSnapshot is a read-only, JSON-safe copy of run state.
type RunSnapshot struct {
	ID         string            `json:"run_id"`
	Collection string            `json:"collection"`
	Status     RunStatus         `json:"status"`
	Phase      string            `json:"phase"`
	Progress   Progress          `json:"progress"`
	Skipped    []SkippedDocument `json:"skipped"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the run state.
func (r *Run) Snapshot() RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	errs := append([]string{}, r.errors...)
	skipped := append([]SkippedDocument{}, r.skipped...)
	return RunSnapshot{
		ID:         r.ID,
		Collection: r.Collection,
		Status:     r.Status,
		Phase:      r.Phase,
		Progress: Progress{
			DocumentsTotal:     r.Progress.DocumentsTotal,
			DocumentsProcessed: r.Progress.DocumentsProcessed,
			DocumentsSkipped:   r.Progress.DocumentsSkipped,
			SectionsExtracted:  r.Progress.SectionsExtracted,
			Errors:             errs,
		},
		Skipped:   skipped,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// pageText joins page texts for hashing, so the same document saved under
// two names is recognised.
func pageText(pages []document.Page) string {
	var sb strings.Builder
	for _, p := range pages {
		if sb.Len() > 0 {
			sb.WriteString("\f")
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
