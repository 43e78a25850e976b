package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dgallion1/docrank/internal/parser"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/collection.schema.json
var collectionSchemaJSON []byte

var collectionSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("collection.schema.json", bytes.NewReader(collectionSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("collection.schema.json")
})

// DocumentRef names one input document.
type DocumentRef struct {
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
}

// Collection is one batch to rank: a folder of documents plus the persona
// and job they are ranked for.
type Collection struct {
	Dir         string
	ChallengeID string
	Documents   []DocumentRef
	Persona     string
	Job         string
}

type collectionFile struct {
	ChallengeInfo struct {
		ChallengeID  string `json:"challenge_id"`
		TestCaseName string `json:"test_case_name"`
	} `json:"challenge_info"`
	Documents []DocumentRef `json:"documents"`
	Persona   struct {
		Role string `json:"role"`
	} `json:"persona"`
	JobToBeDone struct {
		Task string `json:"task"`
	} `json:"job_to_be_done"`
}

// LoadCollection reads dir/inputName.
func LoadCollection(dir, inputName string) (Collection, error) {
	data, err := os.ReadFile(filepath.Join(dir, inputName))
	if err != nil {
		return Collection{}, wrapInvalid("input", err)
	}
	return ParseCollection(data, dir)
}

// ParseCollection validates data against the collection schema and
// decodes it. Dir is recorded for resolving document paths.
func ParseCollection(data []byte, dir string) (Collection, error) {
	schema, err := collectionSchema()
	if err != nil {
		return Collection{}, fmt.Errorf("collection schema: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Collection{}, wrapInvalid("input", err)
	}
	if err := schema.Validate(raw); err != nil {
		return Collection{}, wrapInvalid("input", err)
	}

	var f collectionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Collection{}, wrapInvalid("input", err)
	}

	c := Collection{
		Dir:         dir,
		ChallengeID: f.ChallengeInfo.ChallengeID,
		Documents:   f.Documents,
		Persona:     strings.TrimSpace(f.Persona.Role),
		Job:         strings.TrimSpace(f.JobToBeDone.Task),
	}
	if err := c.Validate(); err != nil {
		return Collection{}, err
	}
	return c, nil
}

// Validate checks the fields the schema cannot: blank strings, duplicate
// file names and file types no parser can read.
func (c Collection) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Persona) == "" {
		errs = append(errs, Invalid("persona.role", "is required"))
	}
	if strings.TrimSpace(c.Job) == "" {
		errs = append(errs, Invalid("job_to_be_done.task", "is required"))
	}
	if len(c.Documents) == 0 {
		errs = append(errs, Invalid("documents", "at least one document is required"))
	}
	seen := make(map[string]bool, len(c.Documents))
	for i, d := range c.Documents {
		name := strings.TrimSpace(d.Filename)
		switch {
		case name == "":
			errs = append(errs, Invalid(fmt.Sprintf("documents[%d].filename", i), "is required"))
		case seen[name]:
			errs = append(errs, Invalid(fmt.Sprintf("documents[%d].filename", i), "duplicates %q", name))
		case !parser.IsSupportedExtension(name):
			errs = append(errs, Invalid(fmt.Sprintf("documents[%d].filename", i), "unsupported file type %q", name))
		}
		seen[name] = true
	}
	return errors.Join(errs...)
}

// Filenames lists the documents in input order.
func (c Collection) Filenames() []string {
	names := make([]string, len(c.Documents))
	for i, d := range c.Documents {
		names[i] = d.Filename
	}
	return names
}

// DocumentPath resolves a document inside the collection, preferring
// Dir/pdfDir/filename and falling back to Dir/filename.
func (c Collection) DocumentPath(d DocumentRef, pdfDir string) string {
	if pdfDir != "" {
		p := filepath.Join(c.Dir, pdfDir, d.Filename)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(c.Dir, d.Filename)
}
