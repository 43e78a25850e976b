// Package report assembles the ranking output document and writes it.
package report

import (
	"time"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/rank"
)

// Report is the JSON output for one collection.
type Report struct {
	Metadata           Metadata            `json:"metadata"`
	ExtractedSections  []ExtractedSection  `json:"extracted_sections"`
	SubSectionAnalysis []SubSectionAnalysis `json:"sub_section_analysis"`
}

type Metadata struct {
	InputDocuments        []string `json:"input_documents"`
	Persona               string   `json:"persona"`
	JobToBeDone           string   `json:"job_to_be_done"`
	ProcessingTimestamp   string   `json:"processing_timestamp"`
	TotalSectionsAnalyzed int      `json:"total_sections_analyzed"`
}

type ExtractedSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

type SubSectionAnalysis struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// Assemble builds the report. Input documents are listed in collection
// order whether or not they produced sections; totalSections is the size
// of the pooled candidate set.
func Assemble(c config.Collection, results []rank.Result, totalSections int, now time.Time) Report {
	r := Report{
		Metadata: Metadata{
			InputDocuments:        c.Filenames(),
			Persona:               c.Persona,
			JobToBeDone:           c.Job,
			ProcessingTimestamp:   now.Format(time.RFC3339),
			TotalSectionsAnalyzed: totalSections,
		},
		ExtractedSections:  make([]ExtractedSection, 0, len(results)),
		SubSectionAnalysis: make([]SubSectionAnalysis, 0, len(results)),
	}
	for _, res := range results {
		r.ExtractedSections = append(r.ExtractedSections, ExtractedSection{
			Document:       res.DocumentID,
			SectionTitle:   res.Title,
			ImportanceRank: res.ImportanceRank,
			PageNumber:     res.Page,
		})
		r.SubSectionAnalysis = append(r.SubSectionAnalysis, SubSectionAnalysis{
			Document:    res.DocumentID,
			RefinedText: res.RefinedText,
			PageNumber:  res.Page,
		})
	}
	return r
}
