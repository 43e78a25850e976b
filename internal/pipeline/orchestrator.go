package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/rank"
	"github.com/dgallion1/docrank/internal/relevance"
	"github.com/dgallion1/docrank/internal/report"
	"github.com/dgallion1/docrank/internal/section"
)

// Orchestrator runs collections through extraction, scoring and ranking.
// One Orchestrator serves every collection of an invocation; collections
// are processed one at a time.
type Orchestrator struct {
	extractor *section.Extractor
	scorer    *relevance.Scorer
	log       *slog.Logger
	metrics   *Metrics
	stats     *DurationStats

	parserOpts parser.Options
	rankOpts   rank.Options
	pdfDir     string
	workers    int

	now func() time.Time
}

// NewOrchestrator wires the pipeline stages from cfg and profile. metrics
// may be nil.
func NewOrchestrator(cfg config.Config, profile relevance.Profile, metrics *Metrics, log *slog.Logger) *Orchestrator {
	workers := cfg.ExtractWorkers
	if workers <= 0 {
		workers = 1
	}
	return &Orchestrator{
		extractor: section.New(section.Options{
			MinBodyChars:  cfg.MinBodyChars,
			MaxTitleChars: cfg.MaxTitleChars,
			MaxPages:      cfg.MaxPages,
		}),
		scorer:  relevance.NewScorer(profile),
		log:     log,
		metrics: metrics,
		stats:   NewDurationStats(),
		parserOpts: parser.Options{
			FallbackPdftotext: cfg.PDFFallbackPdftotext,
		},
		rankOpts: rank.Options{
			TopN:            cfg.TopN,
			MaxPerDocument:  cfg.MaxPerDocument,
			MaxRefinedChars: cfg.MaxRefinedChars,
		},
		pdfDir:  cfg.PDFDir,
		workers: workers,
		now:     time.Now,
	}
}

// Stats returns the extraction latency aggregate over every Process call.
func (o *Orchestrator) Stats() *DurationStats { return o.stats }

// Result is the outcome of one collection.
type Result struct {
	Report report.Report
	Ranked []rank.Result
	Run    RunSnapshot
}

// extraction is one document's contribution before pooling.
type extraction struct {
	name     string
	hash     string
	sections []document.Section
	err      error
}

// Process extracts sections from every document of c, pools them, scores
// and ranks the pool and assembles the report. Unreadable and duplicate
// documents are skipped and recorded in the run. It returns ErrEmptyCorpus
// when nothing usable remains.
func (o *Orchestrator) Process(ctx context.Context, c config.Collection) (Result, error) {
	start := time.Now()
	run := NewRun(c.Dir)
	log := o.log.With("run_id", run.ID, "collection", c.Dir)

	fail := func(phase string, err error) (Result, error) {
		run.AddError(err.Error())
		run.SetStatus(StatusFailed, phase)
		o.metrics.observeRun(StatusFailed, time.Since(start).Seconds())
		log.Error("run failed", "phase", phase, "error", err)
		return Result{Run: run.Snapshot()}, err
	}

	// Phase 1: Extract, one goroutine per document up to the worker limit.
	run.SetStatus(StatusExtracting, "extracting")
	run.SetTotalDocuments(len(c.Documents))

	docs := make([]extraction, len(c.Documents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, d := range c.Documents {
		i, d := i, d
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[i] = o.extract(c.DocumentPath(d, o.pdfDir), d.Filename)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fail("extracting", fmt.Errorf("extract %s: %w", c.Dir, err))
	}

	// Phase 2: Pool in collection order, dropping unreadable and duplicate
	// documents. Order is renumbered across the pool.
	var pool []document.Section
	seen := make(map[string]string, len(docs))
	for _, d := range docs {
		if d.err != nil {
			log.Warn("document unreadable, skipping", "document", d.name, "error", d.err)
			run.AddError(d.err.Error())
			run.SkipDocument(d.name, d.err.Error())
			o.metrics.incDocuments(OutcomeUnreadable)
			continue
		}
		if first, ok := seen[d.hash]; ok && d.hash != "" {
			log.Info("duplicate document, skipping", "document", d.name, "duplicate_of", first)
			run.SkipDocument(d.name, "duplicate of "+first)
			o.metrics.incDocuments(OutcomeDuplicate)
			continue
		}
		seen[d.hash] = d.name

		run.DocumentDone(len(d.sections))
		o.metrics.incDocuments(OutcomeRead)
		o.metrics.addSections(len(d.sections))
		log.Debug("document extracted", "document", d.name, "sections", len(d.sections))

		for _, s := range d.sections {
			s.Order = len(pool)
			pool = append(pool, s)
		}
	}

	if len(pool) == 0 {
		return fail("extracting", fmt.Errorf("%s: %w", c.Dir, ErrEmptyCorpus))
	}

	// Phase 3: Score the whole pool against the query.
	run.SetStatus(StatusScoring, "scoring")
	q := relevance.NewQuery(c.Persona, c.Job, o.scorer.Profile())
	log.Debug("query built",
		"high", q.Keywords.High,
		"medium", q.Keywords.Medium,
		"low", q.Keywords.Low,
	)
	scored := o.scorer.Score(q, pool)

	// Phase 4: Rank and assemble.
	run.SetStatus(StatusRanking, "ranking")
	ranked := rank.Rank(scored, o.rankOpts, o.scorer.PassageScorer(q))
	rep := report.Assemble(c, ranked, len(pool), o.now())

	status := StatusCompleted
	if run.Snapshot().Progress.DocumentsSkipped > 0 {
		status = StatusPartial
	}
	run.SetStatus(status, "done")
	o.metrics.observeRun(status, time.Since(start).Seconds())

	snap := run.Snapshot()
	log.Info("run complete",
		"status", status,
		"documents", snap.Progress.DocumentsTotal,
		"skipped", snap.Progress.DocumentsSkipped,
		"sections", len(pool),
		"selected", len(ranked),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return Result{Report: rep, Ranked: ranked, Run: snap}, nil
}

// extract reads and sections one document. Failures are carried in the
// result so one bad file does not stop the others.
func (o *Orchestrator) extract(path, name string) extraction {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		o.stats.Record(elapsed)
		o.metrics.observeExtraction(elapsed.Seconds())
	}()

	pages, err := parser.OpenFile(path, o.parserOpts)
	if err != nil {
		var ue *parser.UnreadableError
		if errors.As(err, &ue) {
			ue.Document = name
		}
		return extraction{name: name, err: err}
	}
	ex := extraction{name: name, sections: o.extractor.Extract(name, pages)}
	if text := pageText(pages); text != "" {
		ex.hash = ContentHashHex([]byte(text))
	}
	return ex
}
