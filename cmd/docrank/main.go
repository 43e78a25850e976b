package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/pipeline"
	"github.com/dgallion1/docrank/internal/report"
)

func main() {
	cfg := config.Load()

	var root string
	var disabled []string
	pflag.StringVar(&root, "root", ".", "Folder whose sub-folders are collections (used when no collection is given)")
	pflag.StringVarP(&cfg.ProfilePath, "profile", "p", cfg.ProfilePath, "YAML ranking profile")
	pflag.IntVarP(&cfg.TopN, "top-n", "n", cfg.TopN, "Sections in the report (0 = all)")
	pflag.IntVar(&cfg.MaxPerDocument, "max-per-doc", cfg.MaxPerDocument, "Sections per document (0 = unbounded)")
	pflag.IntVar(&cfg.MaxRefinedChars, "max-refined-chars", cfg.MaxRefinedChars, "Refined text length limit")
	pflag.IntVar(&cfg.MaxPages, "max-pages", cfg.MaxPages, "Pages read per document (0 = all)")
	pflag.IntVar(&cfg.ExtractWorkers, "workers", cfg.ExtractWorkers, "Documents extracted in parallel")
	pflag.StringVar(&cfg.InputName, "input-name", cfg.InputName, "Input file inside each collection")
	pflag.StringVar(&cfg.OutputName, "output-name", cfg.OutputName, "Output file inside each collection")
	pflag.StringVar(&cfg.PDFDir, "pdf-dir", cfg.PDFDir, "Document sub-folder inside each collection")
	pflag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	pflag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "json or text")
	pflag.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus textfile metrics here")
	pflag.DurationVar(&cfg.RunTimeout, "timeout", cfg.RunTimeout, "Time limit per collection")
	pflag.StringSliceVar(&disabled, "disable-rule", nil, "Ranking rule to switch off (repeatable)")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docrank [flags] [collection-dir ...]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	log := newLogger(cfg)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	profile, err := config.LoadProfile(cfg.ProfilePath, log)
	if err != nil {
		log.Error("invalid ranking profile", "error", err)
		os.Exit(2)
	}
	if unknown := profile.DisableRules(disabled...); len(unknown) > 0 {
		log.Warn("unknown rules in --disable-rule", "rules", unknown)
	}

	dirs := pflag.Args()
	if len(dirs) == 0 {
		dirs, err = collectionDirs(root, cfg.InputName)
		if err != nil {
			log.Error("scan collections", "root", root, "error", err)
			os.Exit(1)
		}
		if len(dirs) == 0 {
			log.Error("no collections found", "root", root, "input_name", cfg.InputName)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	metrics := pipeline.NewMetrics()
	if err := metrics.Register(reg); err != nil {
		log.Error("register metrics", "error", err)
		os.Exit(1)
	}

	orch := pipeline.NewOrchestrator(cfg, profile, metrics, log)

	start := time.Now()
	var failures []error
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			log.Warn("interrupted, skipping remaining collections")
			failures = append(failures, err)
			break
		}
		if err := runCollection(ctx, orch, cfg, dir, log); err != nil {
			log.Error("collection failed", "collection", dir, "error", err)
			failures = append(failures, err)
		}
	}

	log.Info("all collections processed",
		"collections", len(dirs),
		"failed", len(failures),
		"duration_ms", time.Since(start).Milliseconds(),
		"extraction_latency", orch.Stats().Snapshot(),
	)

	if cfg.MetricsFile != "" {
		if err := pipeline.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			log.Error("metrics not written", "error", err)
		}
	}

	os.Exit(exitCode(failures))
}

// exitCode maps collection failures to the process status: 2 when any
// collection input was invalid, 1 for other failures, 0 otherwise.
func exitCode(failures []error) int {
	code := 0
	for _, err := range failures {
		if errors.Is(err, config.ErrConfigurationInvalid) {
			return 2
		}
		code = 1
	}
	return code
}

// runCollection ranks one collection folder and writes its report.
func runCollection(ctx context.Context, orch *pipeline.Orchestrator, cfg config.Config, dir string, log *slog.Logger) error {
	coll, err := config.LoadCollection(dir, cfg.InputName)
	if err != nil {
		return err
	}
	log.Debug("collection loaded", "collection", dir, "challenge_id", coll.ChallengeID, "documents", len(coll.Documents))

	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	res, err := orch.Process(ctx, coll)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyCorpus) {
			log.Warn("no report written", "collection", dir, "skipped", res.Run.Skipped)
		}
		return err
	}

	out := filepath.Join(dir, cfg.OutputName)
	if err := report.WriteFile(out, res.Report); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	log.Info("report written",
		"collection", dir,
		"challenge_id", coll.ChallengeID,
		"run_id", res.Run.ID,
		"status", res.Run.Status,
		"output", out,
		"sections", len(res.Report.ExtractedSections),
	)
	return nil
}

// collectionDirs returns the sub-folders of root holding an input file,
// sorted by name. root itself counts when it holds one.
func collectionDirs(root, inputName string) ([]string, error) {
	if _, err := os.Stat(filepath.Join(root, inputName)); err == nil {
		return []string{root}, nil
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, inputName)); err == nil {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
