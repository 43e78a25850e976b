package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json or text

	// Collection layout
	InputName  string // Input file inside each collection folder
	OutputName string // Report written next to the input
	PDFDir     string // Sub-folder holding the documents

	// Ranking
	ProfilePath     string // Optional YAML ranking profile
	TopN            int    // Sections in the report (0 = all)
	MaxPerDocument  int    // Sections per document (0 = unbounded)
	MaxRefinedChars int

	// Extraction
	MaxPages             int // Pages read per document (0 = all)
	MinBodyChars         int
	MaxTitleChars        int
	ExtractWorkers       int
	PDFFallbackPdftotext bool
	RunTimeout           time.Duration

	// Metrics
	MetricsFile string // Prometheus textfile output; empty disables
}

func Load() Config {
	cfg := Config{
		LogLevel:  envOr("DOCRANK_LOG_LEVEL", "info"),
		LogFormat: envOr("DOCRANK_LOG_FORMAT", "json"),

		InputName:  envOr("DOCRANK_INPUT_NAME", "challenge1b_input.json"),
		OutputName: envOr("DOCRANK_OUTPUT_NAME", "challenge1b_output.json"),
		PDFDir:     envOr("DOCRANK_PDF_DIR", "PDFs"),

		ProfilePath:     os.Getenv("DOCRANK_PROFILE"),
		TopN:            envInt("DOCRANK_TOP_N", 5),
		MaxPerDocument:  envInt("DOCRANK_MAX_PER_DOCUMENT", 0),
		MaxRefinedChars: envInt("DOCRANK_MAX_REFINED_CHARS", 1000),

		MaxPages:             envInt("DOCRANK_MAX_PAGES", 0),
		MinBodyChars:         envInt("DOCRANK_MIN_BODY_CHARS", 40),
		MaxTitleChars:        envInt("DOCRANK_MAX_TITLE_CHARS", 100),
		ExtractWorkers:       envInt("DOCRANK_EXTRACT_WORKERS", 4),
		PDFFallbackPdftotext: envBool("DOCRANK_PDF_FALLBACK_PDFTOTEXT", true),
		RunTimeout:           envDuration("DOCRANK_RUN_TIMEOUT", 5*time.Minute),

		MetricsFile: os.Getenv("DOCRANK_METRICS_FILE"),
	}

	if cfg.ExtractWorkers <= 0 {
		cfg.ExtractWorkers = 4
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 5 * time.Minute
	}

	return cfg
}

// Validate reports every invalid setting. The returned error matches
// ErrConfigurationInvalid.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, Invalid("log_level", "must be one of debug, info, warn, error, got %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, Invalid("log_format", "must be json or text, got %q", c.LogFormat))
	}
	if c.InputName == "" {
		errs = append(errs, Invalid("input_name", "is required"))
	}
	if c.OutputName == "" {
		errs = append(errs, Invalid("output_name", "is required"))
	}
	if c.TopN < 0 {
		errs = append(errs, Invalid("top_n", "must be >= 0, got %d", c.TopN))
	}
	if c.MaxPerDocument < 0 {
		errs = append(errs, Invalid("max_per_document", "must be >= 0, got %d", c.MaxPerDocument))
	}
	if c.MaxRefinedChars < 20 {
		errs = append(errs, Invalid("max_refined_chars", "must be >= 20, got %d", c.MaxRefinedChars))
	}
	if c.MaxPages < 0 {
		errs = append(errs, Invalid("max_pages", "must be >= 0, got %d", c.MaxPages))
	}
	if c.MinBodyChars < 1 {
		errs = append(errs, Invalid("min_body_chars", "must be >= 1, got %d", c.MinBodyChars))
	}
	if c.MaxTitleChars < 10 {
		errs = append(errs, Invalid("max_title_chars", "must be >= 10, got %d", c.MaxTitleChars))
	}
	if c.ExtractWorkers < 1 {
		errs = append(errs, Invalid("extract_workers", "must be >= 1, got %d", c.ExtractWorkers))
	}
	if c.RunTimeout <= 0 {
		errs = append(errs, Invalid("run_timeout", "must be positive, got %s", c.RunTimeout))
	}
	return errors.Join(errs...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
