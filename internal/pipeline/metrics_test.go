package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if got := len(m.Collectors()); got != 5 {
		t.Errorf("expected 5 collectors, got %d", got)
	}
}

func TestMetrics_RegisterAndGather(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		t.Fatalf("Register() returned error: %v", err)
	}

	m.incDocuments(OutcomeRead)
	m.incDocuments(OutcomeRead)
	m.incDocuments(OutcomeUnreadable)
	m.addSections(7)
	m.observeExtraction(0.2)
	m.observeRun(StatusCompleted, 1.5)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() returned error: %v", err)
	}

	found := map[string]bool{}
	for _, f := range families {
		found[f.GetName()] = true
		if f.GetName() == MetricSectionsExtracted {
			if v := f.GetMetric()[0].GetCounter().GetValue(); v != 7 {
				t.Errorf("expected 7 sections, got %v", v)
			}
		}
		if f.GetName() == MetricDocumentsTotal {
			if n := len(f.GetMetric()); n != 2 {
				t.Errorf("expected 2 outcome series, got %d", n)
			}
		}
	}
	for _, name := range []string{MetricDocumentsTotal, MetricSectionsExtracted, MetricExtractionDuration, MetricRunsTotal, MetricRunDuration} {
		if !found[name] {
			t.Errorf("metric %s not found in gathered metrics", name)
		}
	}
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := NewMetrics().Register(reg); err != nil {
		t.Fatalf("first Register() returned error: %v", err)
	}
	if err := NewMetrics().Register(reg); err == nil {
		t.Error("expected error registering the same metrics twice")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.incDocuments(OutcomeRead)
	m.addSections(1)
	m.observeExtraction(1)
	m.observeRun(StatusFailed, 1)
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		t.Fatalf("Register() returned error: %v", err)
	}
	m.observeRun(StatusPartial, 0.3)

	path := filepath.Join(t.TempDir(), "docrank.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile() returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics file: %v", err)
	}
	if !strings.Contains(string(data), `docrank_runs_total{status="partial"} 1`) {
		t.Errorf("expected partial run counter in output, got:\n%s", data)
	}
}
