package measure

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lsst/verify-sub000/document"
	"github.com/lsst/verify-sub000/naming"
)

// metricFilePattern matches the per-package registry files directly under
// a metrics root.
const metricFilePattern = "*.{yaml,yml}"

// MetricSet owns metric definitions keyed by name.
type MetricSet struct {
	logger  *slog.Logger
	metrics map[naming.Name]*Metric
}

// NewMetricSet returns an empty metric set.
func NewMetricSet(logger *slog.Logger) *MetricSet {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetricSet{logger: logger, metrics: make(map[naming.Name]*Metric)}
}

// LoadMetricsDirectory reads a metric registry laid out as
// <root>/<package>.yaml, one mapping of metric name to definition per
// package file.
func LoadMetricsDirectory(root string, logger *slog.Logger) (*MetricSet, error) {
	set := NewMetricSet(logger)
	if err := set.LoadDirectory(root); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadDirectory ingests a metrics directory into an existing set.
func (s *MetricSet) LoadDirectory(root string) error {
	matches, err := doublestar.Glob(os.DirFS(root), metricFilePattern)
	if err != nil {
		return fmt.Errorf("glob metrics in %s: %w", root, err)
	}
	sort.Strings(matches)

	for _, rel := range matches {
		pkg := strings.TrimSuffix(rel, filepath.Ext(rel))
		path := filepath.Join(root, rel)

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		docs, err := document.DecodeStream(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		for _, doc := range docs {
			if err := s.ingestPackageDoc(pkg, doc); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		s.logger.Debug("read metric registry", slog.String("package", pkg))
	}

	s.logger.Info("loaded metrics", slog.String("root", root), slog.Int("metrics", s.Len()))
	return nil
}

// ingestPackageDoc reads one registry mapping: metric name to definition.
func (s *MetricSet) ingestPackageDoc(pkg string, doc *document.Document) error {
	for _, key := range doc.Keys() {
		def, ok := doc.Mapping(key)
		if !ok {
			return fmt.Errorf("metric %q: definition must be a mapping", key)
		}
		name, err := naming.New(pkg, key, nil)
		if err != nil {
			return err
		}
		metric, err := NewMetricFromDocument(name, def)
		if err != nil {
			return err
		}
		s.metrics[name] = metric
	}
	return nil
}

// Insert adds a metric, replacing any existing entry with the same name.
func (s *MetricSet) Insert(m *Metric) {
	s.metrics[m.Name] = m
}

// Get returns the metric with the given name.
func (s *MetricSet) Get(name naming.Name) (*Metric, bool) {
	m, ok := s.metrics[name]
	return m, ok
}

// Len returns the number of metrics.
func (s *MetricSet) Len() int { return len(s.metrics) }

// Names returns all metric names sorted by their canonical string.
func (s *MetricSet) Names() []naming.Name {
	names := make([]naming.Name, 0, len(s.metrics))
	for n := range s.metrics {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].String() < names[j].String()
	})
	return names
}

// Subset returns the metrics contained by name (a package name).
func (s *MetricSet) Subset(name naming.Name) *MetricSet {
	sub := NewMetricSet(s.logger)
	for n, m := range s.metrics {
		if name.Contains(n) {
			sub.metrics[n] = m
		}
	}
	return sub
}

// Update merges other into s with last-writer-wins semantics.
func (s *MetricSet) Update(other *MetricSet) {
	for n, m := range other.metrics {
		s.metrics[n] = m
	}
}
