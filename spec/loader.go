package spec

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lsst/verify-sub000/document"
)

// specFilePattern matches specification YAML files anywhere under a
// package directory.
const specFilePattern = "**/*.{yaml,yml}"

// LoadDirectory builds a specification set from a directory tree laid out
// as <root>/<package>/**/*.yaml. Each file is a multi-document YAML
// stream; sub-documents with an id field are partials, the rest are
// specifications. All documents are ingested before resolution, so base
// references may cross files and packages in any order.
func LoadDirectory(root string, logger *slog.Logger) (*SpecificationSet, error) {
	set := NewSet(logger)
	if err := set.LoadDirectory(root); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadDirectory ingests a directory tree into an existing set.
func (s *SpecificationSet) LoadDirectory(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read specification root: %w", err)
	}

	var sources []SourcedDocument
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		pkg := entry.Name()
		pkgDir := filepath.Join(root, pkg)

		matches, err := doublestar.Glob(os.DirFS(pkgDir), specFilePattern)
		if err != nil {
			return fmt.Errorf("glob %s: %w", pkgDir, err)
		}
		sort.Strings(matches)

		for _, rel := range matches {
			docs, err := readDocumentStream(filepath.Join(pkgDir, filepath.FromSlash(rel)))
			if err != nil {
				return err
			}
			src := Source{
				Package: pkg,
				Path:    strings.TrimSuffix(rel, path.Ext(rel)),
			}
			for _, doc := range docs {
				sources = append(sources, SourcedDocument{Doc: doc, Source: src})
			}
			s.logger.Debug("read specification file",
				slog.String("package", pkg),
				slog.String("file", rel),
				slog.Int("documents", len(docs)))
		}
	}

	if err := s.Ingest(sources); err != nil {
		return err
	}
	s.logger.Info("loaded specifications",
		slog.String("root", root),
		slog.Int("documents", len(sources)),
		slog.Int("specifications", s.Len()))
	return nil
}

func readDocumentStream(path string) ([]*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	docs, err := document.DecodeStream(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return docs, nil
}
