package spec

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lsst/verify-sub000/document"
	"github.com/lsst/verify-sub000/naming"
	"github.com/lsst/verify-sub000/telemetry"
)

// Source is the load context of a YAML sub-document: the package the file
// belongs to and the file-relative id (path without extension, slash
// separated). Partial references default their missing segments from it.
type Source struct {
	Package string
	Path    string
}

// SourcedDocument pairs a parsed document with its load context.
type SourcedDocument struct {
	Doc    *document.Document
	Source Source
}

// SpecificationSet owns resolved specifications and the raw partial
// documents they inherit from. A set is built single-threaded via Ingest
// or LoadDirectory; once resolution completes it is safe for concurrent
// readers, but Update requires exclusive access.
type SpecificationSet struct {
	logger *slog.Logger

	specs map[naming.Name]*Specification

	// docs keeps each specification's fully-resolved document so later
	// documents can inherit from it.
	docs map[naming.Name]*document.Document

	// partials holds raw partial documents; they are resolved on
	// demand and memoized in resolvedPartials, which Update clears.
	partials         map[naming.PartialID]*document.Document
	resolvedPartials map[naming.PartialID]*document.Document
}

// NewSet returns an empty specification set.
func NewSet(logger *slog.Logger) *SpecificationSet {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpecificationSet{
		logger:           logger,
		specs:            make(map[naming.Name]*Specification),
		docs:             make(map[naming.Name]*document.Document),
		partials:         make(map[naming.PartialID]*document.Document),
		resolvedPartials: make(map[naming.PartialID]*document.Document),
	}
}

// Insert adds a resolved specification, replacing any existing entry with
// the same name.
func (s *SpecificationSet) Insert(sp *Specification) {
	s.specs[sp.Name] = sp
}

// Get returns the specification with the given name.
func (s *SpecificationSet) Get(name naming.Name) (*Specification, bool) {
	sp, ok := s.specs[name]
	return sp, ok
}

// Document returns the fully-resolved document a specification was built
// from.
func (s *SpecificationSet) Document(name naming.Name) (*document.Document, bool) {
	doc, ok := s.docs[name]
	return doc, ok
}

// Len returns the number of resolved specifications.
func (s *SpecificationSet) Len() int { return len(s.specs) }

// Names returns all specification names sorted by their canonical string.
func (s *SpecificationSet) Names() []naming.Name {
	names := make([]naming.Name, 0, len(s.specs))
	for n := range s.specs {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].String() < names[j].String()
	})
	return names
}

// Subset returns a new set holding the specifications contained by name
// (a package or metric name). Partials are not carried over; a subset is
// for lookup, not further ingestion.
func (s *SpecificationSet) Subset(name naming.Name) *SpecificationSet {
	sub := NewSet(s.logger)
	for n, sp := range s.specs {
		if name.Contains(n) {
			sub.specs[n] = sp
			if doc, ok := s.docs[n]; ok {
				sub.docs[n] = doc
			}
		}
	}
	return sub
}

// Update merges other into s with last-writer-wins semantics over
// specifications and partials. It mutates s and must not run concurrently
// with readers of s.
func (s *SpecificationSet) Update(other *SpecificationSet) {
	for n, sp := range other.specs {
		s.specs[n] = sp
	}
	for n, doc := range other.docs {
		s.docs[n] = doc
	}
	for id, doc := range other.partials {
		s.partials[id] = doc
	}
	// New partials can change what existing references resolve to.
	s.resolvedPartials = make(map[naming.PartialID]*document.Document)
}

// Ingest classifies a batch of sourced documents into specifications and
// partials, then resolves all specification documents with the fix-point
// loop. Documents may reference bases that appear later in the batch.
func (s *SpecificationSet) Ingest(sources []SourcedDocument) error {
	var pending []*pendingDocument
	for _, src := range sources {
		if id, ok := src.Doc.String("id"); ok {
			pid, err := normalizePartialRef(id, src.Source)
			if err != nil {
				return fmt.Errorf("partial in %s:%s: %w", src.Source.Package, src.Source.Path, err)
			}
			s.partials[pid] = src.Doc.Copy()
			telemetry.DocumentsIngested.WithLabelValues("partial").Inc()
			s.logger.Debug("ingested partial", slog.String("id", pid.String()))
			continue
		}

		nameVal, ok := src.Doc.String("name")
		if !ok {
			return fmt.Errorf("document in %s:%s: %w", src.Source.Package, src.Source.Path, ErrMissingName)
		}
		doc := src.Doc.Copy()
		if !doc.Has("package") && src.Source.Package != "" {
			doc.Set("package", document.Scalar{V: src.Source.Package})
		}
		pack, _ := doc.String("package")
		metric, _ := doc.String("metric")
		context, err := contextName(pack, metric, nameVal)
		if err != nil {
			return fmt.Errorf("specification %q in %s:%s: %w", nameVal, src.Source.Package, src.Source.Path, err)
		}
		pending = append(pending, &pendingDocument{
			doc:     doc,
			context: context,
			source:  src.Source,
		})
		telemetry.DocumentsIngested.WithLabelValues("specification").Inc()
	}
	return s.resolveAll(pending)
}

// pendingDocument is a specification document awaiting resolution.
type pendingDocument struct {
	doc     *document.Document
	context naming.Name
	source  Source
}

// resolveAll runs the fix-point loop: each pass attempts every still
// pending document; a successful resolution may unblock others. A pass
// that resolves nothing while documents remain pending is a hard error,
// which bounds the loop at one pass per document.
func (s *SpecificationSet) resolveAll(pending []*pendingDocument) error {
	for len(pending) > 0 {
		telemetry.ResolutionPasses.Inc()
		var next []*pendingDocument
		var firstBlocked *pendingDocument
		var firstRef string

		for _, p := range pending {
			resolved, err := s.resolveDocument(p.doc, p.source, nil)
			if err != nil {
				var unresolved *UnresolvedError
				if errors.As(err, &unresolved) {
					if firstBlocked == nil {
						firstBlocked = p
						firstRef = unresolved.Ref
					}
					next = append(next, p)
					continue
				}
				return fmt.Errorf("resolve %q: %w", p.context.String(), err)
			}

			sp, err := NewFromDocument(resolved)
			if err != nil {
				return err
			}
			s.specs[sp.Name] = sp
			s.docs[sp.Name] = resolved
			s.logger.Debug("resolved specification", slog.String("name", sp.Name.String()))
		}

		if len(next) == len(pending) {
			telemetry.ResolutionFailures.Add(float64(len(next)))
			return &ResolutionError{Doc: firstBlocked.context.String(), Ref: firstRef}
		}
		pending = next
	}
	return nil
}

// ResolveDocument resolves a single document's base inheritance against
// the current repository contents and returns the merged document. The
// input is not mutated. A base that is not (yet) in the repository yields
// an UnresolvedError; callers may retry after ingesting more documents.
func (s *SpecificationSet) ResolveDocument(doc *document.Document, src Source) (*document.Document, error) {
	return s.resolveDocument(doc, src, nil)
}

func (s *SpecificationSet) resolveDocument(doc *document.Document, src Source, visiting map[naming.PartialID]bool) (*document.Document, error) {
	if !doc.Has("base") {
		return doc, nil
	}
	refs, ok := doc.StringList("base")
	if !ok {
		return nil, ErrBadBaseField
	}

	pack := src.Package
	if p, ok := doc.String("package"); ok {
		pack = p
	}
	metric := documentMetric(doc)

	// Bases fold into the accumulator in queue order: the earliest
	// listed base has the lowest precedence.
	acc := document.New()
	for _, ref := range refs {
		if strings.Contains(ref, "#") {
			baseDoc, err := s.resolvePartial(ref, Source{Package: pack, Path: src.Path}, visiting)
			if err != nil {
				return nil, err
			}
			acc = document.Merge(acc, baseDoc)
			continue
		}

		baseName, err := qualifySpecRef(ref, pack, metric)
		if err != nil {
			return nil, err
		}
		baseDoc, ok := s.docs[baseName]
		if !ok {
			return nil, &UnresolvedError{Ref: baseName.String()}
		}
		acc = document.Merge(acc, baseDoc)
		// A specification base donates its metric identity when the
		// accumulated document has none of its own.
		if !acc.Has("metric") && baseName.Metric != "" {
			acc.Set("metric", document.Scalar{V: baseName.Metric})
		}
	}

	resolved := document.Merge(acc, doc)
	// Inheritance is consumed here; identity fields never transfer from
	// a base to its inheritor.
	resolved.Delete("base")
	if !doc.Has("name") {
		resolved.Delete("name")
	}
	if !doc.Has("id") {
		resolved.Delete("id")
	}
	return resolved, nil
}

// resolvePartial resolves a partial reference (any string containing '#')
// to its fully-merged document, memoizing per fully-qualified id. The
// visiting set breaks partial-to-partial reference cycles.
func (s *SpecificationSet) resolvePartial(ref string, src Source, visiting map[naming.PartialID]bool) (*document.Document, error) {
	id, err := normalizePartialRef(ref, src)
	if err != nil {
		return nil, err
	}
	if resolved, ok := s.resolvedPartials[id]; ok {
		return resolved, nil
	}
	if visiting[id] {
		return nil, &UnresolvedError{Ref: id.String()}
	}

	raw, ok := s.partials[id]
	if !ok {
		return nil, &UnresolvedError{Ref: id.String()}
	}

	if visiting == nil {
		visiting = make(map[naming.PartialID]bool)
	}
	visiting[id] = true
	defer delete(visiting, id)

	resolved, err := s.resolveDocument(raw, Source{Package: id.Package, Path: id.Path}, visiting)
	if err != nil {
		return nil, err
	}
	s.resolvedPartials[id] = resolved
	return resolved, nil
}

// normalizePartialRef parses a partial reference and fills absent package
// and path segments from the referencing document's load context.
func normalizePartialRef(ref string, src Source) (naming.PartialID, error) {
	var id naming.PartialID
	if strings.Contains(ref, "#") {
		parsed, err := naming.ParsePartialID(ref)
		if err != nil {
			return naming.PartialID{}, err
		}
		id = parsed
	} else {
		id = naming.PartialID{Name: ref}
	}
	id = id.Normalize(src.Package, src.Path)
	if !id.IsFullyQualified() {
		return naming.PartialID{}, fmt.Errorf("partial reference %q cannot be qualified (package=%q path=%q): %w",
			ref, src.Package, src.Path, naming.ErrNotQualified)
	}
	return id, nil
}

// qualifySpecRef turns a base specification reference into a
// fully-qualified name using the referencing document's package and, for
// bare references, its metric.
func qualifySpecRef(ref, pack, metric string) (naming.Name, error) {
	name, err := naming.New(nil, nil, ref)
	if err != nil {
		return naming.Name{}, fmt.Errorf("base reference %q: %w", ref, err)
	}
	if name.Package == "" {
		name.Package = pack
	}
	if name.Metric == "" {
		name.Metric = metric
	}
	if !name.IsSpec() || !name.IsFullyQualified() {
		return naming.Name{}, fmt.Errorf("base reference %q cannot be qualified (package=%q metric=%q): %w",
			ref, pack, metric, naming.ErrNotQualified)
	}
	return name, nil
}

// contextName builds a best-effort name for a document before resolution,
// used for base qualification and diagnostics. The metric segment may
// legitimately still be absent here: it can arrive through inheritance, so
// the metric-gap invariant is not enforced until the specification is
// built from the resolved document.
func contextName(pack, metric, nameVal string) (naming.Name, error) {
	n, err := naming.New(nil, metric, nameVal)
	if err != nil {
		return naming.Name{}, err
	}
	if n.Package == "" {
		n.Package = pack
	}
	return n, nil
}

// documentMetric extracts a document's metric context from its metric
// field or, failing that, from a dotted name field.
func documentMetric(doc *document.Document) string {
	if metric, ok := doc.String("metric"); ok {
		return metric
	}
	if nameVal, ok := doc.String("name"); ok {
		if n, err := naming.New(nil, nil, nameVal); err == nil {
			return n.Metric
		}
	}
	return ""
}
