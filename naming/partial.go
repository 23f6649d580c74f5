package naming

import (
	"fmt"
	"strings"
)

// PartialID identifies a reusable partial document: "[package:][path]#name".
// Package and Path may be absent at authoring time; Normalize fills them
// from the document's load context. Like Name, PartialID is comparable and
// usable as a map key.
type PartialID struct {
	Package string
	Path    string
	Name    string
}

// ParsePartialID parses a "[package:][path]#name" reference. The "#name"
// part is mandatory.
func ParsePartialID(s string) (PartialID, error) {
	if strings.Count(s, "#") != 1 {
		return PartialID{}, fmt.Errorf("%w: partial reference %q needs exactly one '#'", ErrMalformed, s)
	}
	prefix, name, _ := strings.Cut(s, "#")
	if name == "" {
		return PartialID{}, fmt.Errorf("%w: partial reference %q has an empty name", ErrMalformed, s)
	}

	id := PartialID{Name: name}
	if prefix != "" {
		if strings.Count(prefix, ":") > 1 {
			return PartialID{}, fmt.Errorf("%w: partial reference %q has multiple ':'", ErrMalformed, s)
		}
		if pack, path, found := strings.Cut(prefix, ":"); found {
			if pack == "" {
				return PartialID{}, fmt.Errorf("%w: partial reference %q has an empty package", ErrMalformed, s)
			}
			id.Package = pack
			id.Path = path
		} else {
			id.Path = prefix
		}
	}
	return id, nil
}

// Normalize returns a copy with absent package and path segments filled in
// from the enclosing document's package and YAML-file-relative id.
func (p PartialID) Normalize(defaultPackage, defaultPath string) PartialID {
	if p.Package == "" {
		p.Package = defaultPackage
	}
	if p.Path == "" {
		p.Path = defaultPath
	}
	return p
}

// IsFullyQualified reports whether all three segments are present.
func (p PartialID) IsFullyQualified() bool {
	return p.Package != "" && p.Path != "" && p.Name != ""
}

// String renders the canonical "package:path#name" form, omitting absent
// leading segments.
func (p PartialID) String() string {
	var b strings.Builder
	if p.Package != "" {
		b.WriteString(p.Package)
		b.WriteByte(':')
	}
	b.WriteString(p.Path)
	b.WriteByte('#')
	b.WriteString(p.Name)
	return b.String()
}
