package schema

import (
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/property"
)

// Kind says whether a label names vertices or edges.
type Kind uint8

const (
	KindVertex Kind = iota + 1
	KindEdge
)

func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// PropertyDef declares one property of a label.
type PropertyDef struct {
	Name string
	ID   int32
	Type property.DataType
}

// Label is a vertex or edge label with its declared properties in
// declaration order.
type Label struct {
	Name       string
	ID         int32
	Kind       Kind
	Src, Dst   string // endpoint vertex labels, edges only
	PrimaryKey []string
	Properties []PropertyDef
}

// Property looks up a declared property by name.
func (l *Label) Property(name string) (PropertyDef, bool) {
	for _, p := range l.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyDef{}, false
}

// PropertyByID looks up a declared property by id.
func (l *Label) PropertyByID(id int32) (PropertyDef, bool) {
	for _, p := range l.Properties {
		if p.ID == id {
			return p, true
		}
	}
	return PropertyDef{}, false
}

// GraphLabel returns the label as carried on graph elements.
func (l *Label) GraphLabel() graph.Label {
	return graph.LabelOf(l.ID)
}

// Schema is a compiled graph schema.
type Schema struct {
	labels []*Label
	byName map[string]*Label
	byID   map[int32]*Label
}

// Labels returns every label ordered by id.
func (s *Schema) Labels() []*Label {
	return s.labels
}

// Label looks up a label by name.
func (s *Schema) Label(name string) (*Label, bool) {
	l, ok := s.byName[name]
	return l, ok
}

// LabelByID looks up a label by id.
func (s *Schema) LabelByID(id int32) (*Label, bool) {
	l, ok := s.byID[id]
	return l, ok
}

// LoadFile compiles the CUE schema file at path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return CompileBytes(data, path)
}

// CompileBytes compiles CUE source. filename is used in error positions.
func CompileBytes(src []byte, filename string) (*Schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	return Compile(v)
}

// Compile reads a schema from a CUE value of the form
//
//	vertex: person: {
//		id: 1
//		primary_key: ["name"]
//		properties: [{name: "name", id: 1, type: "string"}]
//	}
//	edge: knows: {
//		id: 2
//		src: "person"
//		dst: "person"
//		properties: [{name: "since", id: 3, type: "date"}]
//	}
func Compile(v cue.Value) (*Schema, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	s := &Schema{
		byName: make(map[string]*Label),
		byID:   make(map[int32]*Label),
	}
	for _, kind := range []Kind{KindVertex, KindEdge} {
		section := v.LookupPath(cue.ParsePath(kind.String()))
		if !section.Exists() {
			continue
		}
		iter, err := section.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			l, err := parseLabel(iter.Label(), kind, iter.Value())
			if err != nil {
				return nil, err
			}
			if prev, dup := s.byName[l.Name]; dup {
				return nil, &Error{Field: l.Name, Message: fmt.Sprintf("label also declared as %s", prev.Kind), Pos: iter.Value().Pos()}
			}
			if prev, dup := s.byID[l.ID]; dup {
				return nil, &Error{Field: l.Name + ".id", Message: fmt.Sprintf("id %d already used by %s", l.ID, prev.Name), Pos: iter.Value().Pos()}
			}
			s.byName[l.Name] = l
			s.byID[l.ID] = l
			s.labels = append(s.labels, l)
		}
	}
	if len(s.labels) == 0 {
		return nil, &Error{Field: "vertex", Message: "at least one label is required", Pos: v.Pos()}
	}

	for _, l := range s.labels {
		if l.Kind != KindEdge {
			continue
		}
		for _, end := range []string{l.Src, l.Dst} {
			if ref, ok := s.byName[end]; !ok || ref.Kind != KindVertex {
				return nil, &Error{Field: l.Name, Message: fmt.Sprintf("endpoint %q is not a vertex label", end)}
			}
		}
	}

	sort.Slice(s.labels, func(i, j int) bool { return s.labels[i].ID < s.labels[j].ID })
	return s, nil
}

func parseLabel(name string, kind Kind, v cue.Value) (*Label, error) {
	l := &Label{Name: name, Kind: kind}

	id, err := requiredInt32(v, name, "id")
	if err != nil {
		return nil, err
	}
	l.ID = id

	if kind == KindEdge {
		if l.Src, err = requiredString(v, name, "src"); err != nil {
			return nil, err
		}
		if l.Dst, err = requiredString(v, name, "dst"); err != nil {
			return nil, err
		}
	}

	// properties are optional; a label may carry none
	if props := v.LookupPath(cue.ParsePath("properties")); props.Exists() {
		iter, err := props.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			def, err := parseProperty(name, iter.Value())
			if err != nil {
				return nil, err
			}
			if _, dup := l.Property(def.Name); dup {
				return nil, &Error{Field: name + ".properties", Message: fmt.Sprintf("duplicate property %q", def.Name), Pos: iter.Value().Pos()}
			}
			if _, dup := l.PropertyByID(def.ID); dup {
				return nil, &Error{Field: name + ".properties", Message: fmt.Sprintf("duplicate property id %d", def.ID), Pos: iter.Value().Pos()}
			}
			l.Properties = append(l.Properties, def)
		}
	}

	if pk := v.LookupPath(cue.ParsePath("primary_key")); pk.Exists() {
		iter, err := pk.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			key, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			if _, ok := l.Property(key); !ok {
				return nil, &Error{Field: name + ".primary_key", Message: fmt.Sprintf("%q is not a declared property", key), Pos: iter.Value().Pos()}
			}
			l.PrimaryKey = append(l.PrimaryKey, key)
		}
	}
	return l, nil
}

func parseProperty(label string, v cue.Value) (PropertyDef, error) {
	var def PropertyDef
	var err error
	if def.Name, err = requiredString(v, label+".properties", "name"); err != nil {
		return def, err
	}
	field := label + "." + def.Name
	if def.ID, err = requiredInt32(v, field, "id"); err != nil {
		return def, err
	}
	typeName, err := requiredString(v, field, "type")
	if err != nil {
		return def, err
	}
	if def.Type, err = property.ParseDataType(typeName); err != nil {
		return def, &Error{Field: field + ".type", Message: err.Error(), Pos: v.LookupPath(cue.ParsePath("type")).Pos()}
	}
	return def, nil
}

func requiredString(v cue.Value, owner, name string) (string, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return "", &Error{Field: owner + "." + name, Message: name + " is required", Pos: v.Pos()}
	}
	s, err := f.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func requiredInt32(v cue.Value, owner, name string) (int32, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return 0, &Error{Field: owner + "." + name, Message: name + " is required", Pos: v.Pos()}
	}
	n, err := f.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	if n < 0 || n > 1<<31-1 {
		return 0, &Error{Field: owner + "." + name, Message: fmt.Sprintf("%d is out of range", n), Pos: f.Pos()}
	}
	return int32(n), nil
}

// Error is a schema error with the CUE source position when known.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}
