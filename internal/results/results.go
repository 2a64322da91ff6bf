// Package results defines the external result message exchanged with the
// query compilation and transport layers.
//
// The message is a plain data boundary: each oneof of the wire format is a
// struct of optional fields of which exactly one may be set. Conversion into
// runtime entries lives in the entry package.
package results

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NameOrID is a property key or label given either by name or by id.
type NameOrID struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	ID   *int32 `yaml:"id,omitempty" json:"id,omitempty"`
}

// Value is a scalar. Exactly one field may be set; a message with no field
// set is the none value only when None is true.
type Value struct {
	None    bool      `yaml:"none,omitempty" json:"none,omitempty"`
	Bool    *bool     `yaml:"bool,omitempty" json:"bool,omitempty"`
	I32     *int32    `yaml:"i32,omitempty" json:"i32,omitempty"`
	I64     *int64    `yaml:"i64,omitempty" json:"i64,omitempty"`
	U64     *uint64   `yaml:"u64,omitempty" json:"u64,omitempty"`
	F64     *float64  `yaml:"f64,omitempty" json:"f64,omitempty"`
	Str     *string   `yaml:"str,omitempty" json:"str,omitempty"`
	Blob    []byte    `yaml:"blob,omitempty" json:"blob,omitempty"`
	I32List []int32   `yaml:"i32_list,omitempty" json:"i32_list,omitempty"`
	I64List []int64   `yaml:"i64_list,omitempty" json:"i64_list,omitempty"`
	F64List []float64 `yaml:"f64_list,omitempty" json:"f64_list,omitempty"`
	StrList []string  `yaml:"str_list,omitempty" json:"str_list,omitempty"`
}

// Property is one key/value attribute of a vertex or edge.
type Property struct {
	Key   NameOrID `yaml:"key" json:"key"`
	Value Value    `yaml:"value" json:"value"`
}

// Vertex is a vertex in a result message.
type Vertex struct {
	ID         uint64     `yaml:"id" json:"id"`
	Label      *int32     `yaml:"label,omitempty" json:"label,omitempty"`
	Properties []Property `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// Edge is an edge in a result message.
type Edge struct {
	ID         uint64     `yaml:"id" json:"id"`
	Label      *int32     `yaml:"label,omitempty" json:"label,omitempty"`
	SrcID      uint64     `yaml:"src_id" json:"src_id"`
	SrcLabel   *int32     `yaml:"src_label,omitempty" json:"src_label,omitempty"`
	DstID      uint64     `yaml:"dst_id" json:"dst_id"`
	DstLabel   *int32     `yaml:"dst_label,omitempty" json:"dst_label,omitempty"`
	Properties []Property `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// PathElement is one step of a path: a vertex or an edge.
type PathElement struct {
	Vertex *Vertex `yaml:"vertex,omitempty" json:"vertex,omitempty"`
	Edge   *Edge   `yaml:"edge,omitempty" json:"edge,omitempty"`
}

// Path is a traversed path. Elements are in traversal order.
type Path struct {
	Elements []PathElement `yaml:"elements" json:"elements"`
}

// Element is a single graph element or scalar.
type Element struct {
	Vertex *Vertex `yaml:"vertex,omitempty" json:"vertex,omitempty"`
	Edge   *Edge   `yaml:"edge,omitempty" json:"edge,omitempty"`
	Path   *Path   `yaml:"path,omitempty" json:"path,omitempty"`
	Object *Value  `yaml:"object,omitempty" json:"object,omitempty"`
}

// Collection is an ordered list of elements.
type Collection struct {
	Elements []Element `yaml:"elements" json:"elements"`
}

// KeyValue is one entry of a map result. Value is itself an entry so that the
// format can express nested collections and maps.
type KeyValue struct {
	Key   *Value `yaml:"key" json:"key"`
	Value *Entry `yaml:"value" json:"value"`
}

// KeyValues is a map result.
type KeyValues struct {
	Entries []KeyValue `yaml:"entries" json:"entries"`
}

// Entry is one result row.
type Entry struct {
	Element    *Element    `yaml:"element,omitempty" json:"element,omitempty"`
	Collection *Collection `yaml:"collection,omitempty" json:"collection,omitempty"`
	Map        *KeyValues  `yaml:"map,omitempty" json:"map,omitempty"`
}

// Results is a result set.
type Results struct {
	Entries []Entry `yaml:"entries" json:"entries"`
}

// Parse decodes a YAML (or JSON) result set.
func Parse(data []byte) (*Results, error) {
	var r Results
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, &ParseError{Code: ErrCodeInvalid, Message: err.Error()}
	}
	return &r, nil
}

// LoadFile reads and decodes a result set file.
func LoadFile(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse results %s: %w", path, err)
	}
	return r, nil
}
