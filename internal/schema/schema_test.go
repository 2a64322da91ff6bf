package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gvalue/internal/property"
)

const social = `
vertex: person: {
	id: 1
	primary_key: ["name"]
	properties: [
		{name: "name", id: 1, type: "string"},
		{name: "age", id: 2, type: "int"},
		{name: "tags", id: 3, type: "list_string"},
	]
}
vertex: city: {
	id: 0
	properties: [{name: "name", id: 1, type: "string"}]
}
edge: lives_in: {
	id: 5
	src: "person"
	dst: "city"
	properties: [{name: "since", id: 4, type: "date"}]
}
`

func TestCompile(t *testing.T) {
	s, err := CompileBytes([]byte(social), "social.cue")
	require.NoError(t, err)

	labels := s.Labels()
	require.Len(t, labels, 3)
	assert.Equal(t, "city", labels[0].Name)
	assert.Equal(t, "person", labels[1].Name)
	assert.Equal(t, "lives_in", labels[2].Name)

	person, ok := s.Label("person")
	require.True(t, ok)
	assert.Equal(t, KindVertex, person.Kind)
	assert.Equal(t, int32(1), person.ID)
	assert.Equal(t, []string{"name"}, person.PrimaryKey)
	require.Len(t, person.Properties, 3)
	assert.Equal(t, PropertyDef{Name: "age", ID: 2, Type: property.TypeInt}, person.Properties[1])

	def, ok := person.PropertyByID(3)
	require.True(t, ok)
	assert.Equal(t, property.TypeListString, def.Type)
	_, ok = person.Property("missing")
	assert.False(t, ok)

	edge, ok := s.LabelByID(5)
	require.True(t, ok)
	assert.Equal(t, KindEdge, edge.Kind)
	assert.Equal(t, "person", edge.Src)
	assert.Equal(t, "city", edge.Dst)
	assert.Equal(t, int32(5), edge.GraphLabel().ID)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "social.cue")
	require.NoError(t, os.WriteFile(path, []byte(social), 0644))
	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Labels(), 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.cue"))
	assert.Error(t, err)
}

func TestCompileErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":           `vertex: person: {`,
		"empty":            `other: 1`,
		"missing id":       `vertex: person: {properties: []}`,
		"unknown type":     `vertex: person: {id: 1, properties: [{name: "x", id: 1, type: "decimal"}]}`,
		"duplicate prop":   `vertex: person: {id: 1, properties: [{name: "x", id: 1, type: "int"}, {name: "x", id: 2, type: "int"}]}`,
		"duplicate propid": `vertex: person: {id: 1, properties: [{name: "x", id: 1, type: "int"}, {name: "y", id: 1, type: "int"}]}`,
		"duplicate label":  "vertex: a: {id: 1}\nvertex: b: {id: 1}",
		"vertex and edge":  "vertex: a: {id: 1}\nedge: a: {id: 2, src: \"a\", dst: \"a\"}",
		"bad endpoint":     "vertex: a: {id: 1}\nedge: e: {id: 2, src: \"a\", dst: \"b\"}",
		"edge endpoint":    "vertex: a: {id: 1}\nedge: e: {id: 2, src: \"a\", dst: \"e\"}",
		"missing src":      "vertex: a: {id: 1}\nedge: e: {id: 2, dst: \"a\"}",
		"bad primary key":  `vertex: a: {id: 1, primary_key: ["x"]}`,
		"negative id":      `vertex: a: {id: -1}`,
		"incomplete":       `vertex: a: {id: int}`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := CompileBytes([]byte(src), "bad.cue")
			assert.Error(t, err)
		})
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := CompileBytes([]byte(`vertex: person: {id: 1, properties: [{name: "x", id: 1, type: "decimal"}]}`), "pos.cue")
	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "person.x.type", se.Field)
	assert.True(t, se.Pos.IsValid())
	assert.Contains(t, err.Error(), "pos.cue")
}
