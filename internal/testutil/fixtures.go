// Package testutil holds fixtures shared by tests that need a schema and a
// property store.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/gvalue/internal/schema"
	"github.com/roach88/gvalue/internal/store"
)

// SocialSchema declares a person vertex label (id 1) and a knows edge label
// (id 2) between persons.
const SocialSchema = `
vertex: person: {
	id: 1
	properties: [
		{name: "name", id: 1, type: "string"},
		{name: "age", id: 2, type: "int"},
		{name: "scores", id: 3, type: "list_double"},
	]
}
edge: knows: {
	id: 2
	src: "person"
	dst: "person"
	properties: [{name: "weight", id: 4, type: "float"}]
}
`

// Schema compiles SocialSchema.
func Schema(t testing.TB) *schema.Schema {
	t.Helper()
	sc, err := schema.CompileBytes([]byte(SocialSchema), "social.cue")
	require.NoError(t, err)
	return sc
}

// WriteSchema writes SocialSchema into dir and returns its path.
func WriteSchema(t testing.TB, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "social.cue")
	require.NoError(t, os.WriteFile(path, []byte(SocialSchema), 0o644))
	return path
}

// OpenStore opens a store in a fresh temporary directory and closes it when
// the test ends.
func OpenStore(t testing.TB) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return st
}

// WriteLines writes lines, each newline-terminated, to dir/name and returns
// the path.
func WriteLines(t testing.TB, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	var data []byte
	for _, l := range lines {
		data = append(data, l...)
		data = append(data, '\n')
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
