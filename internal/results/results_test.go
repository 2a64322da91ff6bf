package results

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
entries:
  - element:
      vertex:
        id: 1
        label: 0
        properties:
          - key: {name: name}
            value: {str: marko}
  - collection:
      elements:
        - object: {i32: 7}
        - edge: {id: 2, src_id: 1, dst_id: 3}
  - map:
      entries:
        - key: {str: age}
          value:
            element:
              object: {i64: 29}
`

func TestParse(t *testing.T) {
	r, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, r.Entries, 3)

	v := r.Entries[0].Element.Vertex
	require.NotNil(t, v)
	assert.Equal(t, uint64(1), v.ID)
	require.NotNil(t, v.Label)
	assert.Equal(t, int32(0), *v.Label)
	assert.Equal(t, "marko", *v.Properties[0].Value.Str)

	c := r.Entries[1].Collection
	require.NotNil(t, c)
	assert.Equal(t, int32(7), *c.Elements[0].Object.I32)
	assert.Equal(t, uint64(3), c.Elements[1].Edge.DstID)

	m := r.Entries[2].Map
	require.NotNil(t, m)
	assert.Equal(t, "age", *m.Entries[0].Key.Str)
	assert.Equal(t, int64(29), *m.Entries[0].Value.Element.Object.I64)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("entries: [unterminated"))
	code, ok := ErrorCode(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalid, code)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, r.Entries, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValueValidate(t *testing.T) {
	i := int32(1)
	s := "x"

	assert.NoError(t, (&Value{I32: &i}).Validate())
	assert.NoError(t, (&Value{None: true}).Validate())

	err := (&Value{}).Validate()
	code, _ := ErrorCode(err)
	assert.Equal(t, ErrCodeEmptyField, code)

	err = (&Value{I32: &i, Str: &s}).Validate()
	code, _ = ErrorCode(err)
	assert.Equal(t, ErrCodeInvalid, code)
}

func TestErrorHelpers(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Errorf(ErrCodeUnimplemented, "nested %s", "map"))
	assert.True(t, IsUnimplemented(err))
	assert.Contains(t, err.Error(), "UNIMPLEMENTED: nested map")
	assert.False(t, IsUnimplemented(Errorf(ErrCodeUnsupported, "x")))
}
