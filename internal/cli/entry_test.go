package cli

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gvalue/internal/entry"
)

const resultMessage = `
entries:
  - element:
      vertex: { id: 1, label: 0 }
  - collection:
      elements:
        - object: { i32: 7 }
        - object: { str: "x" }
`

func TestEntryDecode(t *testing.T) {
	out, err := execute(t, "entry", "decode", "09")
	require.NoError(t, err)
	assert.Equal(t, "null (len 0): null\n", out)
}

func TestEntryDecodeErrors(t *testing.T) {
	out, err := execute(t, "entry", "decode", "ff")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [UNKNOWN_TAG]")

	_, err = execute(t, "entry", "decode", "zz")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEntryEncodeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	require.NoError(t, os.WriteFile(path, []byte(resultMessage), 0o644))

	out, err := execute(t, "--format", "json", "entry", "encode", "-f", path)
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   []EncodedEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)

	assert.Equal(t, "vertex", resp.Data[0].Type)
	assert.Equal(t, "v[1:0]{}", resp.Data[0].Text)
	assert.Equal(t, "collection", resp.Data[1].Type)
	assert.Equal(t, `[7, "x"]`, resp.Data[1].Text)

	for _, e := range resp.Data {
		data, err := hex.DecodeString(e.Hex)
		require.NoError(t, err)
		h, err := entry.Codec{}.Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, e.Text, h.String())
	}

	// Text output pipes straight back into decode.
	out, err = execute(t, "entry", "encode", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, resp.Data[0].Hex+"\n"+resp.Data[1].Hex+"\n", out)

	out, err = execute(t, "entry", "decode", resp.Data[1].Hex)
	require.NoError(t, err)
	assert.Equal(t, "collection (len 2): [7, \"x\"]\n", out)
}

func TestEntryEncodeConversionError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - {}\n"), 0o644))

	out, err := execute(t, "entry", "encode", "-f", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [EMPTY_FIELD]")
}

func TestEntryEncodeMissingFile(t *testing.T) {
	_, err := execute(t, "entry", "encode", "-f", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
