package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"parse int", []string{"prop", "parse", "--type", "int", "42"}, "0000002a\n"},
		{"parse char", []string{"prop", "parse", "-t", "char", "x"}, "78\n"},
		{"parse storage list", []string{"prop", "parse", "--type", "list_string", "--layout", "storage", "a,b"},
			"0000000200000001000000026162\n"},
		{"render list", []string{"prop", "render", "--type", "list_int", "000000020000000100000002"}, "[1, 2]\n"},
		{"render spaced hex", []string{"prop", "render", "--type", "short", "ff fe"}, "-2\n"},
		{"transform", []string{"prop", "transform", "--from", "int", "--to", "float", "123"}, "123\n"},
		{"transform truncates", []string{"prop", "transform", "--from", "double", "--to", "int", "2.9"}, "2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPropFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{"unparsable literal", []string{"prop", "parse", "--type", "int", "abc"}, ExitFailure, "Error [UNKNOWN]"},
		{"unknown type", []string{"prop", "parse", "--type", "integer", "1"}, ExitCommandError, ""},
		{"bad layout", []string{"prop", "parse", "--type", "int", "--layout", "disk", "1"}, ExitCommandError, ""},
		{"malformed bytes", []string{"prop", "render", "--type", "int", "0001"}, ExitFailure, "Error [MALFORMED]"},
		{"out of range", []string{"prop", "transform", "--from", "int", "--to", "char", "300"}, ExitFailure, "Error [DATA_ERROR]"},
		{"bad literal transform", []string{"prop", "transform", "--from", "int", "--to", "long", "x"}, ExitFailure, "Error [DATA_ERROR]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, GetExitCode(err))
			if tt.out != "" {
				assert.Contains(t, out, tt.out)
			}
		})
	}
}

func TestPropTransformJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "prop", "transform", "--from", "int", "--to", "float", "123")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   PropertyOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, PropertyOutput{Type: "float", Layout: LayoutStorage, Hex: "42f60000", Text: "123"}, resp.Data)
}
