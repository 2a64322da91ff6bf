package harness

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gvalue/internal/entry"
	"github.com/roach88/gvalue/internal/property"
)

func TestGoldenScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, path)
		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRunCollectionElements(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/codec_basics.yaml")
	require.NoError(t, err)

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	require.Len(t, result.Trace, len(scenario.Steps))

	coll := result.Trace[1]
	require.NotNil(t, coll.RoundTrip)
	assert.True(t, *coll.RoundTrip)
	last := entry.NewObject(property.ToObject(property.Int(7))).String()
	assert.True(t, strings.HasSuffix(coll.Received, ", "+last+"]"), coll.Received)
}

func TestRunReportsExpectMismatch(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: mismatch
description: "expect clause that does not hold"
steps:
  - send:
      element:
        object: { i64: 5 }
    expect: { type: vertex, len: 2 }
  - raw: "09"
    expect: { error: TRUNCATED }
`))
	require.NoError(t, err)

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "expected type vertex, got object")
	assert.Contains(t, result.Errors[1], "expected len 2, got 1")
	assert.Contains(t, result.Errors[2], `expected error "TRUNCATED", got ""`)

	null := result.Trace[1]
	assert.Equal(t, "null", null.Received)
	assert.Equal(t, "null", null.Type)
}

func TestRunConversionError(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: empty_entry
description: "an entry with nothing set never reaches the link"
steps:
  - send: {}
    expect: { error: EMPTY_FIELD }
assertions:
  - type: decoded_count
    count: 0
  - type: error_count
    count: 1
  - type: roundtrip_equal
`))
	require.NoError(t, err)

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Trace[0].Sent)
}

func TestRunCancelled(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: cancelled
description: "a cancelled context breaks the link"
steps:
  - raw: "09"
`))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, scenario)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssertionFailures(t *testing.T) {
	vertex := TraceEvent{Seq: 1, Kind: KindSend, Sent: "v[1:-]{}", Received: "v[1:-]{}", Type: "vertex"}
	bad := false
	edge := TraceEvent{Seq: 2, Kind: KindSend, Sent: "e[2:-](1->2){}", Received: "e[2:-](1->3){}", Type: "edge", RoundTrip: &bad}
	result := &Result{Trace: []TraceEvent{vertex, edge}}

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertDecodedCount, Count: 2},
		{Type: AssertDecodedCount, Count: 1},
		{Type: AssertTypeOrder, Types: []string{"vertex", "edge"}},
		{Type: AssertTypeOrder, Types: []string{"edge", "vertex"}},
		{Type: AssertErrorCount, Count: 1},
		{Type: AssertRoundTripEqual},
	})
	require.Len(t, errs, 4)

	var ae *AssertionError
	require.ErrorAs(t, errs[0], &ae)
	assert.Equal(t, AssertDecodedCount, ae.Type)
	require.ErrorAs(t, errs[1], &ae)
	assert.Equal(t, AssertTypeOrder, ae.Type)
	assert.Contains(t, ae.Actual, "vertex missing from [vertex, edge]")
	require.ErrorAs(t, errs[2], &ae)
	assert.Equal(t, AssertErrorCount, ae.Type)
	require.ErrorAs(t, errs[3], &ae)
	assert.Equal(t, AssertRoundTripEqual, ae.Type)
	assert.Contains(t, ae.Error(), "[2] send e[2:-](1->2){} -> e[2:-](1->3){}")
}
