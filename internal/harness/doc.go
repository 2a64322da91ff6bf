// Package harness runs conformance scenarios against the entry codec and the
// property value layer.
//
// A scenario plays the part of a worker that ships result entries to a peer.
// Every wire step is encoded, framed and written to an in-memory pipe by a
// sender goroutine; the receiving side decodes each frame with a bounded
// codec and records what it saw. Property steps run locally and record the
// transport bytes and display text of a parsed value.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	max_len: 16
//	steps:
//	  - send:
//	      element: { vertex: { id: 1, label: 0 } }
//	    expect: { type: vertex, text: "v[1:0]{}" }
//	  - raw: "ff"
//	    expect: { error: UNKNOWN_TAG }
//	  - property: { text: "123", type: int, transform: float }
//	    expect: { text: "123" }
//	assertions:
//	  - type: decoded_count
//	    count: 1
//
// # Assertion Types
//
//   - decoded_count: number of wire steps the receiver decoded
//   - error_count: number of steps that ended in an error
//   - type_order: entry types appear in this order among decoded steps
//   - roundtrip_equal: every sent entry decoded equal to what was sent
//
// # Golden Files
//
// RunWithGolden compares the trace as indented JSON against
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
