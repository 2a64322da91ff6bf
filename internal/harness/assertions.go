package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		switch {
		case event.Error != "":
			fmt.Fprintf(&buf, "  [%d] %s %s -> %s\n", event.Seq, event.Kind, event.Sent, event.Error)
		case event.Kind == KindProperty:
			fmt.Fprintf(&buf, "  [%d] %s %q -> %s %s\n", event.Seq, event.Kind, event.Sent, event.Type, event.Text)
		default:
			fmt.Fprintf(&buf, "  [%d] %s %s -> %s\n", event.Seq, event.Kind, event.Sent, event.Received)
		}
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against the result's trace and
// returns one error per failed assertion.
func EvaluateAssertions(result *Result, assertions []Assertion) []error {
	var errs []error
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertDecodedCount:
			err = assertDecodedCount(result.Trace, a)
		case AssertErrorCount:
			err = assertErrorCount(result.Trace, a)
		case AssertTypeOrder:
			err = assertTypeOrder(result.Trace, a)
		case AssertRoundTripEqual:
			err = assertRoundTripEqual(result.Trace)
		default:
			err = fmt.Errorf("unknown assertion type: %s", a.Type)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func assertDecodedCount(trace []TraceEvent, a Assertion) error {
	n := 0
	for _, e := range trace {
		if e.decoded() {
			n++
		}
	}
	if n != a.Count {
		return &AssertionError{
			Type:     AssertDecodedCount,
			Expected: fmt.Sprintf("%d decoded entries", a.Count),
			Actual:   fmt.Sprintf("%d decoded entries", n),
			Trace:    trace,
		}
	}
	return nil
}

func assertErrorCount(trace []TraceEvent, a Assertion) error {
	n := 0
	for _, e := range trace {
		if e.Error != "" {
			n++
		}
	}
	if n != a.Count {
		return &AssertionError{
			Type:     AssertErrorCount,
			Expected: fmt.Sprintf("%d errors", a.Count),
			Actual:   fmt.Sprintf("%d errors", n),
			Trace:    trace,
		}
	}
	return nil
}

// assertTypeOrder checks that the types appear in order among decoded
// entries. Other entries may appear in between.
func assertTypeOrder(trace []TraceEvent, a Assertion) error {
	var seen []string
	next := 0
	for _, e := range trace {
		if !e.decoded() {
			continue
		}
		seen = append(seen, e.Type)
		if next < len(a.Types) && e.Type == a.Types[next] {
			next++
		}
	}
	if next < len(a.Types) {
		return &AssertionError{
			Type:     AssertTypeOrder,
			Expected: strings.Join(a.Types, " < "),
			Actual:   fmt.Sprintf("%s missing from [%s]", a.Types[next], strings.Join(seen, ", ")),
			Trace:    trace,
		}
	}
	return nil
}

func assertRoundTripEqual(trace []TraceEvent) error {
	for _, e := range trace {
		if e.Kind != KindSend || e.Error != "" {
			continue
		}
		if e.RoundTrip == nil || !*e.RoundTrip {
			return &AssertionError{
				Type:     AssertRoundTripEqual,
				Expected: e.Sent,
				Actual:   e.Received,
				Trace:    trace,
			}
		}
	}
	return nil
}
