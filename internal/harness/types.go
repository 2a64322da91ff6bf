package harness

// Trace event kinds, one per step variant.
const (
	KindSend     = "send"
	KindRaw      = "raw"
	KindProperty = "property"
)

// TraceEvent records what one step produced. Wire steps fill Received, Type,
// Len and (for sent entries) RoundTrip; property steps fill Type, Text and
// Hex. Error holds the failure code of whichever stage failed.
type TraceEvent struct {
	Seq       int    `json:"seq"`
	Kind      string `json:"kind"`
	Sent      string `json:"sent,omitempty"`
	Received  string `json:"received,omitempty"`
	Type      string `json:"type,omitempty"`
	Len       *int   `json:"len,omitempty"`
	RoundTrip *bool  `json:"roundtrip,omitempty"`
	Error     string `json:"error,omitempty"`
	Text      string `json:"text,omitempty"`
	Hex       string `json:"hex,omitempty"`
}

// decoded reports whether the receiver decoded this step's frame.
func (e TraceEvent) decoded() bool {
	return e.Kind != KindProperty && e.Error == "" && e.Type != ""
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace has one event per step, in step order.
	Trace []TraceEvent `json:"trace"`

	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
