package harness

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/gvalue/internal/entry"
	"github.com/roach88/gvalue/internal/metrics"
	"github.com/roach88/gvalue/internal/property"
	"github.com/roach88/gvalue/internal/results"
	"github.com/roach88/gvalue/internal/wire"
)

// maxFrame bounds a single frame on the simulated link.
const maxFrame = 64 << 20

// Harness executes scenarios.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the harness logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// frame is one payload queued for the sender.
type frame struct {
	step    int
	payload []byte
	sent    *entry.Handle
}

// Run executes a scenario and returns its trace. The returned error reports
// a broken link or a cancelled context; step failures and assertion
// failures are recorded in the result.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	h := &Harness{logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h.Run(ctx, scenario)
}

// Run executes a scenario with this harness.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	codec := entry.Codec{MaxLen: scenario.MaxLen, Observer: metrics.CodecObserver{}}
	events := make([]TraceEvent, len(scenario.Steps))
	var frames []frame

	for i, step := range scenario.Steps {
		ev := &events[i]
		ev.Seq = i + 1
		switch {
		case step.Send != nil:
			ev.Kind = KindSend
			sent, err := entry.FromResultEntry(step.Send)
			if err != nil {
				ev.Error = errorCode(err)
				continue
			}
			ev.Sent = sent.String()
			frames = append(frames, frame{step: i, payload: codec.Marshal(sent), sent: &sent})
		case step.Raw != "":
			ev.Kind = KindRaw
			ev.Sent = step.Raw
			payload, _ := hex.DecodeString(step.Raw)
			frames = append(frames, frame{step: i, payload: payload})
		default:
			*ev = runProperty(step.Property)
			ev.Seq = i + 1
		}
	}

	if err := h.ship(ctx, codec, frames, events); err != nil {
		return nil, err
	}

	result := NewResult()
	result.Trace = events
	for i, step := range scenario.Steps {
		if step.Expect != nil {
			for _, msg := range checkExpect(events[i], step.Expect) {
				result.AddError(fmt.Sprintf("step %d: %s", i+1, msg))
			}
		}
	}
	for _, err := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(err.Error())
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
		"frames", len(frames),
		"pass", result.Pass,
	)
	return result, nil
}

// ship writes every frame from a sender goroutine and decodes them on the
// calling goroutine, filling in the receiving half of each event.
func (h *Harness) ship(ctx context.Context, codec entry.Codec, frames []frame, events []TraceEvent) error {
	pr, pw := io.Pipe()
	done := make(chan error, 1)

	go func() {
		for _, f := range frames {
			if err := ctx.Err(); err != nil {
				pw.CloseWithError(err)
				done <- err
				return
			}
			if err := writeFrame(pw, f.payload); err != nil {
				done <- err
				return
			}
		}
		done <- pw.Close()
	}()

	for _, f := range frames {
		payload, err := readFrame(pr)
		if err != nil {
			pr.CloseWithError(err)
			<-done
			return fmt.Errorf("receive frame for step %d: %w", f.step+1, err)
		}

		ev := &events[f.step]
		got, err := codec.Unmarshal(payload)
		if err != nil {
			ev.Error = errorCode(err)
			h.logger.Debug("frame rejected", "step", f.step+1, "error", err)
			continue
		}
		ev.Received = got.String()
		ev.Type = got.Type().String()
		n := got.Len()
		ev.Len = &n
		if f.sent != nil {
			eq := entry.Equal(*f.sent, got)
			ev.RoundTrip = &eq
		}
	}

	if _, err := readFrame(pr); !errors.Is(err, io.EOF) {
		pr.CloseWithError(errors.New("unexpected frame"))
		<-done
		return fmt.Errorf("link not drained: %v", err)
	}
	return <-done
}

func runProperty(ps *PropertyStep) TraceEvent {
	ev := TraceEvent{Kind: KindProperty, Sent: ps.Text}
	dt, _ := property.ParseDataType(ps.Type)
	p := property.Parse(ps.Text, dt)

	if ps.Transform != "" {
		target, _ := property.ParseDataType(ps.Transform)
		stored, err := property.Transform(p, target)
		if err != nil {
			ev.Error = errorCode(err)
			return ev
		}
		q, err := property.DecodeStorage(target, stored)
		if err != nil {
			ev.Error = errorCode(err)
			return ev
		}
		p, dt = q, target
	}

	if property.IsUnknown(p) {
		ev.Type = "unknown"
		return ev
	}
	ev.Type = dt.String()
	data := property.ToBytes(p)
	ev.Hex = hex.EncodeToString(data)
	text, err := property.Render(data, dt)
	if err != nil {
		ev.Error = errorCode(err)
		return ev
	}
	ev.Text = text
	return ev
}

func checkExpect(ev TraceEvent, want *Expect) []string {
	var msgs []string
	if want.Error != ev.Error && (want.Error != "" || ev.Error != "") {
		msgs = append(msgs, fmt.Sprintf("expected error %q, got %q", want.Error, ev.Error))
	}
	if want.Type != "" && want.Type != ev.Type {
		msgs = append(msgs, fmt.Sprintf("expected type %s, got %s", want.Type, ev.Type))
	}
	if want.Len != nil && (ev.Len == nil || *ev.Len != *want.Len) {
		got := "none"
		if ev.Len != nil {
			got = fmt.Sprint(*ev.Len)
		}
		msgs = append(msgs, fmt.Sprintf("expected len %d, got %s", *want.Len, got))
	}
	if want.Text != "" {
		text := ev.Received
		if ev.Kind == KindProperty {
			text = ev.Text
		}
		if want.Text != text {
			msgs = append(msgs, fmt.Sprintf("expected text %s, got %s", want.Text, text))
		}
	}
	return msgs
}

// errorCode extracts the code of a known error type.
func errorCode(err error) string {
	var pe *entry.ProtocolError
	if errors.As(err, &pe) {
		return string(pe.Code)
	}
	if code, ok := results.ErrorCode(err); ok {
		return string(code)
	}
	if code, ok := property.Code(err); ok {
		return string(code)
	}
	return err.Error()
}

func writeFrame(w io.Writer, payload []byte) error {
	buf := wire.NewWriter(4 + len(payload))
	buf.WriteU32(uint32(len(payload)))
	buf.WriteRaw(payload)
	_, err := w.Write(buf.Bytes())
	return err
}

func readFrame(r io.Reader) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	n, _ := wire.NewReader(hdr[:]).ReadU32()
	if n > maxFrame {
		return nil, fmt.Errorf("frame of %d bytes exceeds %d", n, maxFrame)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read frame body: %w", err)
	}
	return payload, nil
}
