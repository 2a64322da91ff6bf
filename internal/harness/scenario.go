package harness

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gvalue/internal/property"
	"github.com/roach88/gvalue/internal/results"
)

// Scenario is a sequence of codec and property steps with assertions over
// the resulting trace.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// MaxLen bounds decoded lengths on the receiving side. Zero uses the
	// codec default.
	MaxLen int `yaml:"max_len,omitempty"`

	// Steps run in order. Each step sets exactly one of Send, Raw or Property.
	Steps []Step `yaml:"steps"`

	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one unit of a scenario.
type Step struct {
	// Send is a result entry to convert, encode and ship.
	Send *results.Entry `yaml:"send,omitempty"`

	// Raw is hex-encoded bytes shipped as a frame without encoding.
	Raw string `yaml:"raw,omitempty"`

	// Property parses a literal and reports its layout.
	Property *PropertyStep `yaml:"property,omitempty"`

	// Expect, if set, is checked against the step's trace event.
	Expect *Expect `yaml:"expect,omitempty"`
}

// PropertyStep parses Text as Type. If Transform is set the value is also
// coerced to that type.
type PropertyStep struct {
	Text      string `yaml:"text"`
	Type      string `yaml:"type"`
	Transform string `yaml:"transform,omitempty"`
}

// Expect is a subset match on a trace event: only set fields are compared.
type Expect struct {
	// Type is the entry type name, or the property type name.
	Type string `yaml:"type,omitempty"`

	Len *int `yaml:"len,omitempty"`

	// Error is an error code such as TRUNCATED or DATA_ERROR.
	Error string `yaml:"error,omitempty"`

	// Text is the received entry's string form, or the rendered property.
	Text string `yaml:"text,omitempty"`
}

// Assertion validates the trace as a whole.
type Assertion struct {
	// Type is one of decoded_count, error_count, type_order, roundtrip_equal.
	Type string `yaml:"type"`

	// Count is used by decoded_count and error_count.
	Count int `yaml:"count,omitempty"`

	// Types is used by type_order.
	Types []string `yaml:"types,omitempty"`
}

// Assertion type constants.
const (
	AssertDecodedCount   = "decoded_count"
	AssertErrorCount     = "error_count"
	AssertTypeOrder      = "type_order"
	AssertRoundTripEqual = "roundtrip_equal"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so that typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.MaxLen < 0 {
		return fmt.Errorf("max_len must not be negative")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		set := 0
		if step.Send != nil {
			set++
		}
		if step.Raw != "" {
			set++
			if _, err := hex.DecodeString(step.Raw); err != nil {
				return fmt.Errorf("step %d: raw is not hex: %w", i, err)
			}
		}
		if step.Property != nil {
			set++
			if _, err := property.ParseDataType(step.Property.Type); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			if t := step.Property.Transform; t != "" {
				if _, err := property.ParseDataType(t); err != nil {
					return fmt.Errorf("step %d: transform: %w", i, err)
				}
			}
		}
		if set != 1 {
			return fmt.Errorf("step %d: exactly one of send, raw or property is required", i)
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertDecodedCount, AssertErrorCount:
			if a.Count < 0 {
				return fmt.Errorf("assertion %d: count must not be negative", i)
			}
		case AssertTypeOrder:
			if len(a.Types) == 0 {
				return fmt.Errorf("assertion %d: type_order requires types", i)
			}
		case AssertRoundTripEqual:
		default:
			return fmt.Errorf("assertion %d: unknown type %q", i, a.Type)
		}
	}
	return nil
}
