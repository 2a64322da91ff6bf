package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gvalue/internal/property"
)

// Layout names accepted by --layout.
const (
	LayoutTransport = "transport"
	LayoutStorage   = "storage"
)

// PropertyOutput describes a single property value.
type PropertyOutput struct {
	Type   string `json:"type"`
	Layout string `json:"layout,omitempty"`
	Hex    string `json:"hex,omitempty"`
	Text   string `json:"text"`
}

// NewPropCommand creates the prop command group.
func NewPropCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prop",
		Short: "Parse, render and transform property values",
	}
	cmd.AddCommand(newPropParseCommand(rootOpts))
	cmd.AddCommand(newPropRenderCommand(rootOpts))
	cmd.AddCommand(newPropTransformCommand(rootOpts))
	return cmd
}

func newPropParseCommand(rootOpts *RootOptions) *cobra.Command {
	var typeName, layout string

	cmd := &cobra.Command{
		Use:   "parse --type <type> <literal>",
		Short: "Parse a literal and print its layout bytes",
		Long: `Parse a text literal as the given type and print the value in the
transport or storage layout as hex.

Examples:
  gvalue prop parse --type int 42
  gvalue prop parse --type list_string --layout storage a,b`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPropParse(rootOpts, typeName, layout, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "data type (required)")
	cmd.Flags().StringVar(&layout, "layout", LayoutTransport, "byte layout (transport|storage)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runPropParse(opts *RootOptions, typeName, layout, text string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout())

	dt, err := property.ParseDataType(typeName)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --type", err)
	}
	if layout != LayoutTransport && layout != LayoutStorage {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid --layout %q: must be transport or storage", layout))
	}

	p := property.Parse(text, dt)
	if property.IsUnknown(p) {
		msg := fmt.Sprintf("%q is not a valid %s literal", text, dt)
		_ = formatter.Error("UNKNOWN", msg, nil)
		return NewExitError(ExitFailure, msg)
	}

	var data []byte
	if layout == LayoutStorage {
		data = property.ToVec(p)
	} else {
		data = property.ToBytes(p)
	}
	out := PropertyOutput{Type: dt.String(), Layout: layout, Hex: hex.EncodeToString(data), Text: property.Format(p)}
	return formatter.Success(out, out.Hex)
}

func newPropRenderCommand(rootOpts *RootOptions) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "render --type <type> <hex>",
		Short: "Render transport layout bytes as text",
		Long: `Decode hex bytes in the transport layout of the given type and print
the display text.

Example:
  gvalue prop render --type list_int 000000020000000100000002`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPropRender(rootOpts, typeName, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "data type (required)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runPropRender(opts *RootOptions, typeName, text string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout())

	dt, err := property.ParseDataType(typeName)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --type", err)
	}
	data, err := decodeHex(text)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid hex", err)
	}

	rendered, err := property.Render(data, dt)
	if err != nil {
		return propertyFailure(formatter, "render failed", err)
	}
	out := PropertyOutput{Type: dt.String(), Layout: LayoutTransport, Text: rendered}
	return formatter.Success(out, rendered)
}

func newPropTransformCommand(rootOpts *RootOptions) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "transform --from <type> --to <type> <literal>",
		Short: "Coerce a literal to another type",
		Long: `Parse a literal as --from, convert it to --to as the store does on
write, and print the converted value. Values that do not fit the target
type are rejected with DATA_ERROR.

Example:
  gvalue prop transform --from int --to float 123`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPropTransform(rootOpts, from, to, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source data type (required)")
	cmd.Flags().StringVar(&to, "to", "", "target data type (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runPropTransform(opts *RootOptions, from, to, text string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout())

	src, err := property.ParseDataType(from)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --from", err)
	}
	dst, err := property.ParseDataType(to)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --to", err)
	}

	stored, err := property.Transform(property.Parse(text, src), dst)
	if err != nil {
		return propertyFailure(formatter, "transform failed", err)
	}
	q, err := property.DecodeStorage(dst, stored)
	if err != nil {
		return propertyFailure(formatter, "transform failed", err)
	}
	rendered, err := property.Render(property.ToBytes(q), dst)
	if err != nil {
		return propertyFailure(formatter, "transform failed", err)
	}

	out := PropertyOutput{Type: dst.String(), Layout: LayoutStorage, Hex: hex.EncodeToString(stored), Text: rendered}
	return formatter.Success(out, rendered)
}

func propertyFailure(f *OutputFormatter, message string, err error) error {
	code, _ := property.Code(err)
	_ = f.Error(string(code), err.Error(), nil)
	return WrapExitError(ExitFailure, message, err)
}
