package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gvalue/internal/entry"
	"github.com/roach88/gvalue/internal/metrics"
	"github.com/roach88/gvalue/internal/results"
)

// EncodedEntry is one entry of `entry encode` output.
type EncodedEntry struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Text  string `json:"text"`
	Hex   string `json:"hex"`
}

// DecodedEntry is the output of `entry decode`.
type DecodedEntry struct {
	Type string `json:"type"`
	Len  int    `json:"len"`
	Text string `json:"text"`
}

// NewEntryCommand creates the entry command group.
func NewEntryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Encode and decode result entries",
	}
	cmd.AddCommand(newEntryEncodeCommand(rootOpts))
	cmd.AddCommand(newEntryDecodeCommand(rootOpts))
	return cmd
}

func codecFor(opts *RootOptions) entry.Codec {
	return entry.Codec{
		MaxLen:   opts.cfg().Codec.MaxCollectionLen,
		Observer: metrics.CodecObserver{},
	}
}

func newEntryEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "encode -f <results.yaml>",
		Short: "Encode every entry of a result message",
		Long: `Convert each entry of a YAML or JSON result message into a runtime
entry and print its encoding as hex, one line per entry.

Example:
  gvalue entry encode -f results.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntryEncode(rootOpts, file, cmd)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "result message file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runEntryEncode(opts *RootOptions, file string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout())

	msg, err := results.LoadFile(file)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load result message", err)
	}

	codec := codecFor(opts)
	out := make([]EncodedEntry, 0, len(msg.Entries))
	lines := make([]string, 0, len(msg.Entries))
	for i := range msg.Entries {
		h, err := entry.FromResultEntry(&msg.Entries[i])
		if err != nil {
			code, _ := results.ErrorCode(err)
			_ = formatter.Error(string(code), fmt.Sprintf("entry %d: %v", i, err), nil)
			return WrapExitError(ExitFailure, fmt.Sprintf("entry %d cannot be converted", i), err)
		}
		data := codec.Marshal(h)
		slog.Debug("entry encoded", "index", i, "type", h.Type(), "bytes", len(data))
		out = append(out, EncodedEntry{Index: i, Type: h.Type().String(), Text: h.String(), Hex: hex.EncodeToString(data)})
		lines = append(lines, hex.EncodeToString(data))
	}

	return formatter.Success(out, strings.Join(lines, "\n"))
}

func newEntryDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode one encoded entry",
		Long: `Decode a hex-encoded entry and print its type, length and contents.

Example:
  gvalue entry decode 09`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntryDecode(rootOpts, args[0], cmd)
		},
	}
}

func runEntryDecode(opts *RootOptions, text string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout())

	data, err := decodeHex(text)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid hex", err)
	}

	h, err := codecFor(opts).Unmarshal(data)
	if err != nil {
		var pe *entry.ProtocolError
		code := "DECODE"
		if errors.As(err, &pe) {
			code = string(pe.Code)
		}
		_ = formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitFailure, "entry cannot be decoded", err)
	}

	out := DecodedEntry{Type: h.Type().String(), Len: h.Len(), Text: h.String()}
	return formatter.Success(out, fmt.Sprintf("%s (len %d): %s", out.Type, out.Len, out.Text))
}

// decodeHex accepts hex with optional whitespace between byte pairs.
func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.Join(strings.Fields(s), ""))
}
