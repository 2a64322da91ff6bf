package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gvalue/internal/entry"
	"github.com/roach88/gvalue/internal/property"
	"github.com/roach88/gvalue/internal/schema"
	"github.com/roach88/gvalue/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Schema   string
	Label    string
	Database string
}

// ShownProperty is one stored property in show output.
type ShownProperty struct {
	Name string `json:"name"`
	ID   int32  `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// ShowResult is the output of the show command.
type ShowResult struct {
	Type       string          `json:"type"`
	Text       string          `json:"text"`
	Hex        string          `json:"hex"`
	Properties []ShownProperty `json:"properties"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show --schema <schema.cue> --label <label> <id>",
		Short: "Show a stored vertex or edge as an entry",
		Long: `Load a stored element with its properties, print it as a runtime entry
and its encoding, and list each property with its declared name.

Example:
  gvalue show --schema social.cue --label person 1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "CUE schema file (required)")
	cmd.Flags().StringVar(&opts.Label, "label", "", "element label (required)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database (default from config)")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}

func runShow(opts *ShowOptions, idText string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout())
	ctx := commandContext(cmd)

	id, err := strconv.ParseUint(idText, 10, 64)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid element id", err)
	}
	sc, err := schema.LoadFile(opts.Schema)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load schema", err)
	}
	lb, ok := sc.Label(opts.Label)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("label %q is not in %s", opts.Label, opts.Schema))
	}

	st, closeStore, err := openStore(opts.Database, opts.cfg().Store.Path)
	if err != nil {
		return err
	}
	defer closeStore()

	key := store.ElementKey{Label: lb.ID, ID: id}
	var h entry.Handle
	if lb.Kind == schema.KindEdge {
		e, err := st.LoadEdge(ctx, key)
		if err != nil {
			return showFailure(formatter, err)
		}
		h = entry.NewEdge(e)
	} else {
		v, err := st.LoadVertex(ctx, key)
		if err != nil {
			return showFailure(formatter, err)
		}
		h = entry.NewVertex(v)
	}

	stored, err := st.ReadProperties(ctx, key)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read properties", err)
	}

	out := ShowResult{
		Type:       h.Type().String(),
		Text:       h.String(),
		Hex:        hex.EncodeToString(codecFor(opts.RootOptions).Marshal(h)),
		Properties: make([]ShownProperty, 0, len(stored)),
	}
	for _, sp := range stored {
		name := "#" + strconv.Itoa(int(sp.PropID))
		if def, ok := lb.PropertyByID(sp.PropID); ok {
			name = def.Name
		}
		text, err := property.Render(property.ToBytes(sp.Value), sp.Type)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to render property "+name, err)
		}
		out.Properties = append(out.Properties, ShownProperty{Name: name, ID: sp.PropID, Type: sp.Type.String(), Text: text})
	}

	var text strings.Builder
	fmt.Fprintf(&text, "%s\n%s", out.Text, out.Hex)
	for _, p := range out.Properties {
		fmt.Fprintf(&text, "\n  %s (%s) = %s", p.Name, p.Type, p.Text)
	}
	return formatter.Success(out, text.String())
}

func showFailure(f *OutputFormatter, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		_ = f.Error("NOT_FOUND", err.Error(), nil)
		return WrapExitError(ExitFailure, "element not found", err)
	}
	return WrapExitError(ExitFailure, "failed to load element", err)
}
