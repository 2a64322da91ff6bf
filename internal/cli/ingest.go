package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gvalue/internal/ingest"
	"github.com/roach88/gvalue/internal/schema"
	"github.com/roach88/gvalue/internal/store"
)

// IngestOptions holds flags for the ingest command.
type IngestOptions struct {
	*RootOptions
	Schema     string
	Label      string
	Database   string
	SkipHeader bool
	BatchSize  int

	// IDs overrides the batch id generator (for testing).
	IDs ingest.BatchIDGenerator
}

// IngestResult is the output of the ingest command.
type IngestResult struct {
	Label   string   `json:"label"`
	Loaded  int      `json:"loaded"`
	Skipped int      `json:"skipped"`
	Batches []string `json:"batches"`
	Errors  []string `json:"errors,omitempty"`
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IngestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ingest --schema <schema.cue> --label <label> <data-file>",
		Short: "Bulk-load delimited rows into the property store",
		Long: `Load delimited text rows for one schema label into the property store.

Vertex rows are id followed by the label's properties in declaration order.
Edge rows are id, source id and destination id followed by the properties.
Rows whose values do not parse are skipped and reported.

Example:
  gvalue ingest --schema social.cue --label person people.csv
  gvalue ingest --schema social.cue --label knows --db graph.db knows.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "CUE schema file (required)")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label to load (required)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database (default from config)")
	cmd.Flags().BoolVar(&opts.SkipHeader, "skip-header", false, "skip the first row")
	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", 0, "rows per batch (default from config)")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}

func runIngest(opts *IngestOptions, dataFile string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout())
	cfg := opts.cfg()

	sc, err := schema.LoadFile(opts.Schema)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load schema", err)
	}
	if _, ok := sc.Label(opts.Label); !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("label %q is not in %s", opts.Label, opts.Schema))
	}

	f, err := os.Open(dataFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open data file", err)
	}
	defer f.Close()

	st, closeStore, err := openStore(opts.Database, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer closeStore()

	lopts := ingest.Options{
		Delimiter:    cfg.Delimiter(),
		NormalizeNFC: cfg.Ingest.NormalizeNFC,
		SkipHeader:   cfg.Ingest.SkipHeader,
		BatchSize:    cfg.Ingest.BatchSize,
		IDs:          opts.IDs,
	}
	if cmd.Flags().Changed("skip-header") {
		lopts.SkipHeader = opts.SkipHeader
	}
	if opts.BatchSize > 0 {
		lopts.BatchSize = opts.BatchSize
	}

	sum, err := ingest.NewLoader(st, sc, lopts).Load(commandContext(cmd), opts.Label, f, dataFile)
	if err != nil {
		return WrapExitError(ExitFailure, "ingest failed", err)
	}

	out := IngestResult{Label: sum.Label, Loaded: sum.Loaded, Skipped: sum.Skipped, Batches: sum.Batches}
	if out.Batches == nil {
		out.Batches = []string{}
	}
	for _, re := range sum.Errors {
		out.Errors = append(out.Errors, re.Error())
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Loaded %d %s rows (%d skipped, %d batches)", out.Loaded, out.Label, out.Skipped, len(out.Batches))
	for _, e := range out.Errors {
		fmt.Fprintf(&text, "\n  %s", e)
	}
	return formatter.Success(out, text.String())
}

// openStore opens the --db path, or the configured path when the flag is
// empty. The returned func closes the store and logs a close failure.
func openStore(flagPath, cfgPath string) (*store.Store, func(), error) {
	path := flagPath
	if path == "" {
		path = cfgPath
	}
	slog.Debug("opening store", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}
	return st, func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
