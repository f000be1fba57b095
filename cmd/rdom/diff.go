package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rdom/internal/errors"
	"github.com/vango-dev/rdom/pkg/dom"
	"github.com/vango-dev/rdom/pkg/vdom"
)

func diffCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Trace the host operations that patch one tree into another",
		Long: `Mount OLD into an in-memory document, patch it to NEW and print every
host operation the reconciler issues.

Trees are YAML or JSON documents:

  tag: ul
  children:
    - {tag: li, key: 1, text: one}
    - {tag: li, key: 2, text: two}

Examples:
  rdom diff before.yaml after.yaml
  rdom diff --format=json before.json after.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return errors.New(errors.CodeCLIUsage).
					WithDetailf("unknown format %q", format).
					WithSuggestion("Use --format=text or --format=json")
			}
			old, err := vdom.DecodeTreeFile(args[0])
			if err != nil {
				return err
			}
			next, err := vdom.DecodeTreeFile(args[1])
			if err != nil {
				return err
			}
			return writeTrace(cmd.OutOrStdout(), dom.Diff(old, next), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")

	return cmd
}

func writeTrace(w io.Writer, tr dom.Trace, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tr)
	}

	fmt.Fprintf(w, "before: %s\n", tr.Before)
	fmt.Fprintf(w, "after:  %s\n", tr.After)
	fmt.Fprintf(w, "ops (%d):\n", len(tr.Ops))
	for _, op := range tr.Ops {
		fmt.Fprintf(w, "  %s\n", op)
	}
	fmt.Fprintf(w, "mounted=%d unmounted=%d patched=%d moved=%d\n",
		tr.Stats.Mounted, tr.Stats.Unmounted, tr.Stats.Patched, tr.Stats.Moved)
	return nil
}
