package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rdom/internal/errors"
	"github.com/vango-dev/rdom/pkg/vdom"
)

func lisCmd() *cobra.Command {
	var values bool

	cmd := &cobra.Command{
		Use:   "lis N...",
		Short: "Print a longest increasing subsequence",
		Long: `Print the indices of a longest strictly increasing subsequence of the
given integers. -1 marks a slot without a source and is skipped, as in
the keyed diff's source array. Put -- before a list containing negative
numbers so they are not read as flags.

Examples:
  rdom lis 1 3 0 2
  rdom lis --values -- 4 2 3 -1 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := make([]int, len(args))
			for i, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return errors.New(errors.CodeCLIUsage).WithDetailf("%q is not an integer", a)
				}
				seq[i] = n
			}

			idx := vdom.LIS(seq)
			out := make([]string, len(idx))
			for i, j := range idx {
				if values {
					out[i] = strconv.Itoa(seq[j])
				} else {
					out[i] = strconv.Itoa(j)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&values, "values", "v", false, "Print values instead of indices")

	return cmd
}
