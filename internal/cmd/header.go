package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHeaderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "header <package> <type>",
		Short: "Print the header line a struct type exports",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}

			root, err := s.buildPlan(opts.dir, args[0], args[1])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.emitter.Header(root))
			return err
		},
	}
}
