package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tsvwriter/plan"
)

func newPlanCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan <package> <type>",
		Short: "Print the plan tree of a struct type",
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

			switch format {
			case "yaml":
				data, err := plan.MarshalYAML(root)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err

			case "dump":
				_, err = fmt.Fprint(cmd.OutOrStdout(), plan.Dump(root))
				return err

			default:
				return fmt.Errorf("invalid format: %q (expected yaml or dump)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml|dump)")

	return cmd
}
