package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mill/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run the pipeline, or only the named tasks and their upstream dependencies",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			return c.app.Run(cmd.Context(), args, app.RunOptions{
				NoCache: noCache,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the memoization store and force execution")
	return cmd
}
