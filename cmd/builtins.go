package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cmdstream/cmdstream/core/vcmd"
)

// builtinsCmd lists the virtual commands the engine handles in-process.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List the virtual commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := vcmd.Default().Names()
		sort.Strings(names)

		for _, v := range names {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
