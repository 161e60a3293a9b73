package main

import (
	"github.com/spf13/cobra"

	"mirvm/internal/mir"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <module.toml|module.mirb>",
	Short: "Print a module in textual form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		attrs, err := cmd.Flags().GetBool("attrs")
		if err != nil {
			return err
		}
		mod, err := loadChecked(args[0], nil)
		if err != nil {
			return err
		}
		return mir.DumpModule(cmd.OutOrStdout(), mod, mir.DumpOptions{Attrs: attrs})
	},
}

func init() {
	dumpCmd.Flags().Bool("attrs", true, "show run and expected attributes")
}
