package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mirvm/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check <module.toml|module.mirb>...",
	Short: "Load and validate modules without running them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := false
		for _, path := range args {
			mod, err := loadChecked(path, nil)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				failed = true
				continue
			}
			fmt.Fprintf(out, "%s: ok, %d funcs, %d entry points\n", path, len(mod.Funcs), len(driver.EntryPoints(mod)))
		}
		if failed {
			return errReported
		}
		return nil
	},
}
