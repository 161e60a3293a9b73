package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"mirvm/internal/mirfile"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <module.toml>",
	Short: "Convert a module to the binary .mirb form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cmd.Flags().GetString("output")
		if err != nil {
			return fmt.Errorf("failed to get output flag: %w", err)
		}
		if out == "" {
			out = mirfile.OutputPath(args[0])
		}
		if out == args[0] {
			return fmt.Errorf("output path %q would overwrite the input", out)
		}

		mod, err := loadChecked(args[0], nil)
		if err != nil {
			return err
		}
		if err := mirfile.WriteBinary(out, mod); err != nil {
			return err
		}
		log.Debug("wrote module", "path", out, "funcs", len(mod.Funcs))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d funcs)\n", out, len(mod.Funcs))
		return nil
	},
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "output file (default: input with .mirb extension)")
}
