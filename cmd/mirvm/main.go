package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mirvm/internal/config"
	"mirvm/internal/logx"
	"mirvm/internal/prof"
	"mirvm/internal/version"
)

// errReported signals a failure whose details were already printed.
var errReported = errors.New("reported failure")

// projectConfig is loaded once by the root pre-run hook.
var projectConfig = config.Default()

var rootCmd = &cobra.Command{
	Use:               "mirvm",
	Short:             "MIR interpreter",
	Long:              `mirvm executes functions of a control-flow-graph IR module directly, without compiling them`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		return profiling.Stop()
	},
}

// profiling is started in setup and stopped after the command returns.
var profiling *prof.Session

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off), defaults to mirvm.toml or auto")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to mirvm.toml (default: search from the working directory up)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
}

func main() {
	err := rootCmd.Execute()
	if stopErr := profiling.Stop(); stopErr != nil {
		fmt.Fprintln(os.Stderr, "error:", stopErr)
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		projectConfig, err = config.LoadFile(configPath)
	} else {
		projectConfig, err = config.Load(".")
	}
	if err != nil {
		return err
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if colorFlag == "" {
		colorFlag = projectConfig.Output.Color
	}
	useColor, err := resolveColor(colorFlag, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	debug, err := cmd.Root().PersistentFlags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("failed to get debug flag: %w", err)
	}
	logx.Init(debug || projectConfig.Output.Debug, useColor && isTerminal(os.Stderr))

	profiling, err = startProfiling(cmd)
	return err
}

func resolveColor(mode string, tty bool) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return tty, nil
	default:
		return false, fmt.Errorf("invalid --color %q (must be auto, on or off)", mode)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
