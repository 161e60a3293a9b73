package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"mirvm/internal/driver"
	"mirvm/internal/mir"
	"mirvm/internal/mirfile"
	"mirvm/internal/observ"
	"mirvm/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <module.toml|module.mirb>",
	Short: "Interpret the entry points of a module",
	Long: `Run every function marked run = true and compare its result with the
recorded expectation. With --func a single function is run instead, taking
its arguments from --arg.`,
	Args: cobra.ExactArgs(1),
	RunE: runModule,
}

func init() {
	runCmd.Flags().Bool("trace", false, "print an execution trace for each entry point")
	runCmd.Flags().Int("max-depth", 0, "maximum number of live frames (0 = unbounded)")
	runCmd.Flags().Int("max-steps", 0, "maximum statements and terminators per entry point (0 = unbounded)")
	runCmd.Flags().Int("jobs", 0, "entry points run in parallel (0 = from config)")
	runCmd.Flags().String("func", "", "run only the named function")
	runCmd.Flags().StringArray("arg", nil, "argument for --func (integer or true/false), repeatable")
	runCmd.Flags().Bool("summary", false, "print a status table after the results")
	runCmd.Flags().Bool("timings", false, "print load, validate and run timings to stderr")
}

func runModule(cmd *cobra.Command, args []string) error {
	opts, err := runOptions(cmd)
	if err != nil {
		return err
	}
	summary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return fmt.Errorf("failed to get summary flag: %w", err)
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
		defer func() {
			if err := timer.WriteSummary(cmd.ErrOrStderr()); err != nil {
				log.Warn("failed to print timings", "err", err)
			}
		}()
	}

	mod, err := loadChecked(args[0], timer)
	if err != nil {
		return err
	}

	log.Debug("running module", "path", args[0], "jobs", opts.Jobs, "max_depth", opts.VM.MaxDepth, "max_steps", opts.VM.MaxSteps)
	endRun := timer.Begin("run")
	results, err := driver.RunEntryPoints(cmd.Context(), mod, opts)
	if err != nil {
		endRun("cancelled")
		return err
	}
	endRun(fmt.Sprintf("%d entry points", len(results)))
	if len(results) == 0 {
		log.Warn("module has no entry points", "path", args[0])
		return nil
	}

	out := cmd.OutOrStdout()
	if err := driver.WriteReport(out, results); err != nil {
		return err
	}
	if summary {
		if err := driver.WriteSummary(out, results); err != nil {
			return err
		}
	}
	if !driver.Summarize(results).OK() {
		return errReported
	}
	return nil
}

// runOptions merges mirvm.toml defaults with explicitly set flags.
func runOptions(cmd *cobra.Command) (driver.Options, error) {
	cfg := projectConfig.Run
	opts := driver.Options{
		Jobs:  cfg.Jobs,
		Trace: cfg.Trace,
		VM: vm.Options{
			MaxDepth: cfg.MaxDepth,
			MaxSteps: cfg.MaxSteps,
		},
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("trace") {
		if opts.Trace, err = flags.GetBool("trace"); err != nil {
			return opts, fmt.Errorf("failed to get trace flag: %w", err)
		}
	}
	if flags.Changed("max-depth") {
		if opts.VM.MaxDepth, err = flags.GetInt("max-depth"); err != nil {
			return opts, fmt.Errorf("failed to get max-depth flag: %w", err)
		}
	}
	if flags.Changed("max-steps") {
		if opts.VM.MaxSteps, err = flags.GetInt("max-steps"); err != nil {
			return opts, fmt.Errorf("failed to get max-steps flag: %w", err)
		}
	}
	if flags.Changed("jobs") {
		if opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if opts.VM.MaxDepth < 0 || opts.VM.MaxSteps < 0 {
		return opts, fmt.Errorf("--max-depth and --max-steps must be >= 0")
	}

	if opts.Func, err = flags.GetString("func"); err != nil {
		return opts, fmt.Errorf("failed to get func flag: %w", err)
	}
	rawArgs, err := flags.GetStringArray("arg")
	if err != nil {
		return opts, fmt.Errorf("failed to get arg flag: %w", err)
	}
	for _, raw := range rawArgs {
		v, err := parseArg(raw)
		if err != nil {
			return opts, err
		}
		opts.Args = append(opts.Args, v)
	}
	return opts, nil
}

func parseArg(raw string) (vm.Value, error) {
	switch raw {
	case "true":
		return vm.MakeBool(true), nil
	case "false":
		return vm.MakeBool(false), nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return vm.Value{}, fmt.Errorf("invalid --arg %q: want an integer or true/false", raw)
	}
	return vm.MakeInt(n), nil
}

// loadChecked reads a module and validates every function body. A nil
// timer records nothing.
func loadChecked(path string, timer *observ.Timer) (*mir.Module, error) {
	endLoad := timer.Begin("load")
	mod, err := mirfile.Load(path)
	if err != nil {
		endLoad("failed")
		return nil, err
	}
	endLoad(path)

	endValidate := timer.Begin("validate")
	defer endValidate("")
	if err := mir.Validate(mod); err != nil {
		return nil, fmt.Errorf("%s: invalid module:\n%w", path, err)
	}
	return mod, nil
}
