package driver

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"mirvm/internal/mir"
	"mirvm/internal/vm"
)

// Status classifies the outcome of one entry point.
type Status uint8

const (
	// StatusPassed means the result matched the recorded expectation.
	StatusPassed Status = iota
	// StatusMismatch means the result differed from the expectation.
	StatusMismatch
	// StatusFailed means the VM returned an error.
	StatusFailed
	// StatusNoExpectation means the function ran but had nothing to compare against.
	StatusNoExpectation
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusMismatch:
		return "mismatch"
	case StatusFailed:
		return "failed"
	case StatusNoExpectation:
		return "ran"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// Options configures RunEntryPoints.
type Options struct {
	Jobs int        // parallel entry points; <= 0 uses GOMAXPROCS
	VM   vm.Options // limits applied to every VM; Trace is ignored

	// Trace records an execution trace per entry point into Result.Trace.
	Trace bool

	// Func restricts the run to a single function by name, run attribute or not.
	Func string
	// Args are passed to Func. Entry points selected by attribute take none.
	Args []vm.Value
}

// Result is the outcome of one entry point.
type Result struct {
	Func        mir.FuncID
	Name        string
	Value       vm.Value
	Err         *vm.VMError
	Expected    string
	HasExpected bool
	Status      Status
	Duration    time.Duration
	Trace       string
}

// Failed reports whether the result counts against the exit status.
func (r *Result) Failed() bool {
	return r.Status == StatusMismatch || r.Status == StatusFailed
}

// EntryPoints returns the functions marked to run, ordered by id.
func EntryPoints(mod *mir.Module) []*mir.Func {
	var out []*mir.Func
	for _, f := range mod.Sorted() {
		if f.Attrs.Run {
			out = append(out, f)
		}
	}
	return out
}

// RunEntryPoints executes every entry point of mod, each on its own VM.
// Results keep the entry-point order regardless of completion order. A
// failing entry point is recorded in its Result and does not stop the
// others; only cancellation or a bad selection yields an error.
func RunEntryPoints(ctx context.Context, mod *mir.Module, opts Options) ([]Result, error) {
	if mod == nil {
		return nil, nil
	}

	targets := EntryPoints(mod)
	args := []vm.Value(nil)
	if opts.Func != "" {
		f, ok := mod.Lookup(opts.Func)
		if !ok {
			return nil, fmt.Errorf("function %q not found", opts.Func)
		}
		targets = []*mir.Func{f}
		args = opts.Args
	} else if len(opts.Args) > 0 {
		return nil, fmt.Errorf("arguments require a function selection")
	}
	if len(targets) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indices are unique per goroutine, so results need no lock.
	results := make([]Result, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(targets)))

	for i, f := range targets {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = runOne(mod, f, args, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(mod *mir.Module, f *mir.Func, args []vm.Value, opts Options) Result {
	res := Result{
		Func:        f.ID,
		Name:        f.Name,
		Expected:    f.Attrs.Expected,
		HasExpected: f.Attrs.HasExpected,
	}

	vmOpts := opts.VM
	vmOpts.Trace = nil
	var traceBuf bytes.Buffer
	if opts.Trace {
		vmOpts.Trace = vm.NewTracer(&traceBuf)
	}

	log.Debug("interpreting", "func", f.Name, "args", len(args))
	start := time.Now()
	machine := vm.New(mod, vmOpts)
	value, vmErr := machine.Run(f, args)
	res.Duration = time.Since(start)
	res.Trace = traceBuf.String()

	switch {
	case vmErr != nil:
		res.Err = vmErr
		res.Status = StatusFailed
		log.Debug("entry point failed", "func", f.Name, "code", vmErr.Code.String(), "err", vmErr.Message)
	case !res.HasExpected:
		res.Value = value
		res.Status = StatusNoExpectation
	case value.String() == strings.TrimSpace(res.Expected):
		res.Value = value
		res.Status = StatusPassed
	default:
		res.Value = value
		res.Status = StatusMismatch
	}
	log.Debug("entry point done", "func", f.Name, "status", res.Status.String(), "elapsed", res.Duration)
	return res
}
