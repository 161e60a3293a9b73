// Package testkit holds invariant checks shared by package tests.
package testkit

import (
	"fmt"

	"mirvm/internal/mir"
	"mirvm/internal/vm"
)

// CheckRunInvariants runs fn twice on machine and verifies:
// 1) the value and frame stacks are back to their pre-call sizes after each run
// 2) both runs agree, on the value or on the error code
//
// It returns the first result so callers can assert on it further.
func CheckRunInvariants(machine *vm.VM, fn *mir.Func, args []vm.Value) (vm.Value, *vm.VMError, error) {
	if machine == nil || fn == nil {
		return vm.Value{}, nil, fmt.Errorf("nil machine or function")
	}

	depth, values := machine.Depth(), len(machine.Values)
	check := func(run int) error {
		if machine.Depth() != depth {
			return fmt.Errorf("run %d: depth %d after return, want %d", run, machine.Depth(), depth)
		}
		if len(machine.Values) != values {
			return fmt.Errorf("run %d: value stack holds %d slots after return, want %d", run, len(machine.Values), values)
		}
		return nil
	}

	first, firstErr := machine.Run(fn, args)
	if err := check(1); err != nil {
		return first, firstErr, err
	}
	second, secondErr := machine.Run(fn, args)
	if err := check(2); err != nil {
		return first, firstErr, err
	}

	switch {
	case (firstErr == nil) != (secondErr == nil):
		return first, firstErr, fmt.Errorf("runs disagree: %v then %v", firstErr, secondErr)
	case firstErr != nil && firstErr.Code != secondErr.Code:
		return first, firstErr, fmt.Errorf("runs failed differently: %s then %s", firstErr.Code, secondErr.Code)
	case firstErr == nil && !first.Equal(second):
		return first, firstErr, fmt.Errorf("runs disagree: %s then %s", first, second)
	}
	return first, firstErr, nil
}
