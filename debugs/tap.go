package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/say2/logs"
	"github.com/reusee/say2/sayvm"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens a starlark REPL on stdin with globals bound.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := make(starlark.StringDict)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, mappings)
	}
}

// TapVM inspects the state a VM was left in, after a run or a failure.
type TapVM func(ctx context.Context, vm *sayvm.VM)

func (Module) TapVM(
	tap Tap,
) TapVM {
	return func(ctx context.Context, vm *sayvm.VM) {
		tap(ctx, "vm", VMGlobals(vm))
	}
}

func VMGlobals(vm *sayvm.VM) map[string]any {
	globals := map[string]any{
		"pc":       vm.PC(),
		"loops":    vm.Loops(),
		"executed": vm.Executed(),
	}
	if tape := vm.Tape(); tape != nil {
		globals["cells"] = tape.Cells()
		globals["cursor"] = tape.Cursor()
		globals["render"] = tape.String
	}
	if program := vm.Program(); program != nil {
		ops := make([]string, 0, program.Len())
		for _, instr := range program.Instructions {
			ops = append(ops, instr.Op.String())
		}
		globals["program"] = ops
	}
	return globals
}
