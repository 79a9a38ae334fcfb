package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reusee/dscope"
	"github.com/reusee/say2/cmds"
	"github.com/reusee/say2/configs"
	"github.com/reusee/say2/debugs"
	"github.com/reusee/say2/logs"
	"github.com/reusee/say2/modes"
	"github.com/reusee/say2/sayvm"
)

const Version = "0.1.3-say"

var (
	fileFlag = cmds.Var[string]("-file", "source file to run")
	tapFlag  = cmds.Switch("-tap", "open a starlark prompt over the final state")
)

func init() {
	cmds.Positional(func(arg string) error {
		if *fileFlag != "" {
			// any argument after the file turns on tracing
			return cmds.GlobalExecutor.Execute([]string{"-v"})
		}
		*fileFlag = arg
		return nil
	})
}

func main() {
	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)
	os.Exit(run(scope, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Say2 interpreter %s\n\nUsage: %s <file> [-v | any second argument]\n\n", Version, filepath.Base(os.Args[0]))
	cmds.GlobalExecutor.WriteUsage(w)
}

func run(
	scope dscope.Scope,
	args []string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) (code int) {
	if len(args) == 0 {
		usage(stderr)
		return 0
	}

	if err := cmds.GlobalExecutor.Execute(args); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *fileFlag == "" {
		fmt.Fprintln(stderr, "Error: a source file is required")
		usage(stderr)
		return 1
	}

	content, err := os.ReadFile(*fileFlag)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	scope = scope.Fork(
		func() logs.Writer {
			return stderr
		},
	)

	scope.Call(func(
		loader configs.Loader,
	) {
		err = loader.Err()
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	scope.Call(func(
		newVM sayvm.NewVM,
		tapVM debugs.TapVM,
	) {
		vm := newVM(
			sayvm.WithSource(*fileFlag, string(content)),
			sayvm.WithInput(stdin),
			sayvm.WithOutput(stdout),
		)
		err := vm.Run()
		if *tapFlag {
			tapVM(context.Background(), vm)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Execution halted: %v\n", err)
			code = 1
		}
	})

	return
}
