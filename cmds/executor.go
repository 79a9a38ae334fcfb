package cmds

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/reusee/say2/vars"
)

type Executor struct {
	commands   map[string]*Command
	positional func(arg string) error
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}
	ret.Define("-h", Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("-help", "--help"))
	return ret
}

// Positional handles arguments that name no command, like a source file path.
func (p *Executor) Positional(fn func(arg string) error) {
	p.positional = fn
}

func (p *Executor) Define(name string, command *Command) {
	for _, n := range append([]string{name}, command.Aliases...) {
		if _, ok := p.commands[n]; ok {
			panic(fmt.Errorf("duplicated command %s", n))
		}
		p.commands[n] = command
	}
}

func (p *Executor) Execute(args []string) error {
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		args = args[1:]

		command, ok := p.commands[name]
		if !ok {
			if p.positional == nil || strings.HasPrefix(name, "-") {
				return fmt.Errorf("unknown command: %s", name)
			}
			if err := p.positional(name); err != nil {
				return err
			}
			continue
		}

		var callArgs []reflect.Value
		if command.Func.Type().NumIn() == 1 {
			if len(args) == 0 {
				return fmt.Errorf("%s: expecting argument, got nothing", name)
			}
			value, err := parseArg(command.Func.Type().In(0), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			args = args[1:]
			callArgs = append(callArgs, value)
		}

		rets := command.Func.Call(callArgs)
		if len(rets) > 0 {
			if err, _ := rets[0].Interface().(error); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

func parseArg(t reflect.Type, str string) (reflect.Value, error) {
	ret := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		ret.SetString(str)
	case reflect.Bool:
		ret.SetBool(vars.StrToBool(str))
	default:
		return ret, fmt.Errorf("unsupported type: %v", t)
	}
	return ret, nil
}
