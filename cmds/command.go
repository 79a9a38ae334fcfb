package cmds

import (
	"fmt"
	"reflect"
)

// Command is a flag like -v, or a flag taking one value like -file.
type Command struct {
	Func        reflect.Value
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

var errorType = reflect.TypeFor[error]()

// Func wraps fn, which takes zero or one argument and may return an error.
func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	fnType := fnValue.Type()
	if fnType.NumIn() > 1 {
		panic(fmt.Errorf("must take at most one argument, got %v", fnType))
	}
	switch fnType.NumOut() {
	case 0:
	case 1:
		if fnType.Out(0) != errorType {
			panic(fmt.Errorf("must return error, got %v", fnType))
		}
	default:
		panic(fmt.Errorf("must return 0 or 1 value, got %v", fnType))
	}

	return &Command{
		Func: fnValue,
	}
}
