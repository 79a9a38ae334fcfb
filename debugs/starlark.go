package debugs

import (
	"fmt"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// toStarlarkValue converts the values VMGlobals binds.
func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {
	case nil:
		return starlark.None
	case starlark.Value:
		return v
	case bool:
		return starlark.Bool(v)
	case int:
		return starlark.MakeInt(v)
	case string:
		return starlark.String(v)
	case []byte:
		// tape cells
		return starlark.Bytes(v)
	case []int:
		// loop stack
		elems := make([]starlark.Value, 0, len(v))
		for _, i := range v {
			elems = append(elems, starlark.MakeInt(i))
		}
		return starlark.NewList(elems)
	case []string:
		// program ops
		elems := make([]starlark.Value, 0, len(v))
		for _, s := range v {
			elems = append(elems, starlark.String(s))
		}
		return starlark.NewList(elems)
	case func() string:
		return starlarkutil.MakeFunc("", v)
	}
	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}
