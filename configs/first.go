package configs

import (
	"errors"
)

// First decodes the value at path, or returns the zero value if no file sets
// it. Other errors panic; call Loader.Err first to report them.
func First[T any](loader Loader, path string) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(err)
	}
	return value
}
