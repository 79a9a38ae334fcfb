package cmds

import (
	"fmt"
	"slices"
	"strings"
)

// Var defines name to set the value and name+"." to reset it.
func Var[T any](name string, desc string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}).Desc(desc))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}).Desc("reset "+name))
	return &value
}

// Choice is a Var that rejects values outside choices.
func Choice[T ~string](name string, desc string, choices ...T) *T {
	var value T
	Define(name, Func(func(v T) error {
		if !slices.Contains(choices, v) {
			return fmt.Errorf("bad value %q, expecting one of %s", v, joinChoices(choices))
		}
		value = v
		return nil
	}).Desc(desc+", one of "+joinChoices(choices)))
	Define(name+".", Func(func() {
		value = ""
	}).Desc("reset "+name))
	return &value
}

func joinChoices[T ~string](choices []T) string {
	strs := make([]string, 0, len(choices))
	for _, c := range choices {
		strs = append(strs, string(c))
	}
	return strings.Join(strs, "|")
}

// Switch defines name to turn on and "!"+name to turn off.
func Switch(name string, desc string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}).Desc(desc))
	Define("!"+name, Func(func() {
		value = false
	}).Desc("turn off "+name))
	return &value
}

func Collect[T any](name string, desc string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}).Desc(desc))
	return &value
}
