package sayvm

import "fmt"

// EOFPolicy decides what reading past the end of input does to the current cell.
type EOFPolicy uint8

const (
	// EOFZero stores 0
	EOFZero EOFPolicy = iota
	// EOFKeep leaves the cell unchanged
	EOFKeep
)

func (e EOFPolicy) String() string {
	switch e {
	case EOFZero:
		return "zero"
	case EOFKeep:
		return "keep"
	}
	return fmt.Sprintf("EOFPolicy(%d)", uint8(e))
}

func ParseEOFPolicy(str string) (EOFPolicy, error) {
	switch str {
	case "", "zero":
		return EOFZero, nil
	case "keep":
		return EOFKeep, nil
	}
	return 0, fmt.Errorf("unknown eof policy: %s", str)
}
