package sayvm

import "errors"

var (
	ErrUnmatchedStartLoop = errors.New("unmatched start loop")
	ErrUnmatchedEndLoop   = errors.New("unmatched end loop")
	// ErrEndOfInstructions signals normal termination. Run never returns it.
	ErrEndOfInstructions = errors.New("end of instructions")
)
