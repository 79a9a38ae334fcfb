package saytape

import (
	"errors"
	"strconv"
	"strings"
)

var ErrTapeUnderflow = errors.New("tape underflow: cursor already at the first cell")

// Tape grows to the right only. Cells are bytes and wrap on overflow.
type Tape struct {
	cells  []byte
	cursor int
}

func New() *Tape {
	return &Tape{
		cells: make([]byte, 1, 64),
	}
}

func (t *Tape) Forward() {
	t.cursor++
	if t.cursor == len(t.cells) {
		t.cells = append(t.cells, 0)
	}
}

func (t *Tape) Backward() error {
	if t.cursor == 0 {
		return ErrTapeUnderflow
	}
	t.cursor--
	return nil
}

func (t *Tape) Increment() {
	t.cells[t.cursor]++
}

func (t *Tape) Decrement() {
	t.cells[t.cursor]--
}

func (t *Tape) Put(b byte) {
	t.cells[t.cursor] = b
}

func (t *Tape) Get() byte {
	return t.cells[t.cursor]
}

func (t *Tape) Cursor() int {
	return t.cursor
}

func (t *Tape) Len() int {
	return len(t.cells)
}

func (t *Tape) Cells() []byte {
	ret := make([]byte, len(t.cells))
	copy(ret, t.cells)
	return ret
}

// String renders all cells with the current one bracketed, e.g. [0, [1], 2]
func (t *Tape) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, cell := range t.cells {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i == t.cursor {
			sb.WriteString("[")
		}
		sb.WriteString(strconv.Itoa(int(cell)))
		if i == t.cursor {
			sb.WriteString("]")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
