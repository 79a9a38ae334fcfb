package saylang

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOddTokenCount  = errors.New("odd number of say2s")
	ErrUnknownPairing = errors.New("unknown pairing")
)

// PosError locates Err in a source. Its message quotes the offending line
// with a caret under Pos.Column.
type PosError struct {
	Err error
	Pos Pos
}

func (p PosError) Error() string {
	if p.Pos.Source == nil {
		return p.Err.Error()
	}
	msg := fmt.Sprintf("%v at %s:%d:%d\n", p.Err, p.Pos.Source.Name, p.Pos.Line, p.Pos.Column)
	lines := p.Pos.Source.Lines
	if p.Pos.Line < 1 || p.Pos.Line > len(lines) {
		return msg
	}
	line := lines[p.Pos.Line-1]
	return msg + line + "\n" + caret(line, p.Pos.Column) + "\n"
}

// caret pads to column, counted in runes from 1. Tabs are kept so the caret
// lines up under the same tab stops.
func caret(line string, column int) string {
	var sb strings.Builder
	n := 1
	for _, r := range line {
		if n >= column {
			break
		}
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
		n++
	}
	sb.WriteRune('^')
	return sb.String()
}

func (p PosError) Unwrap() error {
	return p.Err
}

// WithPos attaches pos to err unless err is already located.
func WithPos(err error, pos Pos) error {
	if err == nil {
		return nil
	}
	var located PosError
	if errors.As(err, &located) {
		return err
	}
	return PosError{
		Err: err,
		Pos: pos,
	}
}
