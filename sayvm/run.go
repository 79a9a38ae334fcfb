package sayvm

import (
	"errors"
	"fmt"
	"io"

	"github.com/reusee/say2/logs"
	"github.com/reusee/say2/saylang"
)

// Run starts over from a fresh state and executes until the program is
// exhausted. Normal termination returns nil.
func (v *VM) Run() error {
	if err := v.Reset(); err != nil {
		return logs.WrapSpan(v.ctx, err)
	}
	v.logger.InfoContext(v.ctx, "run",
		"source", v.name,
		"instructions", v.program.Len(),
	)

	for _, err := range v.Steps {
		if err != nil {
			v.logger.ErrorContext(v.ctx, "run failed",
				"pc", v.pc,
				"executed", v.executed,
				"error", err,
			)
			return logs.WrapSpan(v.ctx, err)
		}
	}

	v.tracer.Emit(Event{
		Phase:   PhaseNote,
		PC:      v.pc,
		Message: "program finished",
		Tape:    v.tape,
	})
	v.logger.InfoContext(v.ctx, "finished",
		"executed", v.executed,
		"cells", v.tape.Len(),
	)
	return nil
}

// Steps executes one instruction per iteration. It stops silently at the end
// of the program and stops after yielding the first error.
func (v *VM) Steps(yield func(saylang.Instruction, error) bool) {
	for {
		instr, err := v.step()
		if errors.Is(err, ErrEndOfInstructions) {
			return
		}
		if !yield(instr, err) {
			return
		}
		if err != nil {
			return
		}
	}
}

// Step executes the instruction at pc. ErrEndOfInstructions is returned once
// the program is exhausted with no open loop.
func (v *VM) Step() error {
	_, err := v.step()
	return err
}

func (v *VM) step() (instr saylang.Instruction, err error) {
	if v.program == nil {
		if err := v.Reset(); err != nil {
			return instr, err
		}
	}

	if v.pc >= v.program.Len() {
		if n := len(v.loops); n > 0 {
			start := v.loops[n-1]
			instr = v.program.Instructions[start]
			return instr, saylang.WithPos(
				fmt.Errorf("%w: loop at pc %d is still open", ErrUnmatchedStartLoop, start),
				instr.Pos,
			)
		}
		return instr, ErrEndOfInstructions
	}

	pc := v.pc
	instr = v.program.Instructions[pc]
	v.tracer.Emit(Event{
		Phase:   PhaseBefore,
		PC:      pc,
		Op:      instr.Op,
		Message: instr.Op.Describe(),
		Tape:    v.tape,
	})

	note, err := v.exec(instr.Op)
	if err != nil {
		v.tracer.Emit(Event{
			Phase:   PhaseError,
			PC:      pc,
			Op:      instr.Op,
			Message: err.Error(),
			Tape:    v.tape,
		})
		return instr, saylang.WithPos(err, instr.Pos)
	}
	v.executed++

	v.tracer.Emit(Event{
		Phase: PhaseAfter,
		PC:    pc,
		Op:    instr.Op,
		Tape:  v.tape,
	})
	if note != "" {
		v.tracer.Emit(Event{
			Phase:   PhaseNote,
			PC:      pc,
			Op:      instr.Op,
			Message: note,
			Tape:    v.tape,
		})
	}

	v.pc++
	return instr, nil
}

func (v *VM) exec(op saylang.Op) (note string, err error) {
	switch op {

	case saylang.OpForward:
		v.tape.Forward()

	case saylang.OpBackward:
		return "", v.tape.Backward()

	case saylang.OpIncrement:
		v.tape.Increment()

	case saylang.OpDecrement:
		v.tape.Decrement()

	case saylang.OpRead:
		b, err := v.input.ReadByte()
		if err == io.EOF {
			if v.eof == EOFZero {
				v.tape.Put(0)
			}
			return "end of input", nil
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		v.tape.Put(b)

	case saylang.OpWrite:
		v.outBuf[0] = v.tape.Get()
		if _, err := v.output.Write(v.outBuf[:]); err != nil {
			return "", fmt.Errorf("write output: %w", err)
		}
		return fmt.Sprintf("wrote (%d)", v.outBuf[0]), nil

	case saylang.OpLoopStart:
		if v.tape.Get() == 0 {
			start := v.pc
			if err := v.skipLoop(); err != nil {
				v.pc = start
				return "", err
			}
			return fmt.Sprintf("loop skipped: %d", start), nil
		}
		v.loops = append(v.loops, v.pc)
		return fmt.Sprintf("loop entered: %d, loops: %v", v.pc, v.loops), nil

	case saylang.OpLoopEnd:
		n := len(v.loops)
		if n == 0 {
			return "", ErrUnmatchedEndLoop
		}
		if v.tape.Get() != 0 {
			// the following pc increment lands on the first body instruction
			v.pc = v.loops[n-1]
		} else {
			v.loops = v.loops[:n-1]
		}

	default:
		return "", fmt.Errorf("invalid instruction: %v", op)
	}

	return "", nil
}

// skipLoop leaves pc on the matching loop end.
func (v *VM) skipLoop() error {
	nesting := 1
	for {
		v.pc++
		if v.pc >= v.program.Len() {
			return ErrUnmatchedStartLoop
		}
		switch v.program.Instructions[v.pc].Op {
		case saylang.OpLoopEnd:
			nesting--
			if nesting == 0 {
				return nil
			}
		case saylang.OpLoopStart:
			nesting++
		}
	}
}
