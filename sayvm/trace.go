package sayvm

import (
	"context"
	"fmt"
	"io"

	"github.com/reusee/say2/logs"
	"github.com/reusee/say2/saylang"
	"github.com/reusee/say2/saytape"
)

type Phase uint8

const (
	PhaseNote Phase = iota
	PhaseBefore
	PhaseAfter
	// PhaseError ends a PhaseBefore whose instruction failed
	PhaseError
)

type Event struct {
	Phase   Phase
	PC      int
	Op      saylang.Op
	Message string
	Tape    *saytape.Tape
}

// Tracer observes execution. It must not change the VM state.
type Tracer interface {
	Emit(ev Event)
}

type NopTracer struct{}

var _ Tracer = NopTracer{}

func (NopTracer) Emit(Event) {}

// WriterTracer writes the classic verbose format:
//
//	.? move pointer forward => 	[0, [0]]
type WriterTracer struct {
	W io.Writer
}

var _ Tracer = WriterTracer{}

func (w WriterTracer) Emit(ev Event) {
	switch ev.Phase {
	case PhaseBefore:
		fmt.Fprintf(w.W, "%s %s", ev.Op, ev.Message)
	case PhaseAfter:
		fmt.Fprintf(w.W, " => \t%s\n", ev.Tape)
	case PhaseError:
		fmt.Fprintf(w.W, " => error: %s\n", ev.Message)
	case PhaseNote:
		fmt.Fprintf(w.W, "%s\n", ev.Message)
	}
}

type LogTracer struct {
	Logger logs.Logger
	Ctx    context.Context
}

var _ Tracer = LogTracer{}

func (l LogTracer) Emit(ev Event) {
	ctx := l.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	switch ev.Phase {
	case PhaseBefore:
		l.Logger.DebugContext(ctx, ev.Message,
			"pc", ev.PC,
			"op", ev.Op.String(),
		)
	case PhaseAfter:
		l.Logger.DebugContext(ctx, "tape",
			"pc", ev.PC,
			"op", ev.Op.String(),
			"tape", ev.Tape.String(),
		)
	case PhaseError:
		l.Logger.DebugContext(ctx, "instruction failed",
			"pc", ev.PC,
			"op", ev.Op.String(),
			"error", ev.Message,
		)
	case PhaseNote:
		l.Logger.DebugContext(ctx, ev.Message,
			"pc", ev.PC,
		)
	}
}
