package sayvm

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/reusee/say2/logs"
	"github.com/reusee/say2/saylang"
	"github.com/reusee/say2/saytape"
)

type VM struct {
	name    string
	content string

	program *saylang.Program
	tape    *saytape.Tape
	pc      int
	loops   []int

	executed int

	input  io.ByteReader
	output io.Writer
	outBuf [1]byte
	eof    EOFPolicy

	tracer Tracer
	logger logs.Logger
	ctx    context.Context
}

type Option func(*VM)

func WithSource(name string, content string) Option {
	return func(v *VM) {
		v.name = name
		v.content = content
	}
}

func WithInput(r io.Reader) Option {
	return func(v *VM) {
		if br, ok := r.(io.ByteReader); ok {
			v.input = br
		} else {
			v.input = bufio.NewReader(r)
		}
	}
}

func WithOutput(w io.Writer) Option {
	return func(v *VM) {
		v.output = w
	}
}

func WithTracer(tracer Tracer) Option {
	return func(v *VM) {
		if tracer == nil {
			tracer = NopTracer{}
		}
		v.tracer = tracer
	}
}

func WithLogger(logger logs.Logger) Option {
	return func(v *VM) {
		v.logger = logger
	}
}

func WithEOF(policy EOFPolicy) Option {
	return func(v *VM) {
		v.eof = policy
	}
}

func WithContext(ctx context.Context) Option {
	return func(v *VM) {
		v.ctx = ctx
	}
}

func New(options ...Option) *VM {
	v := &VM{
		output: os.Stdout,
		tracer: NopTracer{},
		logger: slog.New(slog.DiscardHandler),
		ctx:    context.Background(),
	}
	for _, option := range options {
		option(v)
	}
	if v.input == nil {
		WithInput(os.Stdin)(v)
	}
	return v
}

// Load replaces the current source and resets the VM.
func (v *VM) Load(name string, content string) error {
	v.name = name
	v.content = content
	return v.Reset()
}

// Reset re-tokenizes the current source and starts over with a fresh tape.
// On a load error no tape is allocated.
func (v *VM) Reset() error {
	v.program = nil
	v.tape = nil
	v.pc = 0
	v.loops = v.loops[:0]
	v.executed = 0

	program, err := saylang.Parse(v.name, v.content)
	if err != nil {
		v.logger.ErrorContext(v.ctx, "load failed",
			"source", v.name,
			"error", err,
		)
		return err
	}

	v.program = program
	v.tape = saytape.New()
	v.tracer.Emit(Event{
		Phase:   PhaseNote,
		Message: "starting clean memory",
		Tape:    v.tape,
	})
	v.logger.DebugContext(v.ctx, "loaded",
		"source", v.name,
		"instructions", program.Len(),
	)
	return nil
}

func (v *VM) Tape() *saytape.Tape {
	return v.tape
}

func (v *VM) PC() int {
	return v.pc
}

// Loops returns a copy of the loop stack, bottom first.
func (v *VM) Loops() []int {
	ret := make([]int, len(v.loops))
	copy(ret, v.loops)
	return ret
}

func (v *VM) Program() *saylang.Program {
	return v.program
}

func (v *VM) Executed() int {
	return v.executed
}
