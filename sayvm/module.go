package sayvm

import (
	"github.com/reusee/dscope"
	"github.com/reusee/say2/logs"
	"github.com/reusee/say2/sayconfigs"
)

type Module struct {
	dscope.Module
	Configs sayconfigs.Module
}

func (Module) Tracer(
	verbose sayconfigs.Verbose,
	mode sayconfigs.TraceMode,
	writer logs.Writer,
	logger logs.Logger,
) Tracer {
	if !verbose {
		return NopTracer{}
	}
	switch mode {
	case "log":
		return LogTracer{
			Logger: logger,
		}
	}
	return WriterTracer{
		W: writer,
	}
}

func (Module) EOFPolicy(
	eof sayconfigs.EOF,
	logger logs.Logger,
) EOFPolicy {
	policy, err := ParseEOFPolicy(string(eof))
	if err != nil {
		logger.Warn("bad eof policy, using zero",
			"eof", eof,
			"error", err,
		)
		return EOFZero
	}
	return policy
}

// NewVM builds a VM with the configured tracer and eof policy. Each VM logs
// under its own span, a child of any span in the WithContext context.
type NewVM func(options ...Option) *VM

func (Module) NewVM(
	logger logs.Logger,
	newSpan logs.NewSpan,
	tracer Tracer,
	eof EOFPolicy,
) NewVM {
	return func(options ...Option) *VM {
		vm := New(append([]Option{
			WithLogger(logger),
			WithTracer(tracer),
			WithEOF(eof),
		}, options...)...)
		vm.ctx, _ = newSpan(vm.ctx, vm.name)
		if t, ok := vm.tracer.(LogTracer); ok && t.Ctx == nil {
			t.Ctx = vm.ctx
			vm.tracer = t
		}
		return vm
	}
}
