package sayconfigs

import (
	"github.com/reusee/say2/cmds"
	"github.com/reusee/say2/configs"
	"github.com/reusee/say2/vars"
)

// Verbose enables instruction tracing.
type Verbose bool

var verboseFlag = cmds.Switch("-v", "trace every executed instruction")

func (Module) Verbose(
	loader configs.Loader,
) Verbose {
	if *verboseFlag {
		return true
	}
	return Verbose(configs.First[bool](loader, "verbose"))
}

// EOF is the end of input policy name, "zero" or "keep".
type EOF string

var eofFlag = cmds.Choice[EOF]("-eof", "end of input policy", "zero", "keep")

func (Module) EOF(
	loader configs.Loader,
) EOF {
	return vars.FirstNonZero(
		*eofFlag,
		EOF(configs.First[string](loader, "eof")),
		"zero",
	)
}

// TraceMode selects the trace sink, "text" for the classic stderr format
// or "log" for debug log records.
type TraceMode string

var traceFlag = cmds.Choice[TraceMode]("-trace", "trace sink", "text", "log")

func (Module) TraceMode(
	loader configs.Loader,
) TraceMode {
	return vars.FirstNonZero(
		*traceFlag,
		TraceMode(configs.First[string](loader, "trace")),
		"text",
	)
}
