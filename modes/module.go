package modes

import "github.com/reusee/dscope"

// Module provides the Mode. The logger writes to the systemd journal only in
// production.
type Module struct {
	dscope.Module
	mode Mode
}

func ForProduction() Module {
	return Module{
		mode: ModeProduction,
	}
}

func ForTest() Module {
	return Module{
		mode: ModeDevelopment,
	}
}

func (m Module) Mode() Mode {
	return m.mode
}
