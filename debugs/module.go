package debugs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/say2/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
