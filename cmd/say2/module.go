package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/say2/debugs"
	"github.com/reusee/say2/sayvm"
)

type Module struct {
	dscope.Module
	VM     sayvm.Module
	Debugs debugs.Module
}
