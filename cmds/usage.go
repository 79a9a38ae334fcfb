package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	var names []string
	for name, command := range p.commands {
		if slices.Contains(command.Aliases, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		writeCommandUsage(w, name, p.commands[name])
	}
}

func writeCommandUsage(w io.Writer, name string, command *Command) {
	line := name
	if len(command.Aliases) > 0 {
		line += " (" + strings.Join(command.Aliases, ", ") + ")"
	}
	if command.Description != "" {
		line += "\t" + command.Description
	}
	fmt.Fprintln(w, line)
}
