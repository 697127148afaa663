package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/repoprep/internal/writability"
)

// ProbeCmd implements the 'probe' command.
type ProbeCmd struct {
	Path string `arg:"" help:"Path to check"`
}

func (p *ProbeCmd) Run(g *Global) error {
	path, err := filepath.Abs(p.Path)
	if err != nil {
		return err
	}
	if (writability.AccessProber{}).Writable(path) {
		_, err = fmt.Fprintln(g.Stdout, "writable")
		return err
	}
	g.ExitCode = 1
	_, err = fmt.Fprintln(g.Stdout, "not writable")
	return err
}
