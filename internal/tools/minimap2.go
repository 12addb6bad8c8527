// Package tools wraps the external binaries the pipeline sequences.
// Each wrapper is a declarative parameter struct; BuildCommand turns it
// into an exec.Cmd without running anything.
package tools

import (
	"errors"
	"os/exec"

	"github.com/biogo/external"
)

// ErrMissingRequired is returned by a BuildCommand whose wrapper is
// missing a required argument.
var ErrMissingRequired = errors.New("tools: missing required argument")

// Minimap2 defines parameters for the minimap2 long-read aligner.
// The same wrapper serves both invocations in a refinement pass:
// reads-vs-assembly mapping and the split assembly against itself.
type Minimap2 struct {
	// Usage: minimap2 [options] <target.fa> <query.fa>
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}minimap2{{end}}"` // minimap2

	Preset  string `buildarg:"{{if .}}-x{{split}}{{.}}{{end}}"` // -x: preset (map-pb, asm5, ...)
	Threads int    `buildarg:"{{if .}}-t{{split}}{{.}}{{end}}"` // -t: worker threads

	// drop secondary alignments and dual mappings; used for the
	// self-alignment so each overlap is reported once
	DropDual bool `buildarg:"{{if .}}-DP{{end}}"` // -DP

	// Input files:
	Target string `buildarg:"{{.}}"` // target ("reference") sequences
	Query  string `buildarg:"{{.}}"` // query sequences
}

// BuildCommand returns an exec.Cmd built from the parameters in m.
// Alignment records go to the command's stdout.
func (m Minimap2) BuildCommand() (*exec.Cmd, error) {
	if m.Target == "" || m.Query == "" {
		return nil, ErrMissingRequired
	}
	cl := external.Must(external.Build(m))
	return exec.Command(cl[0], cl[1:]...), nil
}
