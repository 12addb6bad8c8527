package tools

import (
	"os/exec"

	"github.com/biogo/external"
)

// PbcStat defines parameters for pbcstat, which derives read-depth
// statistics from a read-to-assembly alignment. It writes PB.base.cov
// and PB.stat into the output directory rather than to stdout.
type PbcStat struct {
	// Usage: pbcstat [options] <aln.paf.gz>
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}pbcstat{{end}}"` // pbcstat

	OutDir string `buildarg:"{{if .}}-O{{split}}{{.}}{{end}}"` // -O: output directory

	Alignment string `buildarg:"{{.}}"` // read-to-assembly alignment
}

// BuildCommand returns an exec.Cmd built from the parameters in p.
func (p PbcStat) BuildCommand() (*exec.Cmd, error) {
	if p.Alignment == "" {
		return nil, ErrMissingRequired
	}
	cl := external.Must(external.Build(p))
	return exec.Command(cl[0], cl[1:]...), nil
}

// CalcCuts defines parameters for calcuts, which derives the low,
// haploid and diploid coverage cutoffs from a pbcstat stat file.
// Cutoff values go to stdout, a histogram summary to stderr; the two
// streams must never share a file.
type CalcCuts struct {
	// Usage: calcuts [options] <PB.stat>
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}calcuts{{end}}"` // calcuts

	Low    int `buildarg:"{{if .}}-l{{split}}{{.}}{{end}}"` // -l: lower depth bound
	Mid    int `buildarg:"{{if .}}-m{{split}}{{.}}{{end}}"` // -m: haploid/diploid transition
	Upper  int `buildarg:"{{if .}}-u{{split}}{{.}}{{end}}"` // -u: upper depth bound
	Ploidy int `buildarg:"{{if .}}-d{{split}}{{.}}{{end}}"` // -d: expected ploidy

	Stat string `buildarg:"{{.}}"` // coverage stat file
}

// BuildCommand returns an exec.Cmd built from the parameters in c.
func (c CalcCuts) BuildCommand() (*exec.Cmd, error) {
	if c.Stat == "" {
		return nil, ErrMissingRequired
	}
	cl := external.Must(external.Build(c))
	return exec.Command(cl[0], cl[1:]...), nil
}

// SplitFa defines parameters for split_fa, which breaks an assembly
// into sub-sequences at runs of ambiguous bases. Split records go to
// stdout.
type SplitFa struct {
	// Usage: split_fa <asm.fa>
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}split_fa{{end}}"` // split_fa

	Assembly string `buildarg:"{{.}}"` // assembly to split
}

// BuildCommand returns an exec.Cmd built from the parameters in s.
func (s SplitFa) BuildCommand() (*exec.Cmd, error) {
	if s.Assembly == "" {
		return nil, ErrMissingRequired
	}
	cl := external.Must(external.Build(s))
	return exec.Command(cl[0], cl[1:]...), nil
}

// PurgeDups defines parameters for purge_dups, which combines the
// coverage cutoffs, the per-base coverage track and the self-alignment
// into a BED-like interval file naming duplicated segments. Intervals
// go to stdout, chain diagnostics to stderr.
type PurgeDups struct {
	// Usage: purge_dups [options] <self.paf.gz>
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}purge_dups{{end}}"` // purge_dups

	TwoRounds bool   `buildarg:"{{if .}}-2{{end}}"`               // -2: two rounds of chaining
	Cutoffs   string `buildarg:"{{if .}}-T{{split}}{{.}}{{end}}"` // -T: cutoffs file
	Coverage  string `buildarg:"{{if .}}-c{{split}}{{.}}{{end}}"` // -c: per-base coverage file

	SelfAlignment string `buildarg:"{{.}}"` // split-assembly self-alignment
}

// BuildCommand returns an exec.Cmd built from the parameters in p.
func (p PurgeDups) BuildCommand() (*exec.Cmd, error) {
	if p.SelfAlignment == "" || p.Cutoffs == "" || p.Coverage == "" {
		return nil, ErrMissingRequired
	}
	cl := external.Must(external.Build(p))
	return exec.Command(cl[0], cl[1:]...), nil
}

// GetSeqs defines parameters for get_seqs, which applies an interval
// file to the original unsplit assembly and writes <prefix>.purged.fa
// and <prefix>.hap.fa into the working directory.
type GetSeqs struct {
	// Usage: get_seqs [options] <dups.bed> <asm.fa>
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}get_seqs{{end}}"` // get_seqs

	EndsOnly bool   `buildarg:"{{if .}}-e{{end}}"`               // -e: only purge duplications at sequence ends
	Prefix   string `buildarg:"{{if .}}-p{{split}}{{.}}{{end}}"` // -p: output prefix

	Intervals string `buildarg:"{{.}}"` // duplicate-interval BED
	Assembly  string `buildarg:"{{.}}"` // original unsplit assembly
}

// BuildCommand returns an exec.Cmd built from the parameters in g.
func (g GetSeqs) BuildCommand() (*exec.Cmd, error) {
	if g.Intervals == "" || g.Assembly == "" {
		return nil, ErrMissingRequired
	}
	cl := external.Must(external.Build(g))
	return exec.Command(cl[0], cl[1:]...), nil
}
