package pipeline

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/eco-evo-genomics/haplopurge/config"
	"github.com/eco-evo-genomics/haplopurge/internal/tools"
)

// Intermediate filenames within a pass directory. pbcstat's outputs
// keep the names the tool hardcodes.
const (
	readsAlnFile = "reads.paf.gz"
	baseCovFile  = "PB.base.cov"
	statFile     = "PB.stat"
	cutoffsFile  = "cutoffs"
	calcutsLog   = "calcuts.log"
	splitFile    = "split.fa"
	selfAlnFile  = "split.self.paf.gz"
	dupsFile     = "dups.bed"
	purgeLog     = "purge_dups.log"
)

// PassResult points at the two sequence sets a refinement pass leaves
// behind: the cleaned assembly and the purged haplotigs.
type PassResult struct {
	// directory holding every intermediate of the pass
	Dir string

	// assembly with duplicate haplotigs removed
	Purged string

	// the removed duplicate sequences
	Hap string
}

// RunPass performs one refinement pass over assembly: map the reads,
// derive coverage cutoffs, split the assembly, self-align the split,
// purge duplicate intervals and extract the cleaned and removed
// sequence sets. Every artifact lands under <workdir>/<tag>/ and
// persists as the pass's debugging trail. The step order is fixed;
// each step's output is a hard input of the next.
func RunPass(conf config.Config, assembly, tag string) (PassResult, error) {
	dir := filepath.Join(conf.Workdir, tag)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return PassResult{}, errors.Wrapf(err, "failed to create pass directory %s", dir)
	}

	prefix := filepath.Join(dir, tag)
	res := PassResult{
		Dir:    dir,
		Purged: prefix + ".purged.fa",
		Hap:    prefix + ".hap.fa",
	}

	steps, err := passSteps(conf, assembly, dir, prefix)
	if err != nil {
		return PassResult{}, err
	}

	logger.Printf("pass %s: %s", tag, assembly)
	if err := Run(steps); err != nil {
		return PassResult{}, err
	}
	return res, nil
}

// passSteps builds the pass's seven commands without starting any.
func passSteps(conf config.Config, assembly, dir, prefix string) ([]Step, error) {
	p := func(name string) string { return filepath.Join(dir, name) }

	mapReads, err := tools.Minimap2{
		Cmd:     conf.Tool(conf.Tools.Minimap2),
		Preset:  conf.Align.ReadPreset,
		Threads: conf.Threads,
		Target:  assembly,
		Query:   conf.Reads,
	}.BuildCommand()
	if err != nil {
		return nil, errors.Wrap(err, "minimap2 (reads)")
	}

	covStats, err := tools.PbcStat{
		Cmd:       conf.Tool(conf.Tools.PbcStat),
		OutDir:    dir,
		Alignment: p(readsAlnFile),
	}.BuildCommand()
	if err != nil {
		return nil, errors.Wrap(err, "pbcstat")
	}

	cutoffs, err := tools.CalcCuts{
		Cmd:  conf.Tool(conf.Tools.CalcCuts),
		Stat: p(statFile),
	}.BuildCommand()
	if err != nil {
		return nil, errors.Wrap(err, "calcuts")
	}

	split, err := tools.SplitFa{
		Cmd:      conf.Tool(conf.Tools.SplitFa),
		Assembly: assembly,
	}.BuildCommand()
	if err != nil {
		return nil, errors.Wrap(err, "split_fa")
	}

	selfAln, err := tools.Minimap2{
		Cmd:      conf.Tool(conf.Tools.Minimap2),
		Preset:   conf.Align.SelfPreset,
		Threads:  conf.Threads,
		DropDual: true,
		Target:   p(splitFile),
		Query:    p(splitFile),
	}.BuildCommand()
	if err != nil {
		return nil, errors.Wrap(err, "minimap2 (self)")
	}

	purge, err := tools.PurgeDups{
		Cmd:           conf.Tool(conf.Tools.PurgeDups),
		TwoRounds:     true,
		Cutoffs:       p(cutoffsFile),
		Coverage:      p(baseCovFile),
		SelfAlignment: p(selfAlnFile),
	}.BuildCommand()
	if err != nil {
		return nil, errors.Wrap(err, "purge_dups")
	}

	extract, err := tools.GetSeqs{
		Cmd:       conf.Tool(conf.Tools.GetSeqs),
		EndsOnly:  true,
		Prefix:    prefix,
		Intervals: p(dupsFile),
		Assembly:  assembly,
	}.BuildCommand()
	if err != nil {
		return nil, errors.Wrap(err, "get_seqs")
	}

	return []Step{
		{
			Name:    "minimap2 (reads)",
			Cmd:     mapReads,
			Inputs:  []string{assembly, conf.Reads},
			Outputs: []string{p(readsAlnFile)},
			Stdout:  p(readsAlnFile),
			Gzip:    true,
		},
		{
			Name:    "pbcstat",
			Cmd:     covStats,
			Inputs:  []string{p(readsAlnFile)},
			Outputs: []string{p(baseCovFile), p(statFile)},
		},
		{
			Name:    "calcuts",
			Cmd:     cutoffs,
			Inputs:  []string{p(statFile)},
			Outputs: []string{p(cutoffsFile)},
			Stdout:  p(cutoffsFile),
			Stderr:  p(calcutsLog),
		},
		{
			Name:    "split_fa",
			Cmd:     split,
			Inputs:  []string{assembly},
			Outputs: []string{p(splitFile)},
			Stdout:  p(splitFile),
		},
		{
			Name:    "minimap2 (self)",
			Cmd:     selfAln,
			Inputs:  []string{p(splitFile)},
			Outputs: []string{p(selfAlnFile)},
			Stdout:  p(selfAlnFile),
			Gzip:    true,
		},
		{
			Name:    "purge_dups",
			Cmd:     purge,
			Inputs:  []string{p(cutoffsFile), p(baseCovFile), p(selfAlnFile)},
			Outputs: []string{p(dupsFile)},
			Stdout:  p(dupsFile),
			Stderr:  p(purgeLog),
		},
		{
			Name:    "get_seqs",
			Cmd:     extract,
			Inputs:  []string{p(dupsFile), assembly},
			Outputs: []string{prefix + ".purged.fa", prefix + ".hap.fa"},
		},
	}, nil
}
