package pipeline

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/eco-evo-genomics/haplopurge/config"
)

// Pass tags; each names the subdirectory its artifacts live in.
const (
	PrimaryTag = "primary"
	MergedTag  = "merged"
)

// mergedFile is the concatenation fed to the second pass.
const mergedFile = "merged.fa"

// Result collects the artifacts of a full two-pass run.
type Result struct {
	// pass A outputs: the cleaned primary assembly and the haplotigs
	// purged from it
	Primary PassResult

	// concatenation of the purged primary haplotigs and the
	// alternate assembly
	Merged string

	// pass B outputs over the merged assembly; Final.Purged and
	// Final.Hap are the pipeline's final sequence sets
	Final PassResult
}

// Execute runs the whole pipeline: a refinement pass over the primary
// assembly, a merge of its purged haplotigs with the alternate
// assembly, and a second pass over that merge. State moves between
// passes only through files in the working directory.
//
// Two concurrent runs in one working directory clobber each other;
// Execute refuses a directory holding a previous run's artifacts
// unless conf.Force is set.
func Execute(conf config.Config) (Result, error) {
	firstAln := filepath.Join(conf.Workdir, PrimaryTag, readsAlnFile)
	if _, err := os.Stat(firstAln); err == nil && !conf.Force {
		return Result{}, errors.Errorf("%s holds artifacts of an earlier run; use a fresh workdir or --force", conf.Workdir)
	}

	primary, err := RunPass(conf, conf.Primary, PrimaryTag)
	if err != nil {
		return Result{}, err
	}

	merged := filepath.Join(conf.Workdir, mergedFile)
	n, err := Merge(merged, primary.Hap, conf.Alternate)
	if err != nil {
		return Result{}, err
	}
	logger.Printf("merged %d sequences into %s", n, merged)

	final, err := RunPass(conf, merged, MergedTag)
	if err != nil {
		return Result{}, err
	}

	logger.Printf("done: purged %s, haplotigs %s", final.Purged, final.Hap)
	return Result{Primary: primary, Merged: merged, Final: final}, nil
}
