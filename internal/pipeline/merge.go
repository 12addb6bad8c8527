package pipeline

import (
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/brentp/xopen"
	"github.com/pkg/errors"
)

// Merge concatenates the FASTA records of inputs into out, preserving
// order and never renaming or dropping a record, and returns the
// number of records written. Inputs may be gzipped. Duplicate IDs
// across inputs are counted and warned about but kept: downstream
// purging decides their fate, as in the shell pipelines this replaces.
func Merge(out string, inputs ...string) (n int, err error) {
	of, err := os.Create(out)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create merged assembly")
	}
	defer func() {
		if cerr := of.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := fasta.NewWriter(of, 60)
	seen := make(map[string]bool)
	var dups int

	for _, in := range inputs {
		f, err := xopen.Ropen(in)
		if err != nil {
			return n, errors.Wrapf(err, "failed to open %s", in)
		}

		sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNA)))
		for sc.Next() {
			s := sc.Seq().(*linear.Seq)
			if seen[s.ID] {
				dups++
			}
			seen[s.ID] = true
			if _, err := w.Write(s); err != nil {
				f.Close()
				return n, errors.Wrapf(err, "failed to write %s", s.ID)
			}
			n++
		}
		if err := sc.Error(); err != nil {
			f.Close()
			return n, errors.Wrapf(err, "failed to read %s", in)
		}
		f.Close()
	}

	if dups > 0 {
		logger.Printf("warning: %d duplicate sequence IDs in %s", dups, out)
	}
	return n, nil
}
