// Package pipeline sequences the purge_dups refinement passes: six
// external binaries chained through files in a working directory.
package pipeline

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var logger = log.New(os.Stderr, "[haplopurge] ", log.Ldate|log.Ltime)

// stderrTailLimit bounds how much child stderr a StepError carries.
const stderrTailLimit = 2048

// Step is one external-tool invocation with its file contract made
// explicit: the inputs it needs on disk before starting and the
// outputs it must leave behind. Declared contracts are what would let
// a resume mode skip completed steps later.
type Step struct {
	// short name used in logs and errors, e.g. "calcuts"
	Name string

	// the fully-built command; never started before Run
	Cmd *exec.Cmd

	// files that must exist before the command starts
	Inputs []string

	// files that must exist and be non-empty after a zero exit
	Outputs []string

	// when set, the child's stdout is written to this path
	Stdout string

	// gzip-compress the stdout capture (the alignment steps emit
	// plain PAF; the .paf.gz intermediates are compressed here)
	Gzip bool

	// when set, the child's stderr is mirrored to this path so
	// diagnostics never share a stream with machine-readable output
	Stderr string
}

// StepError is the failure of a single pipeline step. ExitCode is -1
// when the step never ran (missing input, missing binary).
type StepError struct {
	Step       string
	ExitCode   int
	StderrTail string
	Err        error
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("step %s failed (exit %d)", e.Step, e.ExitCode)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.StderrTail != "" {
		msg += "\n" + e.StderrTail
	}
	return msg
}

func (e *StepError) Unwrap() error { return e.Err }

// Run executes steps strictly in order, blocking on each child until
// it exits. The first failure aborts the sequence; later steps are
// never started and nothing already written is rolled back.
func Run(steps []Step) error {
	for i := range steps {
		if err := runStep(&steps[i]); err != nil {
			return err
		}
	}
	return nil
}

func runStep(s *Step) error {
	for _, in := range s.Inputs {
		if _, err := os.Stat(in); err != nil {
			return &StepError{Step: s.Name, ExitCode: -1, Err: errors.Wrapf(err, "missing input")}
		}
	}

	var tail bytes.Buffer
	closers, err := plumb(s, &tail)
	if err != nil {
		return &StepError{Step: s.Name, ExitCode: -1, Err: err}
	}

	logger.Printf("%s: %s", s.Name, cmdline(s.Cmd))
	start := time.Now()
	runErr := s.Cmd.Run()
	for i := len(closers) - 1; i >= 0; i-- {
		if cerr := closers[i].Close(); cerr != nil && runErr == nil {
			runErr = cerr
		}
	}
	if runErr != nil {
		return &StepError{
			Step:       s.Name,
			ExitCode:   exitCode(runErr),
			StderrTail: tailString(&tail),
			Err:        runErr,
		}
	}

	for _, out := range s.Outputs {
		fi, err := os.Stat(out)
		if err != nil {
			return &StepError{Step: s.Name, ExitCode: 0, Err: errors.Wrapf(err, "missing output")}
		}
		if fi.Size() == 0 {
			return &StepError{Step: s.Name, ExitCode: 0, Err: errors.Errorf("empty output %s", out)}
		}
	}

	logger.Printf("%s: finished in %s", s.Name, time.Since(start).Round(time.Millisecond))
	return nil
}

// plumb wires the child's stdout and stderr per the step's contract
// and returns the writers to close once the child has exited, inner
// writers last.
func plumb(s *Step, tail *bytes.Buffer) (closers []io.Closer, err error) {
	if s.Stdout != "" {
		f, err := os.Create(s.Stdout)
		if err != nil {
			return nil, errors.Wrap(err, "create stdout file")
		}
		closers = append(closers, f)
		if s.Gzip {
			zw := gzip.NewWriter(f)
			closers = append(closers, zw)
			s.Cmd.Stdout = zw
		} else {
			s.Cmd.Stdout = f
		}
	}

	s.Cmd.Stderr = tail
	if s.Stderr != "" {
		f, err := os.Create(s.Stderr)
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			return nil, errors.Wrap(err, "create stderr file")
		}
		closers = append(closers, f)
		s.Cmd.Stderr = io.MultiWriter(f, tail)
	}
	return closers, nil
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func tailString(buf *bytes.Buffer) string {
	b := buf.Bytes()
	if len(b) > stderrTailLimit {
		b = b[len(b)-stderrTailLimit:]
	}
	return string(b)
}

func cmdline(cmd *exec.Cmd) string {
	return strings.Join(cmd.Args, " ")
}
