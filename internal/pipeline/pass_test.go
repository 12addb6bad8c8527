package pipeline

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/eco-evo-genomics/haplopurge/config"
)

func testConfig(workdir string) config.Config {
	return config.Config{
		Primary:   "primary.fa",
		Alternate: "alternate.fa",
		Reads:     "reads.fq.gz",
		Workdir:   workdir,
		Threads:   4,
		Align: config.AlignConfig{
			ReadPreset: "map-pb",
			SelfPreset: "asm5",
		},
		Tools: config.ToolConfig{
			Minimap2:  "minimap2",
			PbcStat:   "pbcstat",
			CalcCuts:  "calcuts",
			SplitFa:   "split_fa",
			PurgeDups: "purge_dups",
			GetSeqs:   "get_seqs",
		},
	}
}

func Test_pass_step_order(t *testing.T) {
	conf := testConfig("work")
	dir := filepath.Join("work", "primary")
	prefix := filepath.Join(dir, "primary")

	steps, err := passSteps(conf, "primary.fa", dir, prefix)
	if err != nil {
		t.Fatalf("passSteps() error: %v", err)
	}

	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
	}
	want := []string{
		"minimap2 (reads)",
		"pbcstat",
		"calcuts",
		"split_fa",
		"minimap2 (self)",
		"purge_dups",
		"get_seqs",
	}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("step order = %v, want %v", names, want)
	}
}

// Each step's declared outputs must feed a later step's declared
// inputs; the chaining is the pipeline's whole contract.
func Test_pass_file_chaining(t *testing.T) {
	conf := testConfig("work")
	dir := filepath.Join("work", "primary")
	prefix := filepath.Join(dir, "primary")

	steps, err := passSteps(conf, "primary.fa", dir, prefix)
	if err != nil {
		t.Fatalf("passSteps() error: %v", err)
	}

	produced := map[string]bool{}
	for i, s := range steps {
		for _, in := range s.Inputs {
			external := in == "primary.fa" || in == conf.Reads
			if !external && !produced[in] {
				t.Errorf("step %d (%s) consumes %s before any step produces it", i, s.Name, in)
			}
		}
		for _, out := range s.Outputs {
			produced[out] = true
		}
	}

	for _, out := range []string{prefix + ".purged.fa", prefix + ".hap.fa"} {
		if !produced[out] {
			t.Errorf("no step produces %s", out)
		}
	}
}

func Test_pass_diagnostics_separated(t *testing.T) {
	conf := testConfig("work")
	dir := filepath.Join("work", "primary")

	steps, err := passSteps(conf, "primary.fa", dir, filepath.Join(dir, "primary"))
	if err != nil {
		t.Fatalf("passSteps() error: %v", err)
	}

	for _, s := range steps {
		if s.Stderr != "" && s.Stderr == s.Stdout {
			t.Errorf("step %s interleaves diagnostics with its output stream", s.Name)
		}
	}
	for _, name := range []string{"calcuts", "purge_dups"} {
		var found bool
		for _, s := range steps {
			if s.Name == name {
				found = true
				if s.Stderr == "" {
					t.Errorf("step %s has no diagnostic log file", name)
				}
			}
		}
		if !found {
			t.Errorf("step %s missing", name)
		}
	}
}

// Building the same pass twice must yield identical command lines:
// the orchestration layer adds no nondeterminism of its own.
func Test_pass_deterministic(t *testing.T) {
	conf := testConfig("work")
	dir := filepath.Join("work", "primary")
	prefix := filepath.Join(dir, "primary")

	first, err := passSteps(conf, "primary.fa", dir, prefix)
	if err != nil {
		t.Fatal(err)
	}
	second, err := passSteps(conf, "primary.fa", dir, prefix)
	if err != nil {
		t.Fatal(err)
	}

	for i := range first {
		a := strings.Join(first[i].Cmd.Args, " ")
		b := strings.Join(second[i].Cmd.Args, " ")
		if a != b {
			t.Errorf("step %s command differs between builds:\n%s\n%s", first[i].Name, a, b)
		}
	}
}

func Test_pass_tool_dir(t *testing.T) {
	conf := testConfig("work")
	conf.Tools.Dir = "/opt/purge_dups/bin"

	steps, err := passSteps(conf, "primary.fa", "work/primary", "work/primary/primary")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range steps {
		if !strings.HasPrefix(s.Cmd.Args[0], "/opt/purge_dups/bin/") {
			t.Errorf("step %s resolves %s outside the tool dir", s.Name, s.Cmd.Args[0])
		}
	}
}
