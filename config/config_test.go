package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestNew_defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	c, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if c.Threads < 1 {
		t.Errorf("Threads = %d, want a positive auto-sized default", c.Threads)
	}
	if c.Workdir != "." {
		t.Errorf("Workdir = %q, want %q", c.Workdir, ".")
	}
	if c.Align.ReadPreset != "map-pb" || c.Align.SelfPreset != "asm5" {
		t.Errorf("presets = %q/%q, want map-pb/asm5", c.Align.ReadPreset, c.Align.SelfPreset)
	}

	wantTools := map[string]string{
		"minimap2":   c.Tools.Minimap2,
		"pbcstat":    c.Tools.PbcStat,
		"calcuts":    c.Tools.CalcCuts,
		"split_fa":   c.Tools.SplitFa,
		"purge_dups": c.Tools.PurgeDups,
		"get_seqs":   c.Tools.GetSeqs,
	}
	for want, got := range wantTools {
		if got != want {
			t.Errorf("tool default = %q, want %q", got, want)
		}
	}
}

func TestNew_settingsOverride(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("threads", 16)
	viper.Set("align.self-preset", "asm10")
	viper.Set("tools.minimap2", "minimap2-2.26")

	c, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if c.Threads != 16 {
		t.Errorf("Threads = %d, want 16", c.Threads)
	}
	if c.Align.SelfPreset != "asm10" {
		t.Errorf("SelfPreset = %q, want asm10", c.Align.SelfPreset)
	}
	if c.Tools.Minimap2 != "minimap2-2.26" {
		t.Errorf("Minimap2 = %q, want minimap2-2.26", c.Tools.Minimap2)
	}
}

func TestConfig_Tool(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		tool string
		want string
	}{
		{"bare name through PATH", "", "minimap2", "minimap2"},
		{"joined onto tool dir", "/opt/purge_dups/bin", "calcuts", filepath.Join("/opt/purge_dups/bin", "calcuts")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Tools: ToolConfig{Dir: tt.dir}}
			if got := c.Tool(tt.tool); got != tt.want {
				t.Errorf("Tool(%q) = %q, want %q", tt.tool, got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.fa")
	alternate := filepath.Join(dir, "alternate.fa")
	reads := filepath.Join(dir, "reads.fq")
	for _, p := range []string{primary, alternate, reads} {
		if err := os.WriteFile(p, []byte(">tig_1\nACGT\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name          string
		conf          Config
		needAlternate bool
		wantErr       bool
	}{
		{
			"complete two-pass config",
			Config{Primary: primary, Alternate: alternate, Reads: reads, Threads: 4},
			true,
			false,
		},
		{
			"single pass needs no alternate",
			Config{Primary: primary, Reads: reads, Threads: 4},
			false,
			false,
		},
		{
			"missing alternate",
			Config{Primary: primary, Reads: reads, Threads: 4},
			true,
			true,
		},
		{
			"primary does not exist",
			Config{Primary: filepath.Join(dir, "no-such.fa"), Reads: reads, Threads: 4},
			false,
			true,
		},
		{
			"no reads set",
			Config{Primary: primary, Threads: 4},
			false,
			true,
		},
		{
			"nonpositive threads",
			Config{Primary: primary, Reads: reads, Threads: -1},
			false,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate(tt.needAlternate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
