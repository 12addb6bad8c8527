// Package config is for pipeline-wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// ToolConfig holds the names or paths of the six external binaries the
// pipeline invokes. Bare names are resolved through PATH; when Dir is
// set it is joined onto each bare name instead.
type ToolConfig struct {
	// directory holding the purge_dups and minimap2 binaries
	Dir string `mapstructure:"dir"`

	Minimap2  string `mapstructure:"minimap2"`
	PbcStat   string `mapstructure:"pbcstat"`
	CalcCuts  string `mapstructure:"calcuts"`
	SplitFa   string `mapstructure:"split-fa"`
	PurgeDups string `mapstructure:"purge-dups"`
	GetSeqs   string `mapstructure:"get-seqs"`
}

// AlignConfig is settings for the two minimap2 invocations
type AlignConfig struct {
	// preset for mapping long reads against an assembly
	ReadPreset string `mapstructure:"read-preset"`

	// preset for aligning the split assembly against itself
	SelfPreset string `mapstructure:"self-preset"`
}

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those from the command line
type Config struct {
	// path to the primary assembly FASTA
	Primary string `mapstructure:"primary"`

	// path to the alternate (haplotig) assembly FASTA
	Alternate string `mapstructure:"alternate"`

	// path to the long-read set, FASTA or FASTQ, optionally gzipped
	Reads string `mapstructure:"reads"`

	// directory all intermediate and final files are written into
	Workdir string `mapstructure:"workdir"`

	// thread count passed to the external tools that accept one
	Threads int `mapstructure:"threads"`

	// overwrite artifacts left by an earlier run in the same workdir
	Force bool `mapstructure:"force"`

	Align AlignConfig `mapstructure:"align"`
	Tools ToolConfig  `mapstructure:"tools"`
}

// New returns a Config populated by Viper settings (from the local
// settings.yaml and/or command line arguments)
func New() (Config, error) {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode settings into struct: %v", err)
	}

	// a zero thread count means auto-size from the host
	if c.Threads == 0 {
		c.Threads = defaultThreads()
	}
	return c, nil
}

func setDefaults() {
	viper.SetDefault("workdir", ".")
	viper.SetDefault("align.read-preset", "map-pb")
	viper.SetDefault("align.self-preset", "asm5")
	viper.SetDefault("tools.minimap2", "minimap2")
	viper.SetDefault("tools.pbcstat", "pbcstat")
	viper.SetDefault("tools.calcuts", "calcuts")
	viper.SetDefault("tools.split-fa", "split_fa")
	viper.SetDefault("tools.purge-dups", "purge_dups")
	viper.SetDefault("tools.get-seqs", "get_seqs")
}

func defaultThreads() int {
	threads := runtime.NumCPU() - 1
	if threads < 1 {
		threads = 1
	}
	return threads
}

// Tool resolves the path of one external binary: the configured name
// alone when Dir is unset, otherwise Dir joined with the name.
func (c Config) Tool(name string) string {
	if c.Tools.Dir == "" {
		return name
	}
	return filepath.Join(c.Tools.Dir, name)
}

// Validate checks that the settings describe a runnable pipeline:
// input files must exist and the thread count must be positive.
func (c Config) Validate(needAlternate bool) error {
	if c.Threads < 1 {
		return fmt.Errorf("threads must be positive, got %d", c.Threads)
	}

	required := []struct {
		label, path string
	}{
		{"primary assembly", c.Primary},
		{"read set", c.Reads},
	}
	if needAlternate {
		required = append(required, struct{ label, path string }{"alternate assembly", c.Alternate})
	}
	for _, r := range required {
		if r.path == "" {
			return fmt.Errorf("no %s path set", r.label)
		}
		if _, err := os.Stat(r.path); err != nil {
			return fmt.Errorf("failed to find %s at %s: %v", r.label, r.path, err)
		}
	}
	return nil
}
