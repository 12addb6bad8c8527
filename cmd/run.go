package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eco-evo-genomics/haplopurge/config"
	"github.com/eco-evo-genomics/haplopurge/internal/pipeline"
)

// runCmd represents the run command: the full two-pass pipeline.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Purge duplicate haplotigs from a primary and alternate assembly pair",
	Long: `Run both refinement passes of the purge_dups pipeline.

The first pass maps the long reads against the primary assembly, derives
coverage cutoffs, self-aligns the split assembly and removes duplicate
haplotigs. The haplotigs it removed are then concatenated with the
alternate assembly and the same pass is repeated over that merge. The
final purged and haplotig FASTA files are written under <workdir>/merged/.

Every intermediate file is kept in the working directory as a debugging
trail. A step failure aborts the whole run; there is no resume, so rerun
into a fresh working directory after fixing the cause.`,
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := config.New()
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := conf.Validate(true); err != nil {
			log.Fatalf("%v", err)
		}
		if _, err := pipeline.Execute(conf); err != nil {
			log.Fatalf("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("primary", "p", "", "path to the primary assembly FASTA")
	runCmd.Flags().StringP("alternate", "a", "", "path to the alternate assembly FASTA")
	runCmd.Flags().StringP("reads", "r", "", "path to the long reads, FASTA/FASTQ, optionally gzipped")
	runCmd.Flags().Bool("force", false, "run even if the workdir holds artifacts of an earlier run")

	runCmd.MarkFlagRequired("primary")
	runCmd.MarkFlagRequired("alternate")
	runCmd.MarkFlagRequired("reads")

	viper.BindPFlag("primary", runCmd.Flags().Lookup("primary"))
	viper.BindPFlag("alternate", runCmd.Flags().Lookup("alternate"))
	viper.BindPFlag("reads", runCmd.Flags().Lookup("reads"))
	viper.BindPFlag("force", runCmd.Flags().Lookup("force"))
}
