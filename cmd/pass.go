package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/eco-evo-genomics/haplopurge/config"
	"github.com/eco-evo-genomics/haplopurge/internal/pipeline"
)

// passCmd runs a single refinement pass over one assembly, which is
// useful when resuming a failed second pass by hand or when only a
// primary assembly exists.
var passCmd = &cobra.Command{
	Use:   "pass",
	Short: "Run a single refinement pass over one assembly",
	Run: func(cmd *cobra.Command, args []string) {
		assembly, err := cmd.Flags().GetString("assembly")
		if err != nil {
			log.Fatalf("cannot get assembly from arguments: %v", err)
		}
		reads, err := cmd.Flags().GetString("reads")
		if err != nil {
			log.Fatalf("cannot get reads from arguments: %v", err)
		}
		tag, err := cmd.Flags().GetString("tag")
		if err != nil {
			log.Fatalf("cannot get tag from arguments: %v", err)
		}

		conf, err := config.New()
		if err != nil {
			log.Fatalf("%v", err)
		}
		conf.Primary = assembly
		conf.Reads = reads
		if err := conf.Validate(false); err != nil {
			log.Fatalf("%v", err)
		}

		res, err := pipeline.RunPass(conf, assembly, tag)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("purged %s, haplotigs %s", res.Purged, res.Hap)
	},
}

func init() {
	rootCmd.AddCommand(passCmd)

	passCmd.Flags().StringP("assembly", "p", "", "path to the assembly FASTA to refine")
	passCmd.Flags().StringP("reads", "r", "", "path to the long reads, FASTA/FASTQ, optionally gzipped")
	passCmd.Flags().String("tag", pipeline.PrimaryTag, "name for the pass's artifact directory")

	passCmd.MarkFlagRequired("assembly")
	passCmd.MarkFlagRequired("reads")
}
