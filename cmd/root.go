// Package cmd is for command line interactions with the haplopurge pipeline
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "haplopurge",
	Short: `Remove duplicate haplotigs from a genome assembly.
Sequences minimap2 and the purge_dups toolkit over two refinement passes`,
	Version: "0.2.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(readSettings)

	rootCmd.PersistentFlags().StringP("workdir", "d", ".", "directory to write intermediate and output files into")
	rootCmd.PersistentFlags().IntP("threads", "t", 0, "threads passed to the external tools (0 = all but one CPU)")
	rootCmd.PersistentFlags().String("tool-dir", "", "directory holding the minimap2 and purge_dups binaries")

	viper.BindPFlag("workdir", rootCmd.PersistentFlags().Lookup("workdir"))
	viper.BindPFlag("threads", rootCmd.PersistentFlags().Lookup("threads"))
	viper.BindPFlag("tools.dir", rootCmd.PersistentFlags().Lookup("tool-dir"))
}

// readSettings loads an optional settings.yaml from the working
// directory; flags override anything it sets.
func readSettings() {
	viper.SetConfigName("settings")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(viper.GetString("workdir"))
	viper.AddConfigPath(".")
	viper.ReadInConfig() // missing settings file is fine
}
