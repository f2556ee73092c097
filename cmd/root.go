package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	inputPath  string
	configPath string
	verbose    bool
	logPath    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dvsim",
	Short: "Distance-vector routing simulator",
	Long: `dvsim simulates a RIP style distance-vector protocol over a weighted graph of routers.
It prints every router's distance table round by round until the network converges, then the
routing tables, and repeats both after a batch of link changes.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "sim",
		Title: "Simulation",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cfg",
		Title: "Scenario Files",
	})
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "line protocol input file (default stdin)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML scenario file, used instead of the line protocol")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", "", "also write logs to this file")
	rootCmd.MarkFlagsMutuallyExclusive("input", "config")
}
