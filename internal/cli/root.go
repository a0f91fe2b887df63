// Package cli implements the remedy command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	seedFile string
	verbose  bool
	jsonOut  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "remedy",
	Short: "Data-quality remediation task tracker",
	Long: `remedy tracks data-quality remediation tasks and drives their
resolution workflows.

Tasks cover anomalous phone numbers, incomplete addresses, contract
mismatches, expiring certificates, and outbound call verification.
Each task is resolved either manually by an operator or automatically
by a processing agent; remedy enforces that only one workflow runs at
a time and merges the results back into the task list.

Quick start:
  remedy list                 Show all tasks
  remedy stats                Aggregate progress overview
  remedy resolve 3            Resolve a task manually
  remedy process 1            Run the automated workflow for a task
  remedy serve                Start the REST/WebSocket API server`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .remedy/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&seedFile, "seed", "", "task seed file (YAML; default is the built-in task set)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")

	// Add subcommands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newReassignCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in .remedy directory
		viper.AddConfigPath(".remedy")
		viper.AddConfigPath("$HOME/.remedy")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("REMEDY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
