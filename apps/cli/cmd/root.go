package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "postman-helper",
	Short: "Run API request collections from the command line.",
	Long: `postman-helper executes collections of API requests in order,
evaluates their assertion scripts in an isolated sandbox, and reports
the results for humans (console) or CI (JUnit XML, JSON).`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}
