package cmd

import (
	"os"

	"github.com/concolic-labs/pathfinder/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// cmdLogger is the logger that will be used for the cmd package
var cmdLogger = logging.NewLogger(zerolog.InfoLevel).NewSubLogger("module", logging.CLI_SERVICE)

// rootCmd represents the root CLI command object which all other commands stem from.
var rootCmd = &cobra.Command{
	Use:   "pathfinder",
	Short: "A concolic path explorer for integer control-flow programs",
	Long:  "pathfinder generates inputs that drive a program along every feasible path, one branch negation at a time",
}

func init() {
	// Console output for the CLI itself
	cmdLogger.AddWriter(os.Stdout, logging.UNSTRUCTURED, true)
}

// Execute provides an exportable function to invoke the CLI. Returns an error if one was encountered.
func Execute() error {
	return rootCmd.Execute()
}
