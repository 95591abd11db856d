package cmd

import (
	"fmt"
	"strings"

	"github.com/concolic-labs/pathfinder/concolic/corpus"
	"github.com/concolic-labs/pathfinder/logging/colors"
	"github.com/concolic-labs/pathfinder/trace"
	"github.com/spf13/cobra"
)

// corpusCmd represents the corpus command group
var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the path corpus",
	Long:  `Commands for inspecting the paths and inputs persisted by earlier explorations.`,
}

// corpusListCmd represents the corpus list subcommand
var corpusListCmd = &cobra.Command{
	Use:               "list",
	Short:             "List the stored paths and inputs",
	Long:              `Lists every stored path with the input that produced it, grouped by program.`,
	Args:              cobra.NoArgs,
	ValidArgsFunction: cmdValidUnusedFlags,
	RunE:              cmdRunCorpusList,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Prevent alphabetical sorting of usage message
	corpusListCmd.Flags().SortFlags = false

	// Config file path
	corpusListCmd.Flags().String("config", "",
		fmt.Sprintf("path to config file (default: %s in current directory)", DefaultProjectConfigFilename))

	// Program filter
	corpusListCmd.Flags().String("program", "", "only list the paths of the given program identifier")

	// Add subcommands to corpus command
	corpusCmd.AddCommand(corpusListCmd)

	// Add corpus command to root
	rootCmd.AddCommand(corpusCmd)
}

// cmdRunCorpusList executes the corpus list command
func cmdRunCorpusList(cmd *cobra.Command, args []string) error {
	projectConfig, configDirectory, err := readProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to read the configuration", err)
		return err
	}

	// Check if corpus directory is configured
	if projectConfig.Exploration.CorpusDirectory == "" {
		err = fmt.Errorf("no corpus directory configured")
		cmdLogger.Error("Failed to run the corpus list command", err)
		return err
	}

	corpusDirectory := resolvePath(configDirectory, projectConfig.Exploration.CorpusDirectory)
	c, err := corpus.Open(corpusDirectory, nil)
	if err != nil {
		cmdLogger.Error("Failed to open the corpus", err)
		return err
	}
	defer c.Close()

	programs, err := c.Programs()
	if err != nil {
		cmdLogger.Error("Failed to list the corpus", err)
		return err
	}
	if cmd.Flags().Changed("program") {
		filter, err := cmd.Flags().GetString("program")
		if err != nil {
			return err
		}
		programs = []string{filter}
	}

	for _, programID := range programs {
		entries, err := c.Entries(programID)
		if err != nil {
			cmdLogger.Error("Failed to read the corpus entries of ", programID, err)
			return err
		}
		cmdLogger.Info(colors.Bold, programID, colors.Reset, ": ", len(entries), " path(s)")
		for _, entry := range entries {
			cmdLogger.Info("  ", trace.Assignment(entry.Input), colors.DarkGray, " ", colors.LEFT_ARROW, " ", strings.Join(entry.Path, " -> "), colors.Reset)
		}
	}
	return nil
}
