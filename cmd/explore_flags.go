package cmd

import (
	"fmt"

	"github.com/concolic-labs/pathfinder/concolic/config"
	"github.com/spf13/cobra"
)

// addExploreFlags adds the various flags for the explore command
func addExploreFlags() error {
	defaultConfig := config.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	exploreCmd.Flags().SortFlags = false

	// Config file
	exploreCmd.Flags().String("config", "", fmt.Sprintf("path to config file (default is %s in the working directory)", DefaultProjectConfigFilename))

	// Program
	exploreCmd.Flags().String("program", "",
		fmt.Sprintf("path to the program file (unless a config file is provided, default is %q)", defaultConfig.Program.Path))

	// Range
	exploreCmd.Flags().Int64("min", 0,
		fmt.Sprintf("smallest value a variable may take (unless a config file is provided, default is %d)", defaultConfig.Exploration.MinRange))
	exploreCmd.Flags().Int64("max", 0,
		fmt.Sprintf("largest value a variable may take (unless a config file is provided, default is %d)", defaultConfig.Exploration.MaxRange))

	// Inputs
	exploreCmd.Flags().String("input-prefix", "",
		fmt.Sprintf("prefix of the entry block declarations that are inputs (unless a config file is provided, default is %q)", defaultConfig.Exploration.InputPrefix))
	exploreCmd.Flags().StringSlice("inputs", []string{}, "explicit input variables, overriding the input prefix")

	// Budgets
	exploreCmd.Flags().Int("max-steps", 0,
		fmt.Sprintf("blocks a single execution may visit (unless a config file is provided, default is %d)", defaultConfig.Exploration.MaxBlockSteps))
	exploreCmd.Flags().Int("max-iterations", 0,
		fmt.Sprintf("driver iterations before exploration stops (unless a config file is provided, default is %d)", defaultConfig.Exploration.MaxIterations))
	exploreCmd.Flags().Int("timeout", 0,
		fmt.Sprintf("number of seconds to explore for (unless a config file is provided, default is %d). 0 means that timeout is not enforced", defaultConfig.Exploration.Timeout))

	// Seed
	exploreCmd.Flags().Int64("seed", 0, "seed for the initial input and solution sampling (default is time based)")

	// Corpus directory
	exploreCmd.Flags().String("corpus-dir", "",
		fmt.Sprintf("directory path for the path corpus (unless a config file is provided, default is %q)", defaultConfig.Exploration.CorpusDirectory))

	// Logging
	exploreCmd.Flags().Bool("no-color", false, "disable colored terminal output")
	return nil
}

// updateProjectConfigWithExploreFlags will update the given projectConfig with any CLI arguments that were provided to
// the explore command
func updateProjectConfigWithExploreFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update program path
	if cmd.Flags().Changed("program") {
		projectConfig.Program.Path, err = cmd.Flags().GetString("program")
		if err != nil {
			return err
		}
	}

	// Update range
	if cmd.Flags().Changed("min") {
		projectConfig.Exploration.MinRange, err = cmd.Flags().GetInt64("min")
		if err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("max") {
		projectConfig.Exploration.MaxRange, err = cmd.Flags().GetInt64("max")
		if err != nil {
			return err
		}
	}

	// Update inputs
	if cmd.Flags().Changed("input-prefix") {
		projectConfig.Exploration.InputPrefix, err = cmd.Flags().GetString("input-prefix")
		if err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("inputs") {
		projectConfig.Exploration.InputVariables, err = cmd.Flags().GetStringSlice("inputs")
		if err != nil {
			return err
		}
	}

	// Update budgets
	if cmd.Flags().Changed("max-steps") {
		projectConfig.Exploration.MaxBlockSteps, err = cmd.Flags().GetInt("max-steps")
		if err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("max-iterations") {
		projectConfig.Exploration.MaxIterations, err = cmd.Flags().GetInt("max-iterations")
		if err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("timeout") {
		projectConfig.Exploration.Timeout, err = cmd.Flags().GetInt("timeout")
		if err != nil {
			return err
		}
	}

	// Update seed
	if cmd.Flags().Changed("seed") {
		seed, err := cmd.Flags().GetInt64("seed")
		if err != nil {
			return err
		}
		projectConfig.Exploration.Seed = &seed
	}

	// Update corpus directory
	if cmd.Flags().Changed("corpus-dir") {
		projectConfig.Exploration.CorpusDirectory, err = cmd.Flags().GetString("corpus-dir")
		if err != nil {
			return err
		}
	}

	// Update color enablement
	if cmd.Flags().Changed("no-color") {
		projectConfig.Logging.NoColor, err = cmd.Flags().GetBool("no-color")
		if err != nil {
			return err
		}
	}
	return nil
}
