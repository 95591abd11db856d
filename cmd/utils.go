package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/concolic-labs/pathfinder/concolic/config"
	"github.com/concolic-labs/pathfinder/logging/colors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cmdValidUnusedFlags returns the flags of a command that have not been set yet, for dynamic completion of commands
// that accept no positional arguments.
func cmdValidUnusedFlags(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var unusedFlags []string
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			// The "--" prefix marks the suggestion as a flag rather than a positional argument
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// readProjectConfig resolves the project configuration of a command:
// #1: If --config was used, the file must exist and is read.
// #2: Otherwise pathfinder.json in the working directory is read if it exists.
// #3: Otherwise the default project configuration is used.
// Returns the configuration and the directory relative paths in it are resolved against.
func readProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, string, error) {
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", err
	}

	workingDirectory, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	if !configFlagUsed {
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	// Possibility #1 and #2: the file was found
	if _, existenceError := os.Stat(configPath); existenceError == nil {
		cmdLogger.Info("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
		projectConfig, err := config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			return nil, "", err
		}
		return projectConfig, filepath.Dir(configPath), nil
	} else if configFlagUsed {
		return nil, "", existenceError
	}

	// Possibility #3: use the defaults
	cmdLogger.Warn(fmt.Sprintf("Unable to find the config file at %v, will use the default project configuration instead", configPath))
	return config.GetDefaultProjectConfig(), workingDirectory, nil
}

// resolvePath makes a configured path absolute relative to the configuration directory.
func resolvePath(baseDirectory string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDirectory, path)
}

// programIdentifier derives the corpus identifier of a program from its file name.
func programIdentifier(programPath string) string {
	base := filepath.Base(programPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
