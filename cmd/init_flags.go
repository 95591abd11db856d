package cmd

import (
	"github.com/concolic-labs/pathfinder/concolic/config"
	"github.com/spf13/cobra"
)

// addInitFlags adds the various flags for the init command
func addInitFlags() error {
	// Output path for configuration
	initCmd.Flags().String("out", "", "output path for the new project configuration file")

	// Program file
	initCmd.Flags().String("program", "", "path of the program file to reference in the configuration")

	return nil
}

// updateProjectConfigWithInitFlags will update the given projectConfig with any CLI arguments that were provided to
// the init command
func updateProjectConfigWithInitFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	if cmd.Flags().Changed("program") {
		programPath, err := cmd.Flags().GetString("program")
		if err != nil {
			return err
		}
		projectConfig.Program.Path = programPath
	}
	return nil
}
