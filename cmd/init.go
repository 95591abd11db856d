package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/concolic-labs/pathfinder/concolic/config"
	"github.com/concolic-labs/pathfinder/logging/colors"
	"github.com/concolic-labs/pathfinder/program"
	"github.com/concolic-labs/pathfinder/program/programfile"
	"github.com/concolic-labs/pathfinder/utils"
	"github.com/spf13/cobra"
)

// initCmd represents the command provider for init
var initCmd = &cobra.Command{
	Use:               "init",
	Short:             "Initializes a project configuration",
	Long:              `Initializes a project configuration and, if none exists, an example program`,
	Args:              cmdValidateInitArgs,
	ValidArgsFunction: cmdValidUnusedFlags,
	RunE:              cmdRunInit,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add flags to init command
	err := addInitFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the init command", err)
	}

	// Add the init command and its associated flags to the root command
	rootCmd.AddCommand(initCmd)
}

// cmdValidateInitArgs validates CLI arguments
func cmdValidateInitArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("init does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the init command", err)
		return err
	}
	return nil
}

// cmdRunInit executes the init CLI command and updates the project configuration with any flags
func cmdRunInit(cmd *cobra.Command, args []string) error {
	// Check to see if --out flag was used and store the value of --out flag
	outputFlagUsed := cmd.Flags().Changed("out")
	outputPath, err := cmd.Flags().GetString("out")
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}
	// If we weren't provided an output path (flag was not used), we use our working directory
	if !outputFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the init command", err)
			return err
		}
		outputPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	projectConfig := config.GetDefaultProjectConfig()

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithInitFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	exists, err := utils.FileExists(outputPath)
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}
	if exists {
		// Prompt user for overwrite confirmation
		fmt.Print("The file already exists. Overwrite? (y/n): ")
		var response string
		if _, err := fmt.Scan(&response); err != nil {
			cmdLogger.Error("Failed to scan input", err)
			return err
		}

		if response != "y" && response != "Y" {
			fmt.Println("Operation canceled.")
			return nil
		}
	}

	// Write our project configuration
	err = projectConfig.WriteToFile(outputPath)
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	// Print a success message
	if absoluteOutputPath, err := filepath.Abs(outputPath); err == nil {
		outputPath = absoluteOutputPath
	}
	cmdLogger.Info("Project configuration successfully output to: ", colors.Bold, outputPath, colors.Reset)

	// Write an example program next to the configuration unless one is there already
	programPath := resolvePath(filepath.Dir(outputPath), projectConfig.Program.Path)
	exists, err = utils.FileExists(programPath)
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}
	if !exists {
		prog, err := exampleProgram(projectConfig.Exploration.InputPrefix)
		if err == nil {
			err = programfile.WriteFile(prog, programPath)
		}
		if err != nil {
			cmdLogger.Error("Failed to write the example program", err)
			return err
		}
		cmdLogger.Info("Example program successfully output to: ", colors.Bold, programPath, colors.Reset)
	}
	return nil
}

// exampleProgram creates a small program with one input branch and one derived branch.
func exampleProgram(inputPrefix string) (*program.Program, error) {
	input := inputPrefix + "1"
	return program.New("entry", []*program.BasicBlock{
		{
			ID: "entry",
			Instructions: []program.Instruction{
				program.Declare{Name: input},
				program.Declare{Name: "y"},
				program.Compare{Predicate: program.GT, Left: program.Var{Name: input}, Right: program.Const{Value: 5}},
			},
			Successors: []program.BlockID{"large", "small"},
		},
		{
			ID: "large",
			Instructions: []program.Instruction{
				program.Assign{Target: "y", Value: program.BinOp{Op: program.Mul, Left: program.Var{Name: input}, Right: program.Const{Value: 2}}},
			},
			Successors: []program.BlockID{"exit"},
		},
		{
			ID:         "small",
			Successors: []program.BlockID{"exit"},
		},
		{ID: "exit"},
	})
}
