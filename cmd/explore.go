package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/concolic-labs/pathfinder/cmd/exitcodes"
	"github.com/concolic-labs/pathfinder/concolic"
	"github.com/concolic-labs/pathfinder/concolic/config"
	"github.com/concolic-labs/pathfinder/concolic/corpus"
	"github.com/concolic-labs/pathfinder/logging"
	"github.com/concolic-labs/pathfinder/logging/colors"
	"github.com/concolic-labs/pathfinder/program/programfile"
	"github.com/concolic-labs/pathfinder/utils"
	"github.com/spf13/cobra"
	"golang.org/x/net/context"
)

// exploreCmd represents the command provider for exploration
var exploreCmd = &cobra.Command{
	Use:               "explore",
	Short:             "Explores the paths of a program",
	Long:              `Explores the paths of a program by alternating concrete execution and interval solving`,
	Args:              cmdValidateExploreArgs,
	ValidArgsFunction: cmdValidUnusedFlags,
	RunE:              cmdRunExplore,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the explore command
	err := addExploreFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the explore command", err)
	}

	// Add the explore command and its associated flags to the root command
	rootCmd.AddCommand(exploreCmd)
}

// cmdValidateExploreArgs makes sure that there are no positional arguments provided to the explore command
func cmdValidateExploreArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("explore does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the explore command", err)
		return err
	}
	return nil
}

// cmdRunExplore executes the CLI explore command: it resolves the project configuration, reads the program, runs a
// concolic.Driver until it stops and reports the generated inputs.
func cmdRunExplore(cmd *cobra.Command, args []string) error {
	projectConfig, configDirectory, err := readProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to run the explore command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithExploreFlags(cmd, projectConfig)
	if err == nil {
		err = projectConfig.Validate()
	}
	if err != nil {
		cmdLogger.Error("Failed to run the explore command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	logger, closeLogFile, err := setupLogging(projectConfig.Logging)
	if err != nil {
		cmdLogger.Error("Failed to set up logging", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	defer closeLogFile()

	// Read the program
	programPath := resolvePath(configDirectory, projectConfig.Program.Path)
	cmdLogger.Info("Reading the program at: ", colors.Bold, programPath, colors.Reset)
	prog, err := programfile.ReadFile(programPath)
	if err != nil {
		cmdLogger.Error("Failed to read the program", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	driver, err := concolic.NewDriver(prog, projectConfig.Exploration, logger.NewSubLogger("module", logging.EXPLORATION_SERVICE))
	if err != nil {
		cmdLogger.Error("Failed to create the driver", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	// Persist discovered paths if a corpus directory is configured
	if projectConfig.Exploration.CorpusDirectory != "" {
		corpusDirectory := resolvePath(configDirectory, projectConfig.Exploration.CorpusDirectory)
		c, err := corpus.Open(corpusDirectory, logger.NewSubLogger("module", logging.CORPUS_SERVICE))
		if err != nil {
			cmdLogger.Error("Failed to open the corpus", err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
		}
		defer c.Close()
		driver.AttachCorpus(c, programIdentifier(programPath))
	}

	// Stop exploring on keyboard interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	defer signal.Stop(c)
	go func() {
		select {
		case <-c:
			cmdLogger.Info("Interrupted, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	result, err := driver.Run(ctx)
	if err != nil {
		cmdLogger.Error("Exploration failed", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	printExploreResult(result, time.Since(start))

	// Execution and solver failures leave part of the program unexplored
	switch result.StopReason {
	case concolic.StopReasonExecutionFailed:
		return exitcodes.NewErrorWithExitCode(result.Err, exitcodes.ExitCodeExecutionFailed)
	case concolic.StopReasonSolverFailed:
		return exitcodes.NewErrorWithExitCode(result.Err, exitcodes.ExitCodeSolverFailed)
	}
	return nil
}

// setupLogging configures the global logger and the command logger from the logging configuration. Returns the
// logger to hand to the driver and a function that closes the log file, if one was opened.
func setupLogging(loggingConfig config.LoggingConfig) (*logging.Logger, func(), error) {
	if loggingConfig.NoColor {
		colors.DisableColor()
	}
	cmdLogger.SetLevel(loggingConfig.Level)

	logging.GlobalLogger = logging.NewLogger(loggingConfig.Level)
	logging.GlobalLogger.AddWriter(os.Stdout, logging.UNSTRUCTURED, !loggingConfig.NoColor)

	closeLogFile := func() {}
	if loggingConfig.LogDirectory != "" {
		filename := fmt.Sprintf("pathfinder-%d.log", time.Now().Unix())
		file, err := utils.CreateFile(loggingConfig.LogDirectory, filename)
		if err != nil {
			return nil, closeLogFile, err
		}
		logging.GlobalLogger.AddWriter(file, logging.STRUCTURED, false)
		closeLogFile = func() {
			logging.GlobalLogger.RemoveWriter(file, logging.STRUCTURED, false)
			file.Close()
		}
	}
	return logging.GlobalLogger, closeLogFile, nil
}

// printExploreResult reports the generated inputs and the summary of an exploration run.
func printExploreResult(result *concolic.Result, elapsed time.Duration) {
	for i, p := range result.Paths {
		cmdLogger.Info(colors.Bold, fmt.Sprintf("[%d] ", i+1), colors.Reset, p.Input, colors.DarkGray, " ", colors.LEFT_ARROW, " ", p.Path, colors.Reset)
	}
	if result.StopReason == concolic.StopReasonExecutionFailed {
		cmdLogger.Warn("Input ", result.FailedInput, " failed to execute: ", result.Err.Error())
	} else if result.StopReason == concolic.StopReasonSolverFailed {
		cmdLogger.Warn("Solving the next input after ", result.LastInput, " failed: ", result.Err.Error())
	}
	cmdLogger.Info(
		"Explored ", colors.Bold, len(result.Paths), colors.Reset, " path(s) in ",
		colors.Bold, result.Iterations, colors.Reset, " iteration(s) (", elapsed.Round(time.Millisecond), "), ",
		"block coverage ", colors.Bold, result.Coverage.StringFixed(2), "%", colors.Reset,
		", stopped: ", result.StopReason,
	)
}
