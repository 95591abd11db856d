package config

import (
	"github.com/rs/zerolog"
)

// GetDefaultProjectConfig obtains a default configuration for a project.
func GetDefaultProjectConfig() *ProjectConfig {
	projectConfig := &ProjectConfig{
		Program: ProgramConfig{
			Path: "program.yaml",
		},
		Exploration: ExplorationConfig{
			MinRange:        -100,
			MaxRange:        100,
			InputPrefix:     "a",
			InputVariables:  []string{},
			MaxBlockSteps:   10_000,
			MaxIterations:   1_000,
			Seed:            nil,
			Timeout:         0,
			CorpusDirectory: "",
		},
		Logging: LoggingConfig{
			Level:        zerolog.InfoLevel,
			LogDirectory: "",
			NoColor:      false,
		},
	}

	return projectConfig
}
