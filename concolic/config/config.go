package config

import (
	"encoding/json"
	"os"

	"github.com/Masterminds/semver"
	"github.com/concolic-labs/pathfinder/solver"
	"github.com/concolic-labs/pathfinder/version"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ProjectConfig describes the configuration of an exploration project.
type ProjectConfig struct {
	// RequiredVersion describes a semantic version constraint, such as ">= 0.2.0", that the running version must
	// satisfy. An empty value accepts any version.
	RequiredVersion string `json:"requiredVersion,omitempty"`

	// Program describes where the program to explore is read from.
	Program ProgramConfig `json:"program"`

	// Exploration describes the configuration used by the concolic driver.
	Exploration ExplorationConfig `json:"exploration"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging"`
}

// ProgramConfig describes the program under test.
type ProgramConfig struct {
	// Path describes the path of the program file, relative to the working directory.
	Path string `json:"path"`
}

// ExplorationConfig describes the configuration options used by the concolic.Driver.
type ExplorationConfig struct {
	// MinRange describes the smallest value an input or intermediate variable is assumed to take.
	MinRange int64 `json:"minRange"`

	// MaxRange describes the largest value an input or intermediate variable is assumed to take.
	MaxRange int64 `json:"maxRange"`

	// InputPrefix describes the prefix that identifies input variables among the names declared in the entry block.
	InputPrefix string `json:"inputPrefix"`

	// InputVariables describes an explicit list of input variables. If non-empty, it is used instead of InputPrefix.
	InputVariables []string `json:"inputVariables"`

	// MaxBlockSteps describes the amount of blocks a single execution may visit before it is considered
	// non-terminating.
	MaxBlockSteps int `json:"maxBlockSteps"`

	// MaxIterations describes the amount of driver iterations after which exploration stops with the paths found so
	// far.
	MaxIterations int `json:"maxIterations"`

	// Seed describes the seed of the random provider used for the initial assignment and for sampling solutions. If
	// nil, a time based seed is used.
	Seed *int64 `json:"seed"`

	// Timeout describes a time in seconds for which exploration should run. Providing negative or zero value
	// will result in no timeout.
	Timeout int `json:"timeout"`

	// CorpusDirectory describes the folder the generated inputs are persisted to. If empty, nothing is persisted.
	CorpusDirectory string `json:"corpusDirectory"`
}

// LoggingConfig describes the configuration options for logging to console and file
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	// Increasing level values represent more severe logs
	Level zerolog.Level `json:"level"`

	// LogDirectory describes what directory log files should be outputted in. LogDirectory being a non-empty string
	// is equivalent to enabling file logging.
	LogDirectory string `json:"logDirectory"`

	// NoColor indicates whether log messages should be displayed with colored formatting.
	NoColor bool `json:"noColor"`
}

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path. Fields missing from the
// file keep their default values.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	// Read our project configuration file data
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Parse the project configuration on top of the defaults
	projectConfig := GetDefaultProjectConfig()
	err = json.Unmarshal(b, projectConfig)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
func (p *ProjectConfig) WriteToFile(path string) error {
	// Serialize the configuration
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	// Save it to the provided output path and return the result
	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Validate validates that the ProjectConfig meets certain requirements.
func (p *ProjectConfig) Validate() error {
	if err := p.validateRequiredVersion(); err != nil {
		return err
	}
	return p.Exploration.Validate()
}

// validateRequiredVersion checks the running version against the RequiredVersion constraint.
func (p *ProjectConfig) validateRequiredVersion() error {
	if p.RequiredVersion == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(p.RequiredVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid required version %q", p.RequiredVersion)
	}
	running, err := semver.NewVersion(version.Version)
	if err != nil {
		return errors.Wrapf(err, "invalid running version %q", version.Version)
	}
	if !constraint.Check(running) {
		return errors.Errorf("version %s does not satisfy the required version %q", version.Version, p.RequiredVersion)
	}
	return nil
}

// Validate validates that the ExplorationConfig meets certain requirements.
func (e *ExplorationConfig) Validate() error {
	// Verify the range is well-formed and small enough to be materialized
	if e.MinRange > e.MaxRange {
		return errors.Errorf("minimum range %d cannot be greater than maximum range %d", e.MinRange, e.MaxRange)
	}
	if uint64(e.MaxRange-e.MinRange) >= solver.MaxUniverseSize {
		return errors.Errorf("range [%d, %d] cannot hold more than %d values", e.MinRange, e.MaxRange, solver.MaxUniverseSize)
	}

	// Verify the budgets are positive numbers
	if e.MaxBlockSteps <= 0 {
		return errors.Errorf("max block steps must be a positive number")
	}
	if e.MaxIterations <= 0 {
		return errors.Errorf("max iterations must be a positive number")
	}

	// Verify inputs are either named or discoverable
	if len(e.InputVariables) == 0 && e.InputPrefix == "" {
		return errors.Errorf("must specify an input prefix or one or more input variables")
	}
	for _, name := range e.InputVariables {
		if name == "" {
			return errors.Errorf("input variable names cannot be empty")
		}
	}
	return nil
}
