package logging

// These constants are used to identify the various services that may do some logging. They are used as the value of
// the "module" key of a sub-logger.
const (
	// CLI_SERVICE is the constant used to identify the cmd package
	CLI_SERVICE = "cli"
	// EXPLORATION_SERVICE is the constant used to identify the concolic driver
	EXPLORATION_SERVICE = "exploration"
	// INTERPRETER_SERVICE is the constant used to identify the concrete interpreter
	INTERPRETER_SERVICE = "interpreter"
	// SOLVER_SERVICE is the constant used to identify the interval solver
	SOLVER_SERVICE = "solver"
	// CORPUS_SERVICE is the constant used to identify the generated input corpus
	CORPUS_SERVICE = "corpus"
)
