package exitcodes

import "github.com/pkg/errors"

// ErrorWithExitCode attaches the process exit code to an error returned by a command. The error may be wrapped
// further on its way up to main.
type ErrorWithExitCode struct {
	// err is the error being reported, may be nil
	err error

	// exitCode is the code the process exits with
	exitCode int
}

// NewErrorWithExitCode creates an ErrorWithExitCode for err that exits with exitCode.
func NewErrorWithExitCode(err error, exitCode int) *ErrorWithExitCode {
	return &ErrorWithExitCode{err: err, exitCode: exitCode}
}

// Error returns the message of the inner error, or an empty string if there is none.
func (e *ErrorWithExitCode) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

// Unwrap returns the inner error.
func (e *ErrorWithExitCode) Unwrap() error {
	return e.err
}

// ExitCode returns the code the process exits with.
func (e *ErrorWithExitCode) ExitCode() int {
	return e.exitCode
}

// GetInnerErrorAndExitCode resolves the error main should report and the code the process should exit with.
// A nil error exits with ExitCodeSuccess. If an ErrorWithExitCode is found anywhere in the chain of err, its inner
// error and exit code are returned. Any other error exits with ExitCodeGeneralError.
func GetInnerErrorAndExitCode(err error) (error, int) {
	if err == nil {
		return nil, ExitCodeSuccess
	}
	var withCode *ErrorWithExitCode
	if errors.As(err, &withCode) {
		return withCode.err, withCode.exitCode
	}
	return err, ExitCodeGeneralError
}
