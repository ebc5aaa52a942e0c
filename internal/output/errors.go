package output

// Exit codes. Scripted callers branch on success or failure only; the
// failure detail lives in the stderr message, not the code.
const (
	ExitOK    = 0
	ExitError = 1
)

// CLIError represents a structured error with an optional user-facing hint
type CLIError struct {
	Message string
	Hint    string
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// NewCLIError creates a new CLIError
func NewCLIError(msg string) *CLIError {
	return &CLIError{Message: msg}
}

// WithHint adds a user-facing hint to the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// PrintCLIError prints the error and its hint, if any, via the formatter
func PrintCLIError(formatter Formatter, err error) {
	formatter.PrintError(err)
	if cliErr, ok := err.(*CLIError); ok && cliErr.Hint != "" {
		formatter.PrintHint(cliErr.Hint)
	}
}
