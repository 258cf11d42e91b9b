package main

// Exit codes
const (
	ExitSuccess       = 0 // Success
	ExitError         = 1 // General error (invalid arguments, I/O failure)
	ExitConfigError   = 2 // Token or channel missing, config file unreadable
	ExitDispatchError = 3 // Discord request failed or returned an unexpected body
)

// exitError pairs an error with the exit code it maps to.
type exitError struct {
	code       int
	err        error
	suggestion string
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// withExitCode wraps err so main exits with code.
func withExitCode(code int, err error, suggestion string) error {
	return &exitError{code: code, err: err, suggestion: suggestion}
}
