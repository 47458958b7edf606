package dispatch

import "fmt"

// SpawnError reports that the OS failed to start the external command in
// a target directory. Distinct from the command itself exiting non-zero,
// which is the external tool's business to report.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start command in %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
