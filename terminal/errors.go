package terminal

import "fmt"

// IOError reports a failed terminal operation: size query, mode switch, cursor move or write
// It is the only error kind the package returns; callers match it with errors.As
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ioErr wraps err as an *IOError, nil stays nil
func ioErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}
