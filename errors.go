package batch

import (
	"fmt"

	"github.com/tychoish/fun/ers"
)

// GeneratorError is the failure captured by a producer when computing the
// value at Index failed. The failure is terminal for that producer.
//
// Panics raised while computing a value are captured as well; the cause of
// the error then matches ers.ErrRecoveredPanic.
type GeneratorError struct {
	Index int
	Err   error
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("batch: generator failed at index %d: %v", e.Index, e.Err)
}

func (e *GeneratorError) Unwrap() error { return e.Err }

// violate raises a programming error. The panic value matches
// ers.ErrInvariantViolation and is never captured as a GeneratorError.
func violate(msg string) {
	panic(ers.NewInvariantViolation("batch: " + msg))
}

// recoverPanic converts the recovered value r into an error, re-panicking
// invariant violations.
func recoverPanic(r any) error {
	if ers.IsInvariantViolation(r) {
		panic(r)
	}
	return ers.ParsePanic(r)
}
