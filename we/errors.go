package we

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrPoisoned matches every error returned by a store after a scope panicked.
var ErrPoisoned = errors.New("store poisoned")

type PoisonedError struct {
	Cause any
}

func (e *PoisonedError) Error() string {
	return fmt.Sprintf("store poisoned: %v", e.Cause)
}

func (e *PoisonedError) Is(target error) bool {
	return target == ErrPoisoned
}

func CommandNotFound(command CommandName) CommandNotFoundError {
	return CommandNotFoundError{Command: command}
}

type CommandNotFoundError struct {
	Command CommandName
}

func (e CommandNotFoundError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Command)
}

type InvalidArgumentsError struct {
	Command CommandName
	Cause   error
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Command, e.Cause)
}

func (e *InvalidArgumentsError) Unwrap() error {
	return e.Cause
}

func InvalidArguments(command CommandName, cause error) error {
	return &InvalidArgumentsError{Command: command, Cause: cause}
}

func UnexpectedCommand(command Command) error {
	return errors.Errorf("unexpected command %s", CommandNameOf(command))
}
