package tracker

import (
	"errors"
	"fmt"
)

var (
	ErrNoTeam         = errors.New("no team selected")
	ErrTeamNotFound   = errors.New("team not found")
	ErrTeamExists     = errors.New("team already exists")
	ErrPlayerNotFound = errors.New("player not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrClockRunning   = errors.New("match clock is already running")
	ErrClockStopped   = errors.New("match clock is not running")
)

// ValidationError rejects user input. Nothing is mutated when one is returned.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
