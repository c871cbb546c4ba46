package mapkeeper

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrInvariantViolation marks failures caused by the registry and
	// the storage engine disagreeing with each other. They point to a
	// bug rather than to a failing engine.
	ErrInvariantViolation = errors.New("registry invariant violated")
)

func invariantViolation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// fail logs err and collapses it to the Error code
func fail(logger *zap.Logger, err error) ResponseCode {
	if errors.Is(err, ErrInvariantViolation) {
		logger.Error("invariant violation", zap.Bool("invariant", true), zap.Error(err))
	} else {
		logger.Error("engine failure", zap.Error(err))
	}

	return Error
}
