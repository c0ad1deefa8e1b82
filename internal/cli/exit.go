package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/trisolve/pkg/errors"
)

// Exit statuses returned by [ExitCode].
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2   // malformed input, flags or config
	ExitNoSolve   = 3   // the measures describe no triangle
	ExitCancelled = 130 // standard shell convention for SIGINT
)

// ExitCode maps an error returned by a command to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitCancelled
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidTriangle, errors.ErrCodeInvalidAngleSum:
		return ExitNoSolve
	case errors.ErrCodeInvalidMeasure, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidViewport, errors.ErrCodeInvalidConfig,
		errors.ErrCodeFileNotFound:
		return ExitUsage
	}
	return ExitFailure
}
