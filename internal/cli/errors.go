package cli

import (
	"github.com/matzehuels/curricula/pkg/errors"
)

// ErrorMessage renders err for the terminal. Search outcomes are reported
// by their user message alone; everything else keeps its full chain, which
// names the file or flag at fault.
func ErrorMessage(err error) string {
	classified := errors.Classify(err)
	switch errors.GetCode(classified) {
	case errors.ErrCodeInfeasible, errors.ErrCodeLimitReached, errors.ErrCodeCanceled:
		return errors.UserMessage(classified)
	case errors.ErrCodeInternal, errors.ErrCodeNotFound:
		return err.Error()
	}
	return errors.UserMessage(classified)
}
