package librarian

import (
	"fmt"
	"strings"

	"librarian/internal/catalog"
	"librarian/internal/vcache"
)

// Malformed persisted state is fatal at load time. Both sentinels are
// matchable with errors.Is through any wrapping CommandError.
var (
	ErrMalformedCatalog = catalog.ErrMalformed
	ErrMalformedCache   = vcache.ErrMalformed
)

type CommandError struct {
	message string
	cause   error
}

func (e *CommandError) Error() string {
	var msg strings.Builder
	fmt.Fprint(&msg, e.message)
	if e.cause != nil {
		fmt.Fprint(&msg, ": ", e.cause)
	}
	return msg.String()
}

func (e *CommandError) Unwrap() error {
	return e.cause
}

func newCommandError(message string, cause error) *CommandError {
	return &CommandError{message: message, cause: cause}
}
