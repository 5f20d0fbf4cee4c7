package parsing

import (
	"fmt"
)

// ParseError provides details about a submission which could not be parsed. ParseErrors are
// meant to be presented to users.
type ParseError struct {
	// What indicates the part of the submission that failed to be parsed, ex., the
	// `prBody.username` field.
	What string

	// Why indicates why the object failed to be parsed. Can be empty if What is enough
	// for the user to understand the problem.
	Why string

	// InternalError is a non user presentable error which will be logged for
	// debug purposes. Can be nil.
	InternalError error
}

// Error returns an internal error string which should not be shown to the user
func (e ParseError) Error() string {
	if e.InternalError != nil {
		return fmt.Sprintf("%s (%s)", e.UserError(), e.InternalError.Error())
	}

	return e.UserError()
}

// UserError returns an error string meant to be displayed to the user
func (e ParseError) UserError() string {
	if len(e.Why) == 0 {
		return fmt.Sprintf("Invalid %s", e.What)
	}

	return fmt.Sprintf("Invalid %s: %s", e.What, e.Why)
}
