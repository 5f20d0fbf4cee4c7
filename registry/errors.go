package registry

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v26/github"
)

// Condition classifies a failed repository host API call
type Condition int

const (
	// Unknown is any failure not covered by another condition
	Unknown Condition = iota

	// NotFound means the requested ref, file or repository does not exist
	NotFound

	// Conflict means the change clashes with existing state, ex., a file already exists
	// at the path or a ref with the name already exists
	Conflict

	// ValidationFailed means the host rejected the request's content
	ValidationFailed
)

// String implements fmt.Stringer
func (c Condition) String() string {
	switch c {
	case NotFound:
		return "not found"
	case Conflict:
		return "conflict"
	case ValidationFailed:
		return "validation failed"
	default:
		return "unknown"
	}
}

// Error is returned by RepoHost implementations
type Error struct {
	// Op is the operation which failed, ex., create-ref
	Op string

	// Condition classifies the failure
	Condition Condition

	// Err is the underlying error
	Err error
}

// Error implements error
func (e *Error) Error() string {
	return fmt.Sprintf("%s failed (%s): %s", e.Op, e.Condition, e.Err.Error())
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// ConditionOf returns the Condition of a RepoHost error, Unknown for any other error
func ConditionOf(err error) Condition {
	if regErr, ok := err.(*Error); ok {
		return regErr.Condition
	}

	return Unknown
}

// opCreateRef is the operation name of branch creation
const opCreateRef = "create-ref"

// existsMessages are fragments of GitHub 422 messages which mean the target already exists
var existsMessages = []string{
	"\"sha\" wasn't supplied",
	"reference already exists",
}

// classify wraps a go-github error in an Error. This is the only place GitHub error
// bodies are inspected.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	regErr := &Error{
		Op:        op,
		Condition: Unknown,
		Err:       err,
	}

	ghErr, ok := err.(*github.ErrorResponse)
	if !ok || ghErr.Response == nil {
		return regErr
	}

	switch ghErr.Response.StatusCode {
	case http.StatusNotFound:
		regErr.Condition = NotFound
	case http.StatusConflict:
		// The contents API answers 409 when the branch head moved, which is not an
		// existing file
		if op == opCreateRef {
			regErr.Condition = Conflict
		}
	case http.StatusUnprocessableEntity:
		regErr.Condition = ValidationFailed

		msg := strings.ToLower(ghErr.Message)
		for _, exists := range existsMessages {
			if strings.Contains(msg, strings.ToLower(exists)) {
				regErr.Condition = Conflict
				break
			}
		}
	}

	return regErr
}
