package submission

// Kind classifies why a submission did not open a pull request
type Kind int

const (
	// Fatal failures are unexpected, the branch may have been left behind
	Fatal Kind = iota

	// Conflict means a branch for identical content already exists
	Conflict

	// FilesExist means a file in the change set already exists at its path in the fork.
	// The branch was deleted.
	FilesExist
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case Conflict:
		return "conflict"
	case FilesExist:
		return "files exist"
	default:
		return "fatal"
	}
}

// Messages shown to submitters
const (
	MsgDuplicate  = "A PR already exists with these config!"
	MsgFilesExist = "Files already exists in this path, please check the registry for these files or logo"
)

// Error is returned by Orchestrator.Submit
type Error struct {
	// Kind classifies the failure
	Kind Kind

	// Message is safe to show to the submitter
	Message string

	// Err is the underlying error, may be nil
	Err error
}

// Error implements error
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// fatal wraps err as a Fatal Error
func fatal(what string, err error) *Error {
	return &Error{
		Kind:    Fatal,
		Message: what,
		Err:     err,
	}
}
