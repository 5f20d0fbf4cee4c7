package validation

// ValidatorDescriber provides basic information about a validator
type ValidatorDescriber interface {
	// Name returns the name of the validator
	Name() string

	// Summary returns a short description of what the check does
	Summary() string
}

// ContentValidator checks the content of a file submitted to the registry
type ContentValidator interface {
	ValidatorDescriber

	// Validate returns nil if content is a valid YAML or JSON document for the
	// validator's schema
	Validate(content []byte) error
}
