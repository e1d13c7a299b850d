package template

import "errors"

// Error definitions for the template package.
var (
	// ErrTemplateNotFound is returned when a named template does not exist
	// in the backing filesystem.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingTemplateKey is returned when a template references a key
	// that is absent from the render context.
	ErrMissingTemplateKey = errors.New("template key missing")

	// ErrUnexpandedToken is returned when rendered output still contains
	// an unexpanded substitution token.
	ErrUnexpandedToken = errors.New("unexpanded token in rendered output")
)
