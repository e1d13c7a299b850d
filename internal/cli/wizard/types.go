// Package wizard provides the interactive prompt sequence used by
// `skel new` when running on a terminal.
package wizard

import "errors"

// Result holds the user's selections from the new-project wizard.
type Result struct {
	ProjectName string // project name (required)
	Language    string // source language: c, cpp
	LinkMode    string // header include mode: absolute, relative

	LibraryURL  string // utility-library repository URL (empty skips the dependency)
	Graphics    bool   // vendor the graphics library
	GraphicsURL string // graphics-library repository URL

	RemoteURL string // version-control remote URL (empty skips git setup)
}

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
)

// Question defines a single wizard question.
type Question struct {
	ID          string              // unique identifier
	Type        QuestionType        // Select or Input
	Title       string              // question title
	Description string              // additional description
	Options     []Option            // options for select questions
	Default     string              // default value
	Required    bool                // whether the field is required
	Condition   func(*Result) bool  // condition for showing this question
}

// Option represents a selectable option.
type Option struct {
	Label string // display label
	Value string // actual value stored
	Desc  string // optional description
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
)
