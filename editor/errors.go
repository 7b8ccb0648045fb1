package editor

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// ErrUnknownCommand is the cause of errors returned for commands that no
// registered plugin declares.
var ErrUnknownCommand = errors.New("unknown command")

const (
	unknownCommandCode = "EDITOR_UNKNOWN_COMMAND"
	invalidOptionsCode = "EDITOR_INVALID_OPTIONS"
)

func unknownCommandError(name string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", ErrUnknownCommand, name),
		goerrors.CategoryCommand, "command dispatch failed").
		WithTextCode(unknownCommandCode)
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "editor options validation failed").
		WithTextCode(invalidOptionsCode)
}
