package config

import (
	"errors"
	"fmt"
)

// ParseError reports a malformed configuration document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed config document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFieldError reports a required field absent from the document.
// Field is the dotted path of the missing key, e.g. "Dataset.Train.batch_size".
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %s", e.Field)
}

// ValidationError reports a field whose value violates a schema constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

// prefixField prepends a section name to the field path carried by a
// validation or missing-field error, so errors surfaced from nested sections
// name the full path.
func prefixField(err error, section string) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		ve.Field = section + "." + ve.Field
		return err
	}
	var me *MissingFieldError
	if errors.As(err, &me) {
		me.Field = section + "." + me.Field
		return err
	}
	return fmt.Errorf("%s: %w", section, err)
}
