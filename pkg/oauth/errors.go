package oauth

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Entity names used in schema validation errors.
const (
	entityServerMetadata    = "authorization server metadata"
	entityTokenResponse     = "token response"
	entityClientInformation = "client information"
)

// SchemaValidationError indicates a server response that is missing a
// required field or carries a mistyped one. Validation is atomic: no
// partially valid object is ever returned alongside this error.
type SchemaValidationError struct {
	// Entity is the response entity that failed validation.
	Entity string

	// Field is the offending field, when known.
	Field string

	// cause is the underlying decode error, when the body failed to parse.
	cause error
}

// Error implements the error interface.
func (e *SchemaValidationError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("invalid %s: missing required field %q", e.Entity, e.Field)
	case e.cause != nil:
		return fmt.Sprintf("invalid %s: %v", e.Entity, e.cause)
	}
	return fmt.Sprintf("invalid %s", e.Entity)
}

// Unwrap returns the underlying decode error, if any.
func (e *SchemaValidationError) Unwrap() error {
	return e.cause
}

func newSchemaValidationError(entity, field string) *SchemaValidationError {
	return &SchemaValidationError{Entity: entity, Field: field}
}

// schemaErrorFromDecode converts JSON decode failures into a
// SchemaValidationError for the given entity. Transport and HTTP errors are
// passed through unchanged.
func schemaErrorFromDecode(entity string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &SchemaValidationError{Entity: entity, Field: typeErr.Field, cause: typeErr}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &SchemaValidationError{Entity: entity, cause: syntaxErr}
	}
	return err
}

// CapabilityMismatchError indicates that server-advertised metadata lacks a
// capability this flow requires.
type CapabilityMismatchError struct {
	// Capability names the missing capability, e.g. "response type code".
	Capability string
}

// Error implements the error interface.
func (e *CapabilityMismatchError) Error() string {
	return fmt.Sprintf("authorization server does not support %s", e.Capability)
}

// IsCapabilityMismatch checks if an error is a CapabilityMismatchError.
func IsCapabilityMismatch(err error) bool {
	var mismatchErr *CapabilityMismatchError
	return errors.As(err, &mismatchErr)
}
