package jsonedit

import (
	"errors"
	"fmt"
)

// Path errors
var (
	// ErrNotFound indicates that a segment of a NodeID does not exist on its container.
	ErrNotFound = errors.New("node not found")

	// ErrTypeNotIndexable indicates that a non-terminal segment addresses a primitive or null.
	ErrTypeNotIndexable = errors.New("value is not indexable")

	// ErrInvalidNodeID indicates that a NodeID does not start with the root segment.
	ErrInvalidNodeID = errors.New("invalid node id")
)

// Validation errors
var (
	// ErrKeyRequired indicates that an object insertion was attempted without a key.
	ErrKeyRequired = errors.New("key required")

	// ErrInvalidLeaf indicates that leaf input text does not match the declared type.
	ErrInvalidLeaf = errors.New("invalid value for type")

	// ErrUnknownType indicates that a type name is not one of the six JSON types.
	ErrUnknownType = errors.New("unknown value type")
)

// Structural errors
var (
	// ErrKeyCollision indicates that a rename target already exists on the parent object.
	ErrKeyCollision = errors.New("key already exists")

	// ErrRootReplacementUnsupported indicates an attempt to replace the root with a primitive or null.
	ErrRootReplacementUnsupported = errors.New("root must remain an object or array")

	// ErrUnsupportedOperation indicates an operation that is not legal at the addressed node.
	ErrUnsupportedOperation = errors.New("operation not supported on this node")
)

// Clipboard errors
var (
	// ErrNothingSelected indicates that copy or cut was requested with an empty selection.
	ErrNothingSelected = errors.New("nothing selected")

	// ErrClipboardUnavailable indicates that the system clipboard cannot be reached.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)

// PathError records a NodeID that could not be resolved against a document.
type PathError struct {
	ID      NodeID
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("path %q: %v", string(e.ID), e.Err)
	}
	return fmt.Sprintf("path %q at segment %q: %v", string(e.ID), e.Segment, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// ParseError represents invalid JSON text. The last valid document stays
// authoritative while text carries a ParseError.
type ParseError struct {
	Message string
	Offset  int
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// ValidationError reports input that does not fit the declared type or a
// missing required key.
type ValidationError struct {
	Type  ValueType
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err == ErrKeyRequired {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %q is not a valid %s", e.Err, e.Input, e.Type)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsPathError reports whether err stems from a stale or malformed NodeID.
func IsPathError(err error) bool {
	var pe *PathError
	return errors.As(err, &pe)
}

// IsParseError reports whether err is a JSON text parse failure.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsValidationError reports whether err rejects user input for a field.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func pathErr(id NodeID, segment string, err error) error {
	return &PathError{ID: id, Segment: segment, Err: err}
}
