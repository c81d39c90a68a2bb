package userconf

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind separates malformed input from well-formed input that violates a schema.
type Kind int

const (
	// KindSyntax means the input is not well-formed JSON (or breaks a ParseOpt limit).
	KindSyntax Kind = iota + 1
	// KindShape means the input is well-formed JSON but does not match the schema.
	KindShape
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindShape:
		return "shape"
	default:
		return "unknown"
	}
}

// Issue codes
const (
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTooDeep      = "too_deep"
	CodeTooLarge     = "too_large"
	CodeRequired     = "required"
	CodeInvalidType  = "invalid_type"
	CodeInvalidEnum  = "invalid_enum"
	CodeNotObject    = "not_object"
	CodeNotArray     = "not_array"
	CodeUnset        = "unset"
)

// MsgInvalidJSON is the message carried by every plain syntax failure.
const MsgInvalidJSON = "Invalid JSON"

// MsgUnset is reported by a Result that was never assigned.
const MsgUnset = "result not set"

// Issue is the single diagnostic returned by a failed validation.
type Issue struct {
	Kind    Kind
	Code    string
	Path    string // JSON Pointer of the offending value ("" for the root).
	Field   string // Schema field name, when the issue concerns one.
	Index   int    // Index of the failing element for sequences, -1 otherwise.
	Message string
	Cause   error // Optional: underlying decoder error.
}

// Error returns the message verbatim; it is part of the observable contract.
func (i Issue) Error() string { return i.Message }

// Unwrap exposes the underlying cause, if any.
func (i Issue) Unwrap() error { return i.Cause }

// IsSyntax reports whether the issue was raised by the syntax stage.
func (i Issue) IsSyntax() bool { return i.Kind == KindSyntax }

// AtIndex re-tags an element issue with its position in the enclosing array.
func (i Issue) AtIndex(idx int) Issue {
	i.Index = idx
	i.Path = "/" + strconv.Itoa(idx) + i.Path
	i.Message = fmt.Sprintf("At index %d: %s", idx, i.Message)
	return i
}

// AsIssue extracts an Issue from an error using errors.As internally.
func AsIssue(err error) (Issue, bool) {
	if err == nil {
		return Issue{}, false
	}
	var iss Issue
	if errors.As(err, &iss) {
		return iss, true
	}
	return Issue{}, false
}

func syntaxIssue(cause error) Issue {
	return Issue{Kind: KindSyntax, Code: CodeParseError, Index: -1, Message: MsgInvalidJSON, Cause: cause}
}

func shapeIssue(code, field, msg string) Issue {
	iss := Issue{Kind: KindShape, Code: code, Field: field, Index: -1, Message: msg}
	if field != "" {
		iss.Path = "/" + escapePointer(field)
	}
	return iss
}

// MissingField reports an absent required key.
func MissingField(name string) Issue {
	return shapeIssue(CodeRequired, name, "Missing field: "+name)
}

// InvalidType reports a present key whose value has the wrong JSON type.
func InvalidType(name, expected string) Issue {
	return shapeIssue(CodeInvalidType, name, fmt.Sprintf("Invalid type for %s (expected %s)", name, expected))
}
