package userconf

import (
	"errors"
	"fmt"

	eng "github.com/reoring/userconf/internal/engine"
)

// DuplicateKeyPolicy decides what happens when an object repeats a key.
type DuplicateKeyPolicy int

const (
	// DuplicateIgnore keeps the last occurrence, like encoding/json.
	DuplicateIgnore DuplicateKeyPolicy = iota
	// DuplicateError rejects the input as a syntax failure.
	DuplicateError
)

// ParseOpt tunes the syntax stage. The zero value enforces nothing and uses
// the current global driver.
type ParseOpt struct {
	Driver         JSONDriver
	MaxDepth       int
	MaxBytes       int64
	OnDuplicateKey DuplicateKeyPolicy
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

// DecodeJSON is the syntax stage: it turns text into the untyped value tree
// (nil, bool, json.Number, string, []any, map[string]any). Every failure,
// including a panicking driver, is reported as a KindSyntax issue.
func DecodeJSON(input string, opts ...ParseOpt) (res Result[any]) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(input)) > opt.MaxBytes {
		return Fail[any](Issue{
			Kind:    KindSyntax,
			Code:    CodeTooLarge,
			Path:    "/",
			Index:   -1,
			Message: MsgInvalidJSON + ": max bytes exceeded at /",
		})
	}
	drv := opt.Driver
	if drv == nil {
		drv = CurrentJSONDriver()
	}

	defer func() {
		if r := recover(); r != nil {
			res = Fail[any](syntaxIssue(fmt.Errorf("json driver %s panicked: %v", drv.Name(), r)))
		}
	}()

	src := eng.WrapWithEnforcement(drv.NewBytes([]byte(input)), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
	})
	v, err := eng.DecodeAny(src)
	if err != nil {
		var le *eng.LimitError
		if errors.As(err, &le) {
			return Fail[any](limitIssue(le))
		}
		return Fail[any](syntaxIssue(err))
	}
	return Ok(v)
}

// ParseJSON composes the syntax stage with a schema.
func ParseJSON[T any](s Schema[T], input string, opts ...ParseOpt) Result[T] {
	raw := DecodeJSON(input, opts...)
	v, ok := raw.Value()
	if !ok {
		return failAs[T](raw)
	}
	return s.Check(v)
}

func toEngineDup(p DuplicateKeyPolicy) eng.DuplicateStrictness {
	if p == DuplicateError {
		return eng.DupError
	}
	return eng.DupIgnore
}

func limitIssue(le *eng.LimitError) Issue {
	code := CodeParseError
	switch le.Code {
	case eng.CodeDuplicateKey:
		code = CodeDuplicateKey
	case eng.CodeTooDeep:
		code = CodeTooDeep
	}
	return Issue{
		Kind:    KindSyntax,
		Code:    code,
		Path:    le.Path,
		Index:   -1,
		Message: fmt.Sprintf("%s: %s at %s", MsgInvalidJSON, le.Message, le.Path),
		Cause:   le,
	}
}
