package userconf

import (
	j "github.com/goccy/go-json"
)

// Result carries either a validated value or the Issue that stopped
// validation. Exactly one side is populated. The zero Result, which only
// appears as a declared-but-unset variable, reads as a failure carrying
// CodeUnset.
type Result[T any] struct {
	value T
	issue *Issue
	ok    bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] { return Result[T]{value: v, ok: true} }

// Fail wraps a diagnostic.
func Fail[T any](iss Issue) Result[T] { return Result[T]{issue: &iss} }

// OK reports whether the result carries a value.
func (r Result[T]) OK() bool { return r.ok }

// Value returns the value and true on success, the zero value and false otherwise.
func (r Result[T]) Value() (T, bool) { return r.value, r.ok }

// Issue returns the diagnostic and true on failure.
func (r Result[T]) Issue() (Issue, bool) {
	if r.ok {
		return Issue{}, false
	}
	return r.failure(), true
}

// Error returns the diagnostic message, or "" on success.
func (r Result[T]) Error() string {
	if r.ok {
		return ""
	}
	return r.failure().Message
}

// Unwrap converts the result to Go's (value, error) convention.
func (r Result[T]) Unwrap() (T, error) {
	if !r.ok {
		var zero T
		return zero, r.failure()
	}
	return r.value, nil
}

func (r Result[T]) failure() Issue {
	if r.issue == nil {
		return Issue{Code: CodeUnset, Index: -1, Message: MsgUnset}
	}
	return *r.issue
}

// failAs re-types a failed result.
func failAs[T, U any](r Result[U]) Result[T] {
	iss := r.failure()
	return Result[T]{issue: &iss}
}

type wireOK[T any] struct {
	OK    bool `json:"ok"`
	Value T    `json:"value"`
}

type wireErr struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Code  string `json:"code"`
	Path  string `json:"path,omitempty"`
}

// MarshalJSON renders {"ok":true,"value":...} or {"ok":false,"error":...}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.ok {
		return j.Marshal(wireOK[T]{OK: true, Value: r.value})
	}
	iss := r.failure()
	return j.Marshal(wireErr{
		Error: iss.Message,
		Kind:  iss.Kind.String(),
		Code:  iss.Code,
		Path:  iss.Path,
	})
}
