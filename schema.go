package userconf

import (
	"fmt"
	"strings"
)

// Schema checks an untyped value tree and produces a typed value.
// Implementations must not panic and must report the first violation only.
type Schema[T any] interface {
	Check(v any) Result[T]
}

// SchemaFunc adapts a plain function to Schema.
type SchemaFunc[T any] func(v any) Result[T]

// Check calls f(v).
func (f SchemaFunc[T]) Check(v any) Result[T] { return f(v) }

// Messages reported by CheckRecord.
const (
	MsgObjectNull = "must be an object and not null"
	MsgNotObject  = "must be an object, not an array/primitive"
)

// CheckRecord accepts JSON objects only. null, arrays and primitives are
// shape issues.
func CheckRecord(v any) Result[map[string]any] {
	switch t := v.(type) {
	case map[string]any:
		return Ok(t)
	case nil:
		return Fail[map[string]any](shapeIssue(CodeNotObject, "", MsgObjectNull))
	default:
		return Fail[map[string]any](shapeIssue(CodeNotObject, "", MsgNotObject))
	}
}

// RequiredString reads a required string field.
func RequiredString(m map[string]any, name string) Result[string] {
	raw, ok := m[name]
	if !ok {
		return Fail[string](MissingField(name))
	}
	s, ok := raw.(string)
	if !ok {
		return Fail[string](InvalidType(name, "string"))
	}
	return Ok(s)
}

// RequiredEnum reads a required field whose value must be one of allowed.
// A present value of any other type or content is reported as
// "Invalid <name> (expected a|b|c)".
func RequiredEnum[E ~string](m map[string]any, name string, allowed []E) Result[E] {
	raw, ok := m[name]
	if !ok {
		return Fail[E](MissingField(name))
	}
	if s, ok := raw.(string); ok {
		for _, a := range allowed {
			if string(a) == s {
				return Ok(a)
			}
		}
	}
	return Fail[E](InvalidEnum(name, allowed))
}

// InvalidEnum reports a value outside the enumeration.
func InvalidEnum[E ~string](name string, allowed []E) Issue {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return shapeIssue(CodeInvalidEnum, name, fmt.Sprintf("Invalid %s (expected %s)", name, strings.Join(names, "|")))
}

// ArrayOf lifts an element schema to a JSON array of entity. The first failing
// element aborts the whole check and its issue is tagged with the index.
func ArrayOf[T any](elem Schema[T], entity string) Schema[[]T] {
	return SchemaFunc[[]T](func(v any) Result[[]T] {
		arr, ok := v.([]any)
		if !ok {
			iss := shapeIssue(CodeNotArray, "", "expected an array of "+entity)
			return Fail[[]T](iss)
		}
		out := make([]T, 0, len(arr))
		for i, ev := range arr {
			r := elem.Check(ev)
			item, ok := r.Value()
			if !ok {
				iss, _ := r.Issue()
				return Fail[[]T](iss.AtIndex(i))
			}
			out = append(out, item)
		}
		return Ok(out)
	})
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(s string) string { return pointerEscaper.Replace(s) }
