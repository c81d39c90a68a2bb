package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource to apply duplicate key handling and
// max depth checks in a streaming fashion. Input size is bounded by callers
// before tokenizing.

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupError
)

// Limit codes carried by LimitError.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeTooDeep      = "too_deep"
)

// EnforceOptions controls runtime enforcement behavior. Zero values disable
// the corresponding check.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
}

// Enabled reports whether any check is active.
func (o EnforceOptions) Enabled() bool {
	return o.OnDuplicate != DupIgnore || o.MaxDepth > 0
}

// LimitError reports a violated enforcement option at a JSON Pointer path.
type LimitError struct {
	Code    string
	Path    string
	Message string
}

func (e *LimitError) Error() string { return e.Message + " at " + e.Path }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy
// and maximum nesting depth. When no option is set the inner source is
// returned unchanged.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if !opt.Enabled() {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := normalizeIssuePath(e.pathForToken(tok))

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		fr := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			fr = frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path}
		}
		if fr.path == "/" {
			fr.path = ""
		}
		e.stack = append(e.stack, fr)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, &LimitError{Code: CodeTooDeep, Path: path, Message: "max depth exceeded"}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if e.opt.OnDuplicate == DupError {
					if _, ok := top.keys[tok.String]; ok {
						return Token{}, &LimitError{Code: CodeDuplicateKey, Path: path, Message: "duplicate key '" + tok.String + "'"}
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}

	return tok, nil
}

// valueDone flips the enclosing object back to expecting a key.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) pathForToken(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return joinJSONPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		if top.kind == kindArray {
			p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		if !top.expectingKey {
			return joinJSONPointer(top.path, top.pendingKey)
		}
		return top.path
	default:
		return top.path
	}
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}
