package engine

import (
	"encoding/json"
	"errors"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

var (
	// ErrTrailingData is returned when input continues after the first value.
	ErrTrailingData = errors.New("engine: trailing data after top-level value")
	// ErrUnexpectedToken is returned when a token cannot start or continue a value.
	ErrUnexpectedToken = errors.New("engine: unexpected token")
)

// DecodeAny builds the untyped value tree (nil, bool, json.Number, string,
// []any, map[string]any) from exactly one top-level value. Any token after
// that value is an error. An empty source yields io.ErrUnexpectedEOF.
func DecodeAny(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, eofIsUnexpected(err)
	}
	v, err := decodeValue(src, tok)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err == nil {
		return nil, ErrTrailingData
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}
	return v, nil
}

func eofIsUnexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func decodeValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, ErrUnexpectedToken
	}
}

func decodeObject(src TokenSource) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, ErrUnexpectedToken
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
