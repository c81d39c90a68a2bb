package engine

// KeyTracker lets a decoder that reports object keys and string values with
// the same token type tell them apart. Tokenizers feed it every delimiter and
// scalar they emit.
type KeyTracker struct {
	stack []trackFrame
}

type trackFrame struct {
	object       bool
	expectingKey bool
}

// Open records '{' (object=true) or '['.
func (t *KeyTracker) Open(object bool) {
	t.stack = append(t.stack, trackFrame{object: object, expectingKey: object})
}

// Close records '}' or ']'. The closed container counts as a value of its parent.
func (t *KeyTracker) Close() {
	if n := len(t.stack); n > 0 {
		t.stack = t.stack[:n-1]
	}
	t.Value()
}

// Classify classifies a string token as KindKey or KindString.
func (t *KeyTracker) Classify() Kind {
	if n := len(t.stack); n > 0 {
		top := &t.stack[n-1]
		if top.object && top.expectingKey {
			top.expectingKey = false
			return KindKey
		}
	}
	t.Value()
	return KindString
}

// Value records a completed scalar value.
func (t *KeyTracker) Value() {
	if n := len(t.stack); n > 0 {
		top := &t.stack[n-1]
		if top.object && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
