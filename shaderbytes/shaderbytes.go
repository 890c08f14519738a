// Package shaderbytes provides the move-only owned-buffer type threaded
// through the translation pipeline. Per spec.md's §9 Design Notes, buffer
// ownership across backend boundaries is made explicit so a partial
// failure in the orchestrator cannot leak or double-free a buffer.
package shaderbytes

import "fmt"

// Bytes is an owned byte buffer produced by one backend and either
// returned to the caller or consumed by the next backend in a
// translation chain.
//
// Bytes is move-only: Take transfers ownership out and marks the value
// released, so a second Take (a use-after-move, typically a bug in an
// orchestrator exit path) panics rather than silently handing out the
// same backing array twice.
type Bytes struct {
	data     []byte
	text     bool
	released bool
}

// Binary wraps a binary buffer (SPIR-V, DXBC, DXIL).
func Binary(data []byte) Bytes {
	return Bytes{data: data}
}

// Text wraps a UTF-8 text buffer (MSL, HLSL). The caller need not
// NUL-terminate data; Take returns it as-is.
func Text(data string) Bytes {
	return Bytes{data: []byte(data), text: true}
}

// Len returns the buffer size in bytes without transferring ownership.
func (b Bytes) Len() int { return len(b.data) }

// IsText reports whether the buffer holds UTF-8 text rather than binary.
func (b Bytes) IsText() bool { return b.text }

// Peek returns the underlying bytes without transferring ownership or
// marking the value released. Used by stages that need to inspect a
// buffer (e.g. parse SPIR-V) before deciding whether to consume it.
func (b Bytes) Peek() []byte { return b.data }

// Take transfers ownership of the underlying bytes to the caller and
// marks b released. Calling Take twice on the same value panics.
func (b *Bytes) Take() []byte {
	if b.released {
		panic("shaderbytes: Take called on already-released Bytes")
	}
	b.released = true
	data := b.data
	b.data = nil
	return data
}

// Release discards the buffer without returning it. Idempotent: calling
// Release more than once, or on an already-taken value, is a no-op so
// every orchestrator exit path can unconditionally defer it.
func (b *Bytes) Release() {
	b.released = true
	b.data = nil
}

// String returns a short diagnostic description, not the buffer content.
func (b Bytes) String() string {
	kind := "binary"
	if b.text {
		kind = "text"
	}
	return fmt.Sprintf("shaderbytes.Bytes{%s, %d bytes}", kind, len(b.data))
}
