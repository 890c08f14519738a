package abi

// Blob is an owned native output buffer (a COM-style ID3DBlob / IDxcBlob
// / SPIRV-Cross string handle). Backends copy the bytes out and Release
// the native object before returning, per spec.md §5 ("Backend objects
// are not thread-safe ... use it to completion, and release it before
// returning").
type Blob struct {
	data     []byte
	release  func()
	released bool
}

// NewBlob wraps native blob data with the function that releases the
// underlying native object (calling the vtable's Release slot, or
// freeing a SPIRV-Cross-owned string).
func NewBlob(data []byte, release func()) *Blob {
	return &Blob{data: append([]byte(nil), data...), release: release}
}

// Bytes returns a copy of the blob's contents. Safe to call after
// Release — the copy was taken at construction time.
func (b *Blob) Bytes() []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Text returns the blob's contents as a string.
func (b *Blob) Text() string {
	if b == nil {
		return ""
	}
	return string(b.data)
}

// Len returns the number of bytes in the blob.
func (b *Blob) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Release releases the underlying native object. Idempotent and nil-safe
// so every call site can unconditionally `defer blob.Release()`.
func (b *Blob) Release() {
	if b == nil || b.released {
		return
	}
	b.released = true
	if b.release != nil {
		b.release()
	}
}
