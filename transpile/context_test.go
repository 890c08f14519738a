package transpile

import (
	"testing"
	"unsafe"

	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/xerrors"
)

func TestNewContextRequiresLoadedBackend(t *testing.T) {
	reg := &loader.Registry{}
	_, err := newContext(reg, []byte{1, 2, 3, 4})
	if !xerrors.Is(err, xerrors.BackendUnavailable) {
		t.Fatalf("newContext with no spirv-cross loaded: got %v, want BackendUnavailable", err)
	}
}

func TestContextReleaseIsIdempotent(t *testing.T) {
	var c *context
	c.Release()
	c.Release()

	c = &context{}
	c.Release()
	c.Release()
}

func TestCStringBytes(t *testing.T) {
	if got := cStringBytes(0); got != nil {
		t.Errorf("cStringBytes(0) = %q, want nil", got)
	}

	b := append([]byte("hello"), 0)
	ptr := uintptr(unsafe.Pointer(&b[0]))
	if got, want := string(cStringBytes(ptr)), "hello"; got != want {
		t.Errorf("cStringBytes(%q) = %q, want %q", b, got, want)
	}
}
