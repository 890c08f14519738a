package orchestrator

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/xerrors"
)

func TestPreferredFormatVulkanWantsSPIRV(t *testing.T) {
	reg := &loader.Registry{}
	got, err := PreferredFormat(reg, gputypes.BackendVulkan)
	if err != nil {
		t.Fatalf("PreferredFormat: %v", err)
	}
	if got != loader.FormatSPIRV {
		t.Errorf("PreferredFormat(Vulkan) = %s, want SPIRV", got)
	}
}

func TestPreferredFormatMetalRequiresSpirvCross(t *testing.T) {
	reg := &loader.Registry{}
	_, err := PreferredFormat(reg, gputypes.BackendMetal)
	if !xerrors.Is(err, xerrors.UnsupportedRoute) {
		t.Fatalf("PreferredFormat(Metal) with no spirv-cross loaded: got %v, want UnsupportedRoute", err)
	}
}

func TestPreferredFormatUnknownBackend(t *testing.T) {
	reg := &loader.Registry{}
	_, err := PreferredFormat(reg, gputypes.BackendEmpty)
	if !xerrors.Is(err, xerrors.UnsupportedRoute) {
		t.Fatalf("PreferredFormat(Empty) = %v, want UnsupportedRoute", err)
	}
}

func TestPackSPIRVWordsRoundTrip(t *testing.T) {
	words := []uint32{0x07230203, 0x00010300, 1, 2, 3}
	b := make([]byte, len(words)*4)
	for i, w := range words {
		b[i*4] = byte(w)
		b[i*4+1] = byte(w >> 8)
		b[i*4+2] = byte(w >> 16)
		b[i*4+3] = byte(w >> 24)
	}
	got := packSPIRVWords(b)
	if len(got) != len(words) {
		t.Fatalf("packSPIRVWords: got %d words, want %d", len(got), len(words))
	}
	for i, w := range words {
		if got[i] != w {
			t.Errorf("word[%d] = %#x, want %#x", i, got[i], w)
		}
	}
}
