package reflect

import (
	"encoding/binary"
	"testing"
)

// asmModule assembles a minimal SPIR-V binary from a list of
// instructions, each given as (opcode, operand...). It exists purely to
// give these tests hand-built fixtures without depending on a real SPIR-V
// front-end.
type asmModule struct {
	words []uint32
}

func newAsmModule() *asmModule {
	return &asmModule{words: []uint32{MagicNumber, 0x00010300, 0, 1024, 0}}
}

func (a *asmModule) inst(op OpCode, operands ...uint32) *asmModule {
	count := uint32(len(operands) + 1)
	a.words = append(a.words, (count<<16)|uint32(op))
	a.words = append(a.words, operands...)
	return a
}

func (a *asmModule) literalString(s string) []uint32 {
	b := append([]byte(s), 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out
}

func (a *asmModule) bytes() []byte {
	out := make([]byte, len(a.words)*4)
	for i, w := range a.words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func vertexFixture(t *testing.T) []byte {
	t.Helper()
	a := newAsmModule()

	const (
		tVoid       = 1
		tFloat      = 10
		tImage      = 11
		tSampledImg = 12
		tImgPtr     = 13
		vSampler    = 14
		tStruct     = 20
		tUbPtr      = 21
		vUniform    = 22
		tFn         = 30
		fMain       = 100
	)

	a.inst(OpTypeVoid, tVoid)
	a.inst(OpTypeFloat, tFloat, 32)
	a.inst(OpTypeImage, tImage, tFloat, 1, 0, 0, 0, 1, 0)
	a.inst(OpTypeSampledImage, tSampledImg, tImage)
	a.inst(OpTypePointer, tImgPtr, uint32(StorageClassUniformConstant), tSampledImg)
	a.inst(OpVariable, tImgPtr, vSampler, uint32(StorageClassUniformConstant))
	a.inst(OpDecorate, vSampler, uint32(DecorationDescriptorSet), 0)
	a.inst(OpDecorate, vSampler, uint32(DecorationBinding), 0)

	a.inst(OpTypeStruct, tStruct, tFloat)
	a.inst(OpDecorate, tStruct, uint32(DecorationBlock))
	a.inst(OpTypePointer, tUbPtr, uint32(StorageClassUniform), tStruct)
	a.inst(OpVariable, tUbPtr, vUniform, uint32(StorageClassUniform))
	a.inst(OpDecorate, vUniform, uint32(DecorationDescriptorSet), 1)
	a.inst(OpDecorate, vUniform, uint32(DecorationBinding), 0)

	nameWords := a.literalString("main")
	epOperands := append([]uint32{uint32(ExecutionModelVertex), fMain}, nameWords...)
	a.inst(OpEntryPoint, epOperands...)

	a.inst(OpTypeFunction, tFn, tVoid)
	a.inst(OpFunction, tVoid, fMain, 0, tFn)
	a.inst(OpFunctionEnd)

	return a.bytes()
}

func computeFixture(t *testing.T) []byte {
	t.Helper()
	a := newAsmModule()

	const (
		tVoid     = 1
		tFloat    = 5
		tSbStruct = 20
		tSbPtr    = 21
		vStorage  = 22
		tUbStruct = 30
		tUbPtr    = 31
		vUniform  = 32
		tFn       = 40
		fMain     = 100
	)

	a.inst(OpTypeVoid, tVoid)
	a.inst(OpTypeFloat, tFloat, 32)

	a.inst(OpTypeStruct, tSbStruct, tFloat)
	a.inst(OpDecorate, tSbStruct, uint32(DecorationBlock))
	a.inst(OpTypePointer, tSbPtr, uint32(StorageClassStorageBuffer), tSbStruct)
	a.inst(OpVariable, tSbPtr, vStorage, uint32(StorageClassStorageBuffer))
	a.inst(OpDecorate, vStorage, uint32(DecorationDescriptorSet), 1)
	a.inst(OpDecorate, vStorage, uint32(DecorationBinding), 0)

	a.inst(OpTypeStruct, tUbStruct, tFloat)
	a.inst(OpDecorate, tUbStruct, uint32(DecorationBlock))
	a.inst(OpTypePointer, tUbPtr, uint32(StorageClassUniform), tUbStruct)
	a.inst(OpVariable, tUbPtr, vUniform, uint32(StorageClassUniform))
	a.inst(OpDecorate, vUniform, uint32(DecorationDescriptorSet), 2)
	a.inst(OpDecorate, vUniform, uint32(DecorationBinding), 0)

	nameWords := a.literalString("main")
	epOperands := append([]uint32{uint32(ExecutionModelGLCompute), fMain}, nameWords...)
	a.inst(OpEntryPoint, epOperands...)
	a.inst(OpExecutionMode, fMain, uint32(ExecutionModeLocalSize), 8, 8, 1)

	a.inst(OpTypeFunction, tFn, tVoid)
	a.inst(OpFunction, tVoid, fMain, 0, tFn)
	a.inst(OpFunctionEnd)

	return a.bytes()
}

func TestGraphicsReflection(t *testing.T) {
	spirv := vertexFixture(t)
	meta, err := Graphics(spirv)
	if err != nil {
		t.Fatalf("Graphics: %v", err)
	}
	want := &GraphicsShaderMetadata{Samplers: 1, StorageTextures: 0, StorageBuffers: 0, UniformBuffers: 1}
	if *meta != *want {
		t.Errorf("Graphics() = %+v, want %+v", *meta, *want)
	}
}

func TestGraphicsReflectionIsPureAndDeterministic(t *testing.T) {
	spirv := vertexFixture(t)
	first, err := Graphics(spirv)
	if err != nil {
		t.Fatalf("Graphics: %v", err)
	}
	second, err := Graphics(spirv)
	if err != nil {
		t.Fatalf("Graphics (second call): %v", err)
	}
	if *first != *second {
		t.Errorf("Graphics() is not deterministic: %+v vs %+v", *first, *second)
	}

	j1, err := first.MarshalCompact()
	if err != nil {
		t.Fatalf("MarshalCompact: %v", err)
	}
	j2, err := second.MarshalCompact()
	if err != nil {
		t.Fatalf("MarshalCompact: %v", err)
	}
	if string(j1) != string(j2) {
		t.Errorf("MarshalCompact is not byte-identical across calls: %q vs %q", j1, j2)
	}
}

func TestComputeReflection(t *testing.T) {
	spirv := computeFixture(t)
	meta, err := Compute(spirv)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	want := &ComputePipelineMetadata{
		ReadwriteStorageBuffers: 1,
		UniformBuffers:          1,
		ThreadcountX:            8,
		ThreadcountY:            8,
		ThreadcountZ:            1,
	}
	if *meta != *want {
		t.Errorf("Compute() = %+v, want %+v", *meta, *want)
	}
}

func TestComputeReflectionRejectsBadDescriptorSet(t *testing.T) {
	spirv := computeFixture(t)
	// Re-point the uniform buffer's decoration to an unconventional set by
	// re-assembling with set 3 instead of 2.
	a := newAsmModule()
	a.inst(OpTypeVoid, 1)
	a.inst(OpTypeFloat, 5, 32)
	a.inst(OpTypeStruct, 30, 5)
	a.inst(OpDecorate, 30, uint32(DecorationBlock))
	a.inst(OpTypePointer, 31, uint32(StorageClassUniform), 30)
	a.inst(OpVariable, 31, 32, uint32(StorageClassUniform))
	a.inst(OpDecorate, 32, uint32(DecorationDescriptorSet), 3)
	a.inst(OpDecorate, 32, uint32(DecorationBinding), 0)
	name := a.literalString("main")
	a.inst(OpEntryPoint, append([]uint32{uint32(ExecutionModelGLCompute), 100}, name...)...)
	a.inst(OpExecutionMode, 100, uint32(ExecutionModeLocalSize), 1, 1, 1)
	a.inst(OpTypeFunction, 40, 1)
	a.inst(OpFunction, 1, 100, 0, 40)
	a.inst(OpFunctionEnd)

	_, err := Compute(a.bytes())
	if err == nil {
		t.Fatal("expected an error for an out-of-convention descriptor set")
	}
	_ = spirv
}

func TestParseModuleRejectsBadLength(t *testing.T) {
	_, err := parseModule([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected an error for a non-multiple-of-4 length")
	}
}

func TestParseModuleRejectsBadMagic(t *testing.T) {
	bad := make([]byte, 20)
	_, err := parseModule(bad)
	if err == nil {
		t.Fatal("expected an error for a bad magic number")
	}
}
