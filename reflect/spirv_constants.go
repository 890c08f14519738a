package reflect

// SPIR-V structural constants this reflector's word-stream walker needs:
// the module magic number and the opcodes/decorations/enums that carry
// resource-binding and entry-point information. Adapted from
// gogpu-naga/spirv/spirv.go, trimmed to the subset reflection actually
// reads — the arithmetic/logical/control-flow opcode tables that package
// carried for code generation have no reader here.
const (
	MagicNumber = 0x07230203
)

// OpCode is a SPIR-V instruction opcode.
type OpCode uint16

// Opcodes this reflector dispatches on while walking a module.
const (
	OpName              OpCode = 5
	OpMemberName        OpCode = 6
	OpExtInstImport     OpCode = 11
	OpEntryPoint        OpCode = 15
	OpExecutionMode     OpCode = 16
	OpCapability        OpCode = 17
	OpTypeVoid          OpCode = 19
	OpTypeBool          OpCode = 20
	OpTypeInt           OpCode = 21
	OpTypeFloat         OpCode = 22
	OpTypeVector        OpCode = 23
	OpTypeMatrix        OpCode = 24
	OpTypeImage         OpCode = 25
	OpTypeSampler       OpCode = 26
	OpTypeSampledImage  OpCode = 27
	OpTypeArray         OpCode = 28
	OpTypeRuntimeArray  OpCode = 29
	OpTypeStruct        OpCode = 30
	OpTypePointer       OpCode = 32
	OpTypeFunction      OpCode = 33
	OpConstant          OpCode = 43
	OpFunction          OpCode = 54
	OpFunctionEnd       OpCode = 56
	OpVariable          OpCode = 59
	OpDecorate          OpCode = 71
	OpMemberDecorate    OpCode = 72
	OpExecutionModeId   OpCode = 331
	OpDecorateId        OpCode = 332
)

// Decoration is a SPIR-V decoration.
type Decoration uint32

// Decorations the reflector reads off OpDecorate instructions.
const (
	DecorationBlock         Decoration = 2
	DecorationBuiltIn       Decoration = 11
	DecorationNonWritable   Decoration = 24
	DecorationNonReadable   Decoration = 25
	DecorationLocation      Decoration = 30
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
)

// BuiltIn is a SPIR-V built-in decoration value.
type BuiltIn uint32

// BuiltIn values for reference; the walker does not read BuiltIn
// decorations (IO variables never classify as resources).
const (
	BuiltInPosition           BuiltIn = 0
	BuiltInFragDepth          BuiltIn = 22
	BuiltInNumWorkgroups      BuiltIn = 24
	BuiltInWorkgroupID        BuiltIn = 26
	BuiltInLocalInvocationID  BuiltIn = 27
	BuiltInGlobalInvocationID BuiltIn = 28
	BuiltInVertexIndex        BuiltIn = 42
	BuiltInInstanceIndex      BuiltIn = 43
)

// ExecutionModel is a SPIR-V execution model, naming the shader stage an
// entry point runs as.
type ExecutionModel uint32

const (
	ExecutionModelVertex    ExecutionModel = 0
	ExecutionModelFragment  ExecutionModel = 4
	ExecutionModelGLCompute ExecutionModel = 5
)

// ExecutionMode is a SPIR-V execution mode.
type ExecutionMode uint32

// ExecutionModeLocalSize is the only execution mode this reflector reads:
// it carries a compute entry point's workgroup dimensions as three
// literal operands.
const ExecutionModeLocalSize ExecutionMode = 17

// StorageClass is a SPIR-V storage class, naming where a pointer type's
// pointee lives.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassPushConstant    StorageClass = 9
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)
