package reflect

import (
	"encoding/binary"

	"github.com/gogpu/shadercross/xerrors"
)

// typeKind classifies a SPIR-V type instruction this walker cares about.
type typeKind uint8

const (
	typeOther typeKind = iota
	typeImage
	typeSampler
	typeSampledImage
	typeStruct
	typePointer
)

type typeInfo struct {
	kind typeKind

	// imageSampled is OpTypeImage's Sampled operand: 1 means the image is
	// only ever used combined with a separate sampler or through
	// OpTypeSampledImage ("sampled" in SPIR-V terms); 2 means the shader
	// reads/writes it directly as a storage image.
	imageSampled uint32

	// pointeeType and storageClass are set for OpTypePointer.
	pointeeType  uint32
	storageClass StorageClass

	// hasBlock records whether OpDecorate Block was applied to this
	// (struct) type id.
	hasBlock bool
}

type variableInfo struct {
	pointerType  uint32
	storageClass StorageClass
}

type entryPointInfo struct {
	model ExecutionModel
	name  string
}

// module is the subset of a parsed SPIR-V binary this reflector reads.
type module struct {
	types     map[uint32]*typeInfo
	variables map[uint32]*variableInfo

	sets     map[uint32]uint32
	bindings map[uint32]uint32

	entryPoints   []entryPointInfo
	localSize     [3]uint32
	hasLocalSize  bool
}

// parseModule walks the SPIR-V word stream and extracts the structural
// information reflection needs: types, variables, decorations, entry
// points, and the compute LocalSize execution mode. It does not build a
// full in-memory IR — each instruction is visited once and only the
// fields this package reads are retained.
func parseModule(spirv []byte) (*module, error) {
	if len(spirv)%4 != 0 {
		return nil, xerrors.New(xerrors.CompilationFailed, "spirv: length is not a multiple of 4 bytes")
	}
	if len(spirv) < 20 {
		return nil, xerrors.New(xerrors.CompilationFailed, "spirv: module shorter than the 5-word header")
	}

	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	if words[0] != MagicNumber {
		return nil, xerrors.New(xerrors.CompilationFailed, "spirv: bad magic number")
	}

	m := &module{
		types:     make(map[uint32]*typeInfo),
		variables: make(map[uint32]*variableInfo),
		sets:      make(map[uint32]uint32),
		bindings:  make(map[uint32]uint32),
	}

	for i := 5; i < len(words); {
		op := OpCode(words[i] & 0xFFFF)
		count := int(words[i] >> 16)
		if count == 0 || i+count > len(words) {
			return nil, xerrors.New(xerrors.CompilationFailed, "spirv: truncated instruction")
		}
		operands := words[i+1 : i+count]

		switch op {
		case OpEntryPoint:
			model := ExecutionModel(operands[0])
			name := decodeLiteralString(operands[2:])
			m.entryPoints = append(m.entryPoints, entryPointInfo{model: model, name: name})

		case OpExecutionMode:
			if len(operands) >= 5 && ExecutionMode(operands[1]) == ExecutionModeLocalSize {
				m.localSize = [3]uint32{operands[2], operands[3], operands[4]}
				m.hasLocalSize = true
			}

		case OpDecorate:
			target := operands[0]
			switch Decoration(operands[1]) {
			case DecorationDescriptorSet:
				m.sets[target] = operands[2]
			case DecorationBinding:
				m.bindings[target] = operands[2]
			case DecorationBlock:
				m.typeFor(target).hasBlock = true
			}

		case OpTypeImage:
			m.types[operands[0]] = &typeInfo{kind: typeImage, imageSampled: operands[6]}

		case OpTypeSampler:
			m.types[operands[0]] = &typeInfo{kind: typeSampler}

		case OpTypeSampledImage:
			m.types[operands[0]] = &typeInfo{kind: typeSampledImage}

		case OpTypeStruct:
			m.typeFor(operands[0]).kind = typeStruct

		case OpTypePointer:
			m.types[operands[0]] = &typeInfo{
				kind:         typePointer,
				storageClass: StorageClass(operands[1]),
				pointeeType:  operands[2],
			}

		case OpVariable:
			// Word layout: <result type> <result id> <storage class> [initializer].
			m.variables[operands[1]] = &variableInfo{
				pointerType:  operands[0],
				storageClass: StorageClass(operands[2]),
			}

		case OpFunction:
			// Module scope ends at the first function; nothing past this
			// point is relevant to reflection.
			i = len(words)
			continue
		}

		i += count
	}

	return m, nil
}

func (m *module) typeFor(id uint32) *typeInfo {
	t, ok := m.types[id]
	if !ok {
		t = &typeInfo{}
		m.types[id] = t
	}
	return t
}

func decodeLiteralString(words []uint32) string {
	buf := make([]byte, 0, len(words)*4)
	for _, w := range words {
		for shift := 0; shift < 32; shift += 8 {
			b := byte(w >> shift)
			if b == 0 {
				return string(buf)
			}
			buf = append(buf, b)
		}
	}
	return string(buf)
}
