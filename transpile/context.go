package transpile

import (
	"unsafe"

	"github.com/gogpu/shadercross/internal/abi"
	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/xerrors"
)

// spvcBackend mirrors spirv_cross_c.h's spvc_backend enum, trimmed to
// the two backends this repo ever requests.
type spvcBackend uint32

const (
	spvcBackendMSL  spvcBackend = 1
	spvcBackendHLSL spvcBackend = 5
)

// spvcResult mirrors spvc_result: zero is success, negative is failure.
type spvcResult int32

const spvcSuccess spvcResult = 0

// optionCommonEmitLineDirectives is spirv_cross_c.h's
// SPVC_COMPILER_OPTION_EMIT_LINE_DIRECTIVES, the one compiler option both
// the MSL and HLSL backends accept through the same common option bit.
// It is the closest SPIRV-Cross equivalent to a "debug info" toggle: it
// annotates emitted source with the originating SPIR-V line, which is
// all either backend can offer since neither preserves DXC-style debug
// symbols through the transpile.
const optionCommonEmitLineDirectives = 38

// context wraps the scoped sequence of SPIRV-Cross C API handles needed
// to translate one module: a spvc_context, the parsed IR it owns, and
// the compiler instance created from that IR. Every exit path —
// success, compile failure, or a panic recovered upstream — must reach
// Release exactly once; Release is idempotent so callers can defer it
// unconditionally right after acquisition.
type context struct {
	reg      *loader.Registry
	handle   uintptr // spvc_context
	parsedIR uintptr // spvc_parsed_ir, owned by handle
	compiler uintptr // spvc_compiler

	procCreate             *abi.Proc
	procParse              *abi.Proc
	procCreateCompiler     *abi.Proc
	procCreateOptions      *abi.Proc
	procOptionsSetUint     *abi.Proc
	procOptionsSetBool     *abi.Proc
	procInstallOptions     *abi.Proc
	procAddMSLBinding2     *abi.Proc
	procCompile            *abi.Proc
	procCleansedEntryPoint *abi.Proc
	procDestroy            *abi.Proc
	procLastErrorString    *abi.Proc
}

// newContext resolves every SPIRV-Cross entry point this package calls
// and parses spirv into a fresh IR, ready for a backend-specific
// compiler to be created from it (see acquireCompiler).
func newContext(reg *loader.Registry, spirv []byte) (*context, error) {
	lib := reg.SpirvCross()
	if lib == nil {
		return nil, xerrors.New(xerrors.BackendUnavailable, "spirv-cross not loaded")
	}

	c := &context{reg: reg}
	procs := map[string]**abi.Proc{
		"spvc_context_create":                         &c.procCreate,
		"spvc_context_parse_spirv":                    &c.procParse,
		"spvc_context_create_compiler":                &c.procCreateCompiler,
		"spvc_compiler_create_compiler_options":       &c.procCreateOptions,
		"spvc_compiler_options_set_uint":              &c.procOptionsSetUint,
		"spvc_compiler_options_set_bool":              &c.procOptionsSetBool,
		"spvc_compiler_install_compiler_options":      &c.procInstallOptions,
		"spvc_compiler_msl_add_resource_binding_2":    &c.procAddMSLBinding2,
		"spvc_compiler_compile":                       &c.procCompile,
		"spvc_compiler_get_cleansed_entry_point_name": &c.procCleansedEntryPoint,
		"spvc_context_destroy":                        &c.procDestroy,
		"spvc_context_get_last_error_string":          &c.procLastErrorString,
	}
	for name, slot := range procs {
		proc, err := lib.Proc(name)
		if err != nil {
			return nil, xerrors.Newf(xerrors.BackendUnavailable, "spirv-cross: %v", err)
		}
		*slot = proc
	}

	var handle uintptr
	if ret := spvcResult(c.procCreate.Call(uintptr(unsafe.Pointer(&handle)))); ret != spvcSuccess {
		return nil, xerrors.Newf(xerrors.TranspileFailed, "spvc_context_create failed: %d", ret)
	}
	c.handle = handle

	if len(spirv)%4 != 0 {
		c.destroy()
		return nil, xerrors.New(xerrors.TranspileFailed, "spirv byte length is not a multiple of 4")
	}
	words := unsafe.Slice((*uint32)(unsafe.Pointer(&spirv[0])), len(spirv)/4)

	var parsedIR uintptr
	ret := spvcResult(c.procParse.Call(
		c.handle,
		uintptr(unsafe.Pointer(&words[0])),
		uintptr(len(words)),
		uintptr(unsafe.Pointer(&parsedIR)),
	))
	if ret != spvcSuccess {
		err := c.lastError()
		c.destroy()
		return nil, xerrors.Newf(xerrors.TranspileFailed, "spvc_context_parse_spirv: %s", err)
	}

	c.parsedIR = parsedIR
	return c, nil
}

func (c *context) acquireCompiler(backend spvcBackend) error {
	var compiler uintptr
	ret := spvcResult(c.procCreateCompiler.Call(
		c.handle,
		uintptr(backend),
		c.parsedIR,
		0, // SPVC_CAPTURE_MODE_COPY: the context keeps ownership of the IR
		uintptr(unsafe.Pointer(&compiler)),
	))
	if ret != spvcSuccess {
		return xerrors.Newf(xerrors.TranspileFailed, "spvc_context_create_compiler: %s", c.lastError())
	}
	c.compiler = compiler
	return nil
}

func (c *context) createOptions() (uintptr, error) {
	var opts uintptr
	ret := spvcResult(c.procCreateOptions.Call(c.compiler, uintptr(unsafe.Pointer(&opts))))
	if ret != spvcSuccess {
		return 0, xerrors.Newf(xerrors.TranspileFailed, "spvc_compiler_create_compiler_options: %s", c.lastError())
	}
	return opts, nil
}

func (c *context) setOptionUint(opts uintptr, option, value uint32) error {
	ret := spvcResult(c.procOptionsSetUint.Call(opts, uintptr(option), uintptr(value)))
	if ret != spvcSuccess {
		return xerrors.Newf(xerrors.TranspileFailed, "spvc_compiler_options_set_uint(%d): %s", option, c.lastError())
	}
	return nil
}

func (c *context) setOptionBool(opts uintptr, option uint32, value bool) error {
	var v uintptr
	if value {
		v = 1
	}
	ret := spvcResult(c.procOptionsSetBool.Call(opts, uintptr(option), v))
	if ret != spvcSuccess {
		return xerrors.Newf(xerrors.TranspileFailed, "spvc_compiler_options_set_bool(%d): %s", option, c.lastError())
	}
	return nil
}

func (c *context) installOptions(opts uintptr) error {
	ret := spvcResult(c.procInstallOptions.Call(c.compiler, opts))
	if ret != spvcSuccess {
		return xerrors.Newf(xerrors.TranspileFailed, "spvc_compiler_install_compiler_options: %s", c.lastError())
	}
	return nil
}

// addMSLResourceBinding installs one (set, binding) -> (texture, sampler,
// buffer) mapping via spvc_msl_resource_binding, per spec.md §4.4.
func (c *context) addMSLResourceBinding(stage uint32, set, binding uint32, b MSLBinding) error {
	type spvcMSLResourceBinding struct {
		stage      uint32
		descSet    uint32
		bindingIdx uint32
		mslBuffer  uint32
		mslTexture uint32
		mslSampler uint32
	}
	binding2 := spvcMSLResourceBinding{
		stage:      stage,
		descSet:    set,
		bindingIdx: binding,
		mslBuffer:  b.Buffer,
		mslTexture: b.Texture,
		mslSampler: b.Sampler,
	}
	ret := spvcResult(c.procAddMSLBinding2.Call(c.compiler, uintptr(unsafe.Pointer(&binding2))))
	if ret != spvcSuccess {
		return xerrors.Newf(xerrors.TranspileFailed, "spvc_compiler_msl_add_resource_binding_2: %s", c.lastError())
	}
	return nil
}

// compile runs the installed backend and copies the translated source
// out of SPIRV-Cross's internally-owned string before the context (and
// the string with it) is released. The string is never separately
// freed by this driver — SPIRV-Cross frees it when its owning compiler
// is destroyed — so the wrapping Blob's release is a no-op; Blob is
// still the right vehicle here because it is the one place this repo
// already expresses "copy out now, release is someone else's job".
func (c *context) compile() (string, error) {
	var srcPtr uintptr
	ret := spvcResult(c.procCompile.Call(c.compiler, uintptr(unsafe.Pointer(&srcPtr))))
	if ret != spvcSuccess {
		return "", xerrors.Newf(xerrors.TranspileFailed, "spvc_compiler_compile: %s", c.lastError())
	}
	blob := abi.NewBlob(cStringBytes(srcPtr), nil)
	return blob.Text(), nil
}

// cleansedEntryPoint returns the backend's cleansed form of an entry
// point name (SPIRV-Cross renames entry points that collide with
// backend-reserved identifiers, e.g. "main" in MSL).
func (c *context) cleansedEntryPoint(name string, model uint32) (string, error) {
	nameBytes := append([]byte(name), 0)
	var outPtr uintptr
	ret := spvcResult(c.procCleansedEntryPoint.Call(
		c.compiler,
		uintptr(unsafe.Pointer(&nameBytes[0])),
		uintptr(model),
		uintptr(unsafe.Pointer(&outPtr)),
	))
	if ret != spvcSuccess {
		return "", xerrors.Newf(xerrors.TranspileFailed, "spvc_compiler_get_cleansed_entry_point_name: %s", c.lastError())
	}
	blob := abi.NewBlob(cStringBytes(outPtr), nil)
	return blob.Text(), nil
}

func (c *context) lastError() string {
	if c == nil || c.procLastErrorString == nil {
		return "unknown spirv-cross error"
	}
	ptr := c.procLastErrorString.Call(c.handle)
	if ptr == 0 {
		return "unknown spirv-cross error"
	}
	return string(cStringBytes(ptr))
}

func (c *context) destroy() {
	if c == nil || c.handle == 0 {
		return
	}
	c.procDestroy.Call(c.handle)
	c.handle = 0
	c.compiler = 0
}

// Release tears down the context. Idempotent: safe to call more than
// once, and safe on a nil receiver.
func (c *context) Release() {
	c.destroy()
}

// cStringBytes copies a NUL-terminated C string into a Go-owned byte
// slice. The copy happens before any caller-side Release, matching
// spec.md §5's rule that native output must be copied out before the
// owning object is torn down.
func cStringBytes(ptr uintptr) []byte {
	if ptr == 0 {
		return nil
	}
	var n int
	for {
		b := *(*byte)(unsafe.Pointer(ptr + uintptr(n)))
		if b == 0 {
			break
		}
		n++
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n)
	out := make([]byte, n)
	copy(out, src)
	return out
}
