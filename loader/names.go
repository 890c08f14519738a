package loader

import "runtime"

// libraryNames returns the candidate file names for a native library on
// the current host OS, most-specific first. Multiple names let
// abi.LoadFirst fall back across ABI-compatible revisions the way the
// reference D3DCompiler loader probes DLL version suffixes.
type libraryNames struct {
	dxcompiler  []string
	dxilSigning []string
	d3dcompiler []string
	spirvCross  []string
}

func platformLibraryNames() libraryNames {
	switch runtime.GOOS {
	case "windows":
		return libraryNames{
			dxcompiler:  []string{"dxcompiler.dll"},
			dxilSigning: []string{"dxil.dll"},
			d3dcompiler: []string{"d3dcompiler_47.dll"},
			spirvCross:  []string{"spirv-cross-c-shared.dll"},
		}
	case "darwin":
		return libraryNames{
			dxcompiler:  []string{"libdxcompiler.dylib"},
			dxilSigning: []string{"libdxil.dylib"},
			d3dcompiler: nil, // D3DCompiler is Windows-only; legacy DXBC is unavailable here.
			spirvCross:  []string{"libspirv-cross-c-shared.dylib"},
		}
	default: // linux and other ELF hosts
		return libraryNames{
			dxcompiler:  []string{"libdxcompiler.so"},
			dxilSigning: []string{"libdxil.so"},
			d3dcompiler: nil,
			spirvCross:  []string{"libspirv-cross-c-shared.so"},
		}
	}
}
