// Command shadercross translates a shader between SPIR-V, HLSL, DXBC,
// DXIL, MSL, and JSON reflection metadata.
//
// Usage:
//
//	shadercross [options] <input>
//
// Examples:
//
//	shadercross -d MSL -t fragment -e main -o out.msl shader.spv
//	shadercross -o reflection.json shader.vert.spv
//	shadercross -d DXIL -t compute -e main shader.hlsl
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gogpu/shadercross"
	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/shader"
	"github.com/gogpu/shadercross/shaderbytes"
)

var (
	sourceFlag  = flag.String("s", "", "source format: SPIRV or HLSL (inferred from input suffix if omitted)")
	destFlag    = flag.String("d", "", "destination format: SPIRV, DXBC, DXIL, MSL, HLSL, or JSON")
	stageFlag   = flag.String("t", "", "shader stage: vertex, fragment, or compute (inferred from input suffix if omitted)")
	entrypoint  = flag.String("e", "main", "entry point name")
	includeDir  = flag.String("I", "", "HLSL #include search directory")
	defines     stringList
	debugFlag   = flag.Bool("g", false, "include debug info")
	output      = flag.String("o", "", "output file (required)")
	versionFlag = flag.Bool("version", false, "print version")
)

// stringList collects repeated -D flags, matching flag.Value's pattern
// for multi-valued flags.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func init() {
	flag.Var(&defines, "D", "preprocessor define (may be repeated)")
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("shadercross version %s\n", version())
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o output path is required")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	sourceFormat, stage, err := resolveRoute(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	destFormat, ok := loader.ParseFormat(strings.ToUpper(*destFlag))
	if !ok {
		if f, fOK, _, _ := shadercross.InferFromFilename(*output); fOK {
			destFormat, ok = f, true
		}
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: -d destination format could not be determined")
		os.Exit(1)
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	reg, err := shadercross.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing backends: %v\n", err)
		os.Exit(1)
	}
	defer shadercross.Quit(reg)

	opts := shadercross.DefaultOptions()
	opts.Stage = stage
	opts.Entrypoint = *entrypoint
	opts.IncludeDir = *includeDir
	opts.Defines = defines
	opts.EnableDebug = *debugFlag

	var source shaderbytes.Bytes
	if sourceFormat == loader.FormatHLSL {
		source = shaderbytes.Text(string(raw))
	} else {
		source = shaderbytes.Binary(raw)
	}

	out, err := shadercross.Translate(reg, source, sourceFormat, destFormat, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translation error: %v\n", err)
		os.Exit(1)
	}
	defer out.Release()

	if err := os.WriteFile(*output, out.Peek(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
		os.Exit(1)
	}
}

// resolveRoute combines explicit -s/-t flags with filename-suffix
// inference: an explicit flag wins, inference fills in what's missing.
func resolveRoute(inputPath string) (loader.Format, shader.Stage, error) {
	inferredFormat, formatOK, inferredStage, stageOK := shadercross.InferFromFilename(inputPath)

	sourceFormat, ok := loader.ParseFormat(strings.ToUpper(*sourceFlag))
	if !ok {
		if !formatOK {
			return 0, 0, fmt.Errorf("-s source format could not be determined for %s", inputPath)
		}
		sourceFormat = inferredFormat
	}

	stage, ok := parseStage(*stageFlag)
	if !ok {
		if !stageOK {
			return 0, 0, fmt.Errorf("-t shader stage could not be determined for %s", inputPath)
		}
		stage = inferredStage
	}

	return sourceFormat, stage, nil
}

func parseStage(name string) (shader.Stage, bool) {
	switch strings.ToLower(name) {
	case "vertex":
		return shader.Vertex, true
	case "fragment":
		return shader.Fragment, true
	case "compute":
		return shader.Compute, true
	default:
		return 0, false
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shadercross [options] <input>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shadercross -d MSL -t fragment -o out.msl shader.spv\n")
	fmt.Fprintf(os.Stderr, "  shadercross -o reflection.json shader.vert.spv\n")
	fmt.Fprintf(os.Stderr, "  shadercross -d DXIL -t compute shader.hlsl\n")
}
