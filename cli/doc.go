// Package cli contains the command line interface for glenum.
//
// # Usage
//
// With no command, glenum generates Go constants from the registry:
//
//	glenum -s gl.xml --api=gles2 -o enums.go
//
// If no --source is given, the first gl.xml found in the --path
// directories, then $GLENUM_PATH, then the configuration directory is used.
//
// # Commands
//
//   - gen: write a Go source file of constant declarations
//   - dump json|yaml: write the selected enums as structured data
//   - lookup: print the declarations of individual enums
//   - check: load the registries and print a summary
//   - browse: fuzzy-search enums interactively
//   - init: write the current flag values to the configuration file
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the
// configuration directory. The YAML form is the one written by init, a flat
// mapping keyed by flag name:
//
//	log-level: debug
//	negative-radix: 16
//	ignore-attr: [group, comment]
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o glenum .
//
// The profiling flags are then:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
