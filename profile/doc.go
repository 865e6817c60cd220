// Package profile provides optional runtime profiling for glenum.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof ./...
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// stopper, so callers never need to guard on the build configuration.
//
// A profiler is described by a [Profiler] value:
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/glenum"}
//	defer p.Start().Stop()
//
// Profile files are named after the mode (cpu.pprof, mem.pprof, ...) and
// are analyzed with the pprof tool:
//
//	go tool pprof -http=: /tmp/glenum/cpu.pprof
//
// The pprof build also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
