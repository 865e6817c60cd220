package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/glenum/registry"
)

// Dump writes the registry's enums and groups in a structured format.
type Dump struct {
	JSON JSON `cmd:"" default:"withargs" help:"Dump as JSON (default)."`
	YAML YAML `cmd:""                    help:"Dump as YAML."`
}

// DumpFlags are the flags shared by every dump format.
type DumpFlags struct {
	Indent int    `default:"2" help:"Indent width; 0 writes compact output."       short:"i"`
	API    string `            help:"Only include definitions for this API."        short:"a"`
	Where  string `            help:"Only include entries matching this expression." short:"w"`
	Output string `default:"-" help:"Output file or '-' for stdout."               short:"o" type:"path"`
}

type formatFunc func(context.Context, *dumpWriter, *registry.Registry, int, ...registry.Option) error

// dumpWriter adapts the output writer so format errors can be told apart
// from write errors.
type dumpWriter struct {
	w   io.Writer
	err error
}

func (d *dumpWriter) Write(p []byte) (int, error) {
	n, err := d.w.Write(p)
	if err != nil && d.err == nil {
		d.err = err
	}

	return n, err
}

func (f *DumpFlags) run(ctx context.Context, format string, fn formatFunc) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	filter, err := registry.CompileFilter(f.Where)
	if err != nil {
		return err
	}

	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	w, closeOutput, err := createOutput(ctx, f.Output)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = ErrWriteOutput.Wrap(cerr).With(slog.String("file", f.Output))
		}
	}()

	dw := &dumpWriter{w: w}

	err = fn(ctx, dw, reg, f.Indent, registryOptions(ctx,
		registry.WithAPI(f.API),
		registry.WithFilter(filter),
	)...)

	switch {
	case dw.err != nil:
		return ErrWriteOutput.Wrap(dw.err).With(slog.String("file", f.Output))
	case err != nil:
		return registry.WrapError(err).With(slog.String("format", format))
	}

	return nil
}

// JSON dumps the registry as JSON.
type JSON struct {
	DumpFlags `embed:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	return j.run(ctx, "json",
		func(ctx context.Context, w *dumpWriter, reg *registry.Registry, indent int, opts ...registry.Option) error {
			return registry.FormatJSON(ctx, w, reg, indent, opts...)
		})
}

// YAML dumps the registry as YAML.
type YAML struct {
	DumpFlags `embed:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return y.run(ctx, "yaml",
		func(ctx context.Context, w *dumpWriter, reg *registry.Registry, indent int, opts ...registry.Option) error {
			return registry.FormatYAML(ctx, w, reg, indent, opts...)
		})
}
