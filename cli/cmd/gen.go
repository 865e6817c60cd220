package cmd

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/ardnew/glenum/log"
	"github.com/ardnew/glenum/registry"
)

// Gen writes the registry's enums as Go constant declarations.
type Gen struct {
	Package     string `default:"gl"         help:"Package clause of the generated file."              short:"P"`
	Strip       bool   `default:"true"       help:"Remove the namespace prefix from constant names."   negatable:""`
	API         string `                     help:"Prefer definitions specific to this API (e.g. gles2)." short:"a"`
	Where       string `                     help:"Only include entries matching this expression."      short:"w"`
	EnumType    string `default:"GLenum"     help:"Type of ordinary enumerants."`
	BitmaskType string `default:"GLbitfield" help:"Type of bitmask values."`
	WideType    string `default:"uint64"     help:"Type of 64-bit values."`
	Output      string `default:"-"          help:"Output file or '-' for stdout."                      short:"o" type:"path"`
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	filter, err := registry.CompileFilter(g.Where)
	if err != nil {
		return err
	}

	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	// The output is only opened once the whole file has been generated.
	var src bytes.Buffer

	err = registry.FormatGo(ctx, &src, reg, registryOptions(ctx,
		registry.WithPackage(g.Package),
		registry.WithStrip(g.Strip),
		registry.WithAPI(g.API),
		registry.WithFilter(filter),
		registry.WithTypeNames(g.EnumType, g.BitmaskType, g.WideType),
	)...)
	if err != nil {
		return ErrGenerate.Wrap(err)
	}

	w, closeOutput, err := createOutput(ctx, g.Output)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = ErrWriteOutput.Wrap(cerr).With(slog.String("file", g.Output))
		}
	}()

	if _, err = src.WriteTo(w); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("file", g.Output))
	}

	log.DebugContext(ctx, "generated constants",
		slog.String("package", g.Package),
		slog.String("api", g.API),
		slog.String("output", g.Output),
	)

	return nil
}
