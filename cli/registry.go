package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/glenum/log"
	"github.com/ardnew/glenum/registry"
)

type registryConfig struct {
	Source        []string `help:"Registry file(s) or '-' for stdin"                     placeholder:"FILE" short:"s" type:"existingfile"`
	Path          []string `help:"Search directories for ${registryFile} before ${pathEnv}" placeholder:"DIR"            type:"path"`
	Prefix        string   `default:"${namePrefix}" help:"Namespace prefix removed from names."`
	NegativeRadix int      `default:"10"            help:"Radix of negative values (10 or 16)."`
	IgnoreAttr    []string `help:"Enum attributes accepted and ignored (e.g. group)."     placeholder:"NAME"`
}

func (registryConfig) vars() kong.Vars {
	return kong.Vars{
		"registryFile": registryFile,
		"pathEnv":      pathEnv,
		"namePrefix":   registry.DefaultPrefix,
	}
}

func (registryConfig) group() kong.Group {
	var group kong.Group

	group.Key = "registry"
	group.Title = "Registry options"

	return group
}

// sources returns the registry sources given on the command line, or the
// first registry file found on the search path.
func (f *registryConfig) sources(ctx context.Context) []string {
	if len(f.Source) > 0 {
		return f.Source
	}

	dirs := searchPath(f.Path...)

	path, ok := findRegistry(registryFile, dirs)
	if !ok {
		log.DebugContext(ctx, "no registry on search path",
			slog.Any("path", dirs),
		)

		return nil
	}

	log.DebugContext(ctx, "found registry", slog.String("path", path))

	return []string{path}
}

func (f *registryConfig) options(logger log.Logger) []registry.Option {
	return []registry.Option{
		registry.WithLogger(logger),
		registry.WithPrefix(f.Prefix),
		registry.WithNegativeRadix(f.NegativeRadix),
		registry.WithIgnoredAttributes(f.IgnoreAttr...),
	}
}
