package registry

import (
	"slices"

	"github.com/ardnew/glenum/log"
)

// DefaultPrefix is the registry namespace prefix removed from names when
// rendering with stripping enabled.
const DefaultPrefix = "GL_"

// DefaultNegativeRadix is the base used to parse negative values.
const DefaultNegativeRadix = 10

// Default Go type names used for rendered declarations.
const (
	DefaultEnumType    = "GLenum"
	DefaultBitmaskType = "GLbitfield"
	DefaultWideType    = "uint64"
)

// options holds the settings shared by the resolver, folder, loader and
// renderer. Only negativeRadix and ignoredAttrs affect the loaded table, so
// only those participate in the load cache key.
type options struct {
	logger        log.Logger
	negativeRadix int
	ignoredAttrs  []string
	prefix        string
	enumType      string
	bitmaskType   string
	wideType      string
	api           string
	pkgName       string
	filter        *Filter
	strip         bool
}

// Option configures registry loading and rendering.
type Option func(*options)

func makeOptions(opts ...Option) options {
	o := options{
		negativeRadix: DefaultNegativeRadix,
		prefix:        DefaultPrefix,
		enumType:      DefaultEnumType,
		bitmaskType:   DefaultBitmaskType,
		wideType:      DefaultWideType,
		pkgName:       "gl",
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger sets the structured logger for trace-level diagnostics.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithNegativeRadix sets the base used to parse values containing a minus
// sign and no hexadecimal marker. The default is 10. Base 16 reproduces the
// historical behavior of the Rust gl generator this table format comes from.
// Any other radix is ignored.
func WithNegativeRadix(radix int) Option {
	return func(o *options) {
		if radix == 10 || radix == 16 {
			o.negativeRadix = radix
		}
	}
}

// WithIgnoredAttributes accepts and ignores additional enum attributes,
// such as the per-enum "group" attribute of recent registries. Without it,
// any attribute outside the known set fails with [ErrUnrecognizedAttribute].
func WithIgnoredAttributes(keys ...string) Option {
	return func(o *options) {
		o.ignoredAttrs = append(slices.Clone(o.ignoredAttrs), keys...)
		slices.Sort(o.ignoredAttrs)
		o.ignoredAttrs = slices.Compact(o.ignoredAttrs)
	}
}

// WithPrefix sets the namespace prefix removed by stripped rendering.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithTypeNames sets the Go type names used for each value kind.
// Empty arguments keep the current name.
func WithTypeNames(enum, bitmask, wide string) Option {
	return func(o *options) {
		if enum != "" {
			o.enumType = enum
		}

		if bitmask != "" {
			o.bitmaskType = bitmask
		}

		if wide != "" {
			o.wideType = wide
		}
	}
}

// WithStrip enables prefix stripping in [FormatGo].
func WithStrip(strip bool) Option {
	return func(o *options) { o.strip = strip }
}

// WithAPI selects the API variant used by [Registry.Select] and the
// formatters. Empty selects API-independent definitions only.
func WithAPI(api string) Option {
	return func(o *options) { o.api = api }
}

// WithPackage sets the package clause written by [FormatGo].
func WithPackage(name string) Option {
	return func(o *options) {
		if name != "" {
			o.pkgName = name
		}
	}
}

// WithFilter restricts formatted output to entries matching f.
func WithFilter(f *Filter) Option {
	return func(o *options) { o.filter = f }
}
