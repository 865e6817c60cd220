// Package cmd implements the glenum subcommands.
//
// Commands read their registry sources, registry options and output writer
// from the [context.Context] prepared by package cli; see [WithSources],
// [WithRegistryOptions] and [WithOutput].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path,
	// without extension, of the configuration file.
	ConfigIdentifier = "config"
)
