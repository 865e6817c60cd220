package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/glenum/cli/cmd"
	"github.com/ardnew/glenum/pkg"
)

// CLI is the top-level command-line interface for glenum.
type CLI struct {
	Log      logConfig      `embed:"" group:"log"      prefix:"log-"`
	Pprof    pprofConfig    `embed:"" group:"pprof"    prefix:"pprof-"`
	Registry registryConfig `embed:"" group:"registry"`

	Init   cmd.Init   `cmd:"" help:"Initialize configuration file"`
	Gen    cmd.Gen    `cmd:"" default:"1" help:"Generate Go constant declarations"`
	Dump   cmd.Dump   `cmd:"" help:"Dump registry enums as JSON or YAML"`
	Lookup cmd.Lookup `cmd:"" help:"Print declarations of named enums"`
	Check  cmd.Check  `cmd:"" help:"Load registries and report a summary"`
	Browse cmd.Browse `cmd:"" help:"Interactively search registry enums"`
}

// Run executes the glenum CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars()).
		CloneWith(cli.Registry.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that parse errors are reported with the
	// requested format regardless of flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group(), cli.Registry.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolveYAML, configFilePath+cmd.ConfigExt),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSources(ctx, cli.Registry.sources(ctx))
	ctx = cmd.WithRegistryOptions(ctx, cli.Registry.options(cli.Log.registryLogger())...)
	ctx = cmd.WithNamePrefix(ctx, cli.Registry.Prefix)

	return ktx.Run(ctx, &cli)
}
