package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/glenum/log"
	"github.com/ardnew/glenum/registry"
)

// Lookup prints the declarations of the named enums.
//
// Names may omit the namespace prefix. Unknown names are reported with the
// closest fuzzy matches.
type Lookup struct {
	Names   []string `arg:""       help:"Enum names to look up."                          name:"name"`
	API     string   `             help:"Only print definitions for this API."            short:"a"`
	Strip   bool     `             help:"Remove the namespace prefix from printed names." short:"S"`
	Groups  bool     `             help:"Also print the groups containing each name."     short:"g"`
	Suggest int      `default:"5" help:"Maximum suggestions for an unknown name."`
}

// Run executes the lookup command.
func (l *Lookup) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	var (
		out     = outputFrom(ctx)
		opts    = registryOptions(ctx)
		prefix  = namePrefixFrom(ctx)
		names   = reg.Enums.Names()
		unknown []slog.Attr
	)

	for _, query := range l.Names {
		name, variants := l.resolve(reg, prefix, query)
		if len(variants) == 0 {
			suggestions := suggest(query, prefix, names, l.Suggest)

			log.DebugContext(ctx, "enum not found",
				slog.String("name", query),
				slog.Any("suggestions", suggestions),
			)

			unknown = append(unknown, slog.Any(query, suggestions))

			continue
		}

		for _, e := range variants {
			decl, err := registry.Render(e.Key, e.Value, l.Strip, opts...)
			if err != nil {
				return err
			}

			if e.Key.API != "" {
				decl += " // " + e.Key.API
			}

			if _, err := fmt.Fprintln(out, decl); err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}

		if groups := reg.GroupsOf(name); l.Groups && len(groups) > 0 {
			_, err := fmt.Fprintf(out, "\t// groups: %s\n", strings.Join(groups, ", "))
			if err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}
	}

	if len(unknown) > 0 {
		return ErrUnknownName.With(slog.GroupAttrs("suggestions", unknown...))
	}

	return nil
}

// resolve finds the variants of query, trying it verbatim and then with the
// namespace prefix.
func (l *Lookup) resolve(
	reg *registry.Registry,
	prefix, query string,
) (string, []registry.Entry) {
	for _, name := range []string{query, prefix + query} {
		var variants []registry.Entry

		for _, e := range reg.Enums.Variants(name) {
			if l.API == "" || e.Key.API == "" || e.Key.API == l.API {
				variants = append(variants, e)
			}
		}

		if len(variants) > 0 {
			return name, variants
		}
	}

	return query, nil
}

// suggest returns up to limit names closest to query.
func suggest(query, prefix string, names []string, limit int) []string {
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 && !strings.HasPrefix(query, prefix) {
		matches = fuzzy.Find(prefix+query, names)
	}

	out := make([]string, 0, min(len(matches), max(limit, 0)))
	for _, m := range matches {
		if len(out) >= limit {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
