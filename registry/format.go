package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"go/format"
	"go/token"
	"go/types"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Select returns one entry per constant name, ordered by name.
//
// With [WithAPI], the variant for that API is preferred and the
// API-independent variant is used otherwise; names defined only for other
// APIs are omitted. Without it, only API-independent entries are returned.
// [WithFilter] further restricts the result.
func (r *Registry) Select(opts ...Option) ([]Entry, error) {
	return r.selectEntries(makeOptions(opts...), true)
}

// selectEntries returns entries ordered by key. When collapse is false and no
// API is requested, every variant is kept.
func (r *Registry) selectEntries(o options, collapse bool) ([]Entry, error) {
	var (
		groups = r.membership()
		keys   = r.Enums.Keys()
		out    []Entry
	)

	keep := func(k Key) error {
		v, _ := r.Enums.Lookup(k)
		e := Entry{Key: k, Value: v}

		ok, err := o.filter.Match(e, groups[k.Name])
		if err != nil {
			return err
		}

		if ok {
			out = append(out, e)
		}

		return nil
	}

	for i := 0; i < len(keys); {
		j := i + 1
		for j < len(keys) && keys[j].Name == keys[i].Name {
			j++
		}

		variants := keys[i:j]
		i = j

		if !collapse && o.api == "" {
			for _, k := range variants {
				if err := keep(k); err != nil {
					return nil, err
				}
			}

			continue
		}

		// keys are sorted by API, so an API-independent variant is first
		var pick *Key

		for n := range variants {
			switch variants[n].API {
			case o.api:
				pick = &variants[n]
			case "":
				if pick == nil {
					pick = &variants[n]
				}
			}
		}

		if pick == nil {
			continue
		}

		if err := keep(*pick); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// FormatGo writes a Go source file declaring every selected entry (see
// [Registry.Select]) as a constant.
//
// With [WithStrip], names lose their namespace prefix unless the result would
// not be a valid Go identifier (e.g. GL_2D), in which case the full name is
// kept.
func FormatGo(ctx context.Context, w io.Writer, reg *Registry, opts ...Option) error {
	o := makeOptions(opts...)

	entries, err := reg.selectEntries(o, true)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by glenum. DO NOT EDIT.\n\npackage %s\n\n", o.pkgName)

	decls, err := typeDecls(o)
	if err != nil {
		return err
	}

	if len(decls) > 0 {
		fmt.Fprintf(&buf, "type (\n\t%s\n)\n\n", strings.Join(decls, "\n\t"))
	}

	buf.WriteString("const (\n")

	for _, e := range entries {
		strip := o.strip
		if strip && len(e.Key.Name) >= len(o.prefix) &&
			!token.IsIdentifier(e.Key.Name[len(o.prefix):]) {
			o.logger.DebugContext(ctx, "keeping prefix",
				slog.String("name", e.Key.Name))

			strip = false
		}

		decl, err := render(e.Key, e.Value, strip, o)
		if err != nil {
			return err
		}

		buf.WriteString("\t" + decl + "\n")
	}

	buf.WriteString(")\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return ErrGenerateSource.Wrap(err).With(slog.String("package", o.pkgName))
	}

	o.logger.DebugContext(ctx, "generated go source",
		slog.String("package", o.pkgName),
		slog.Int("constants", len(entries)),
		slog.Int("bytes", len(src)),
	)

	_, err = w.Write(src)

	return err
}

// typeDecls returns the type specs for the configured type names. Names that
// are predeclared or qualified are not declared. A name shared by kinds of
// the same width is declared once; one shared by a 32-bit and a 64-bit kind
// fails with [ErrTypeNameConflict].
func typeDecls(o options) ([]string, error) {
	var (
		decls []string
		base  = make(map[string]string, 3)
	)

	for _, t := range []struct{ name, base string }{
		{o.enumType, "uint32"},
		{o.bitmaskType, "uint32"},
		{o.wideType, "uint64"},
	} {
		if types.Universe.Lookup(t.name) != nil || strings.Contains(t.name, ".") {
			continue
		}

		if prev, ok := base[t.name]; ok {
			if prev != t.base {
				return nil, ErrTypeNameConflict.With(slog.String("type", t.name))
			}

			continue
		}

		base[t.name] = t.base
		decls = append(decls, t.name+" "+t.base)
	}

	return decls, nil
}

// Record is the serialized form of one entry.
type Record struct {
	Name   string   `json:"name"             yaml:"name"`
	API    string   `json:"api,omitempty"    yaml:"api,omitempty"`
	Kind   string   `json:"kind"             yaml:"kind"`
	Value  string   `json:"value"            yaml:"value"`
	Groups []string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Document is the serialized form of a registry.
type Document struct {
	Enums  []Record            `json:"enums"            yaml:"enums"`
	Groups map[string][]string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Document converts the entries selected by opts into their serialized form.
// Unlike [Registry.Select], every API variant is kept unless [WithAPI] is
// given.
func (r *Registry) Document(opts ...Option) (Document, error) {
	entries, err := r.selectEntries(makeOptions(opts...), false)
	if err != nil {
		return Document{}, err
	}

	groups := r.membership()
	doc := Document{Enums: make([]Record, 0, len(entries))}
	kept := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		doc.Enums = append(doc.Enums, Record{
			Name:   e.Key.Name,
			API:    e.Key.API,
			Kind:   e.Value.Kind.String(),
			Value:  e.Value.Literal(),
			Groups: groups[e.Key.Name],
		})
		kept[e.Key.Name] = struct{}{}
	}

	for name, g := range r.Groups {
		var members []string

		for _, m := range g.Sorted() {
			if _, ok := kept[m]; ok {
				members = append(members, m)
			}
		}

		if len(members) > 0 {
			if doc.Groups == nil {
				doc.Groups = make(map[string][]string)
			}

			doc.Groups[name] = members
		}
	}

	return doc, nil
}

// FormatJSON writes the registry document as JSON. An indent of zero writes
// compact output.
func FormatJSON(_ context.Context, w io.Writer, reg *Registry, indent int, opts ...Option) error {
	doc, err := reg.Document(opts...)
	if err != nil {
		return err
	}

	var data []byte

	if indent > 0 {
		data, err = json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(doc)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the registry document as YAML. An indent of zero writes
// flow style.
func FormatYAML(ctx context.Context, w io.Writer, reg *Registry, indent int, opts ...Option) error {
	doc, err := reg.Document(opts...)
	if err != nil {
		return err
	}

	var yopts []yaml.EncodeOption
	if indent > 0 {
		yopts = append(yopts, yaml.Indent(indent))
	} else {
		yopts = append(yopts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, doc, yopts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
