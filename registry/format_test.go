package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

const variantsXML = `<registry>
    <enums namespace="GL" group="PrimitiveType">
        <enum value="0x0004" name="GL_TRIANGLES"/>
        <enum value="0x0001" name="GL_2D"/>
    </enums>
    <enums namespace="GL" group="AttribMask" type="bitmask">
        <enum value="0x00000100" name="GL_DEPTH_BUFFER_BIT"/>
    </enums>
    <enums namespace="GL">
        <enum value="0x1" name="GL_ACTIVE_PROGRAM_EXT" api="gl"/>
        <enum value="0x8259" name="GL_ACTIVE_PROGRAM_EXT" api="gles2"/>
        <enum value="0x8D65" name="GL_TEXTURE_EXTERNAL_OES" api="gles2"/>
        <enum value="0xFFFFFFFFFFFFFFFF" name="GL_TIMEOUT_IGNORED" type="ull"/>
    </enums>
</registry>`

func loadVariants(t *testing.T) *Registry {
	t.Helper()

	reg, err := ParseString(context.Background(), variantsXML)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	return reg
}

func selectedNames(t *testing.T, reg *Registry, opts ...Option) []string {
	t.Helper()

	entries, err := reg.Select(opts...)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Key.String()
	}

	return names
}

func TestRegistry_Select(t *testing.T) {
	reg := loadVariants(t)

	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{
			name: "generic",
			want: []string{"GL_2D", "GL_DEPTH_BUFFER_BIT", "GL_TIMEOUT_IGNORED", "GL_TRIANGLES"},
		},
		{
			name: "gles2",
			opts: []Option{WithAPI("gles2")},
			want: []string{
				"GL_2D",
				"GL_ACTIVE_PROGRAM_EXT@gles2",
				"GL_DEPTH_BUFFER_BIT",
				"GL_TEXTURE_EXTERNAL_OES@gles2",
				"GL_TIMEOUT_IGNORED",
				"GL_TRIANGLES",
			},
		},
		{
			name: "gl",
			opts: []Option{WithAPI("gl")},
			want: []string{
				"GL_2D",
				"GL_ACTIVE_PROGRAM_EXT@gl",
				"GL_DEPTH_BUFFER_BIT",
				"GL_TIMEOUT_IGNORED",
				"GL_TRIANGLES",
			},
		},
		{
			name: "filtered",
			opts: []Option{WithFilter(mustFilter(t, `"PrimitiveType" in groups`))},
			want: []string{"GL_2D", "GL_TRIANGLES"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectedNames(t, reg, tt.opts...); !slices.Equal(got, tt.want) {
				t.Errorf("Select = %v, want %v", got, tt.want)
			}
		})
	}
}

func mustFilter(t *testing.T, src string) *Filter {
	t.Helper()

	f, err := CompileFilter(src)
	if err != nil {
		t.Fatalf("CompileFilter failed: %v", err)
	}

	return f
}

func TestFormatGo(t *testing.T) {
	reg := loadVariants(t)

	var buf bytes.Buffer

	err := FormatGo(context.Background(), &buf, reg,
		WithStrip(true), WithAPI("gles2"), WithPackage("gles2"))
	if err != nil {
		t.Fatalf("FormatGo failed: %v", err)
	}

	out := buf.String()

	// gofmt alignment varies with the longest name; compare collapsed lines.
	lines := make(map[string]bool)
	for line := range strings.Lines(out) {
		lines[strings.Join(strings.Fields(line), " ")] = true
	}

	for _, want := range []string{
		"// Code generated by glenum. DO NOT EDIT.",
		"package gles2",
		"GLenum uint32",
		"GLbitfield uint32",
		"GL_2D GLenum = 0x1",
		"ACTIVE_PROGRAM_EXT GLenum = 0x8259",
		"DEPTH_BUFFER_BIT GLbitfield = 0x00000100",
		"TEXTURE_EXTERNAL_OES GLenum = 0x8D65",
		"TIMEOUT_IGNORED uint64 = 0xFFFFFFFFFFFFFFFF",
		"TRIANGLES GLenum = 0x4",
	} {
		if !lines[want] {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "type uint64") || strings.Contains(out, "uint64 uint64") {
		t.Errorf("builtin type redeclared:\n%s", out)
	}
}

func TestFormatGo_TypeNames(t *testing.T) {
	reg := loadVariants(t)

	tests := []struct {
		name                string
		enum, bitmask, wide string
		wantDecls           []string
		wantErr             error
	}{
		{
			name:      "shared 32-bit type",
			enum:      "GLenum",
			bitmask:   "GLenum",
			wantDecls: []string{"GLenum uint32"},
		},
		{
			name:      "distinct types",
			wide:      "GLuint64",
			wantDecls: []string{"GLenum uint32", "GLbitfield uint32", "GLuint64 uint64"},
		},
		{
			name:      "predeclared types",
			enum:      "uint32",
			bitmask:   "uint32",
			wantDecls: nil,
		},
		{
			name:    "32-bit and 64-bit share a name",
			enum:    "GLenum",
			wide:    "GLenum",
			wantErr: ErrTypeNameConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := FormatGo(context.Background(), &buf, reg,
				WithTypeNames(tt.enum, tt.bitmask, tt.wide))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FormatGo() error = %v, want %v", err, tt.wantErr)
				}

				if buf.Len() != 0 {
					t.Errorf("wrote output on error:\n%s", buf.String())
				}

				return
			}

			if err != nil {
				t.Fatalf("FormatGo failed: %v", err)
			}

			var decls []string

			for line := range strings.Lines(buf.String()) {
				f := strings.Fields(line)
				if len(f) == 2 && (f[1] == "uint32" || f[1] == "uint64") {
					decls = append(decls, f[0]+" "+f[1])
				}
			}

			if !slices.Equal(decls, tt.wantDecls) {
				t.Errorf("type declarations = %q, want %q\n%s", decls, tt.wantDecls, buf.String())
			}
		})
	}
}

func TestFormatGo_Unstripped(t *testing.T) {
	reg := loadVariants(t)

	var buf bytes.Buffer
	if err := FormatGo(context.Background(), &buf, reg); err != nil {
		t.Fatalf("FormatGo failed: %v", err)
	}

	if !strings.Contains(buf.String(), "package gl\n") ||
		!strings.Contains(buf.String(), "GL_TRIANGLES") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestRegistry_Document(t *testing.T) {
	reg := loadVariants(t)

	doc, err := reg.Document()
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}

	if len(doc.Enums) != 7 {
		t.Errorf("len(Enums) = %d, want 7", len(doc.Enums))
	}

	first := doc.Enums[0]
	if first.Name != "GL_2D" || first.Kind != "enum" || first.Value != "0x1" ||
		!slices.Equal(first.Groups, []string{"PrimitiveType"}) {
		t.Errorf("first record = %+v", first)
	}

	if got := doc.Groups["AttribMask"]; !slices.Equal(got, []string{"GL_DEPTH_BUFFER_BIT"}) {
		t.Errorf("AttribMask = %v", got)
	}

	filtered, err := reg.Document(WithFilter(mustFilter(t, `kind == "wide"`)))
	if err != nil {
		t.Fatal(err)
	}

	if len(filtered.Enums) != 1 || len(filtered.Groups) != 0 {
		t.Errorf("filtered document = %+v", filtered)
	}
}

func TestFormatJSON(t *testing.T) {
	reg := loadVariants(t)

	for _, indent := range []int{0, 2} {
		var buf bytes.Buffer
		if err := FormatJSON(context.Background(), &buf, reg, indent, WithAPI("gl")); err != nil {
			t.Fatalf("FormatJSON failed: %v", err)
		}

		var doc Document
		if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
		}

		if len(doc.Enums) != 5 {
			t.Errorf("indent %d: len(Enums) = %d, want 5", indent, len(doc.Enums))
		}

		if doc.Enums[1].API != "gl" || doc.Enums[1].Value != "0x1" {
			t.Errorf("indent %d: record = %+v", indent, doc.Enums[1])
		}
	}
}

func TestFormatYAML(t *testing.T) {
	reg := loadVariants(t)

	for _, indent := range []int{0, 2} {
		var buf bytes.Buffer
		if err := FormatYAML(context.Background(), &buf, reg, indent); err != nil {
			t.Fatalf("FormatYAML failed: %v", err)
		}

		var doc Document
		if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
			t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
		}

		if len(doc.Enums) != 7 {
			t.Errorf("indent %d: len(Enums) = %d, want 7", indent, len(doc.Enums))
		}

		if doc.Enums[2].Name != "GL_ACTIVE_PROGRAM_EXT" || doc.Enums[2].API != "gles2" {
			t.Errorf("indent %d: record = %+v", indent, doc.Enums[2])
		}
	}
}
