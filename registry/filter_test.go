package registry

import (
	"errors"
	"testing"
)

func TestFilter_Match(t *testing.T) {
	tri := Entry{Key: Key{Name: "GL_TRIANGLES"}, Value: Enum(4)}
	bit := Entry{Key: Key{Name: "GL_DEPTH_BUFFER_BIT"}, Value: Bitmask(0x100)}
	oes := Entry{Key: Key{Name: "GL_TEXTURE_EXTERNAL_OES", API: "gles2"}, Value: Enum(0x8D65)}

	tests := []struct {
		src    string
		entry  Entry
		groups []string
		want   bool
	}{
		{`kind == "bitmask"`, bit, nil, true},
		{`kind == "bitmask"`, tri, nil, false},
		{`"PrimitiveType" in groups`, tri, []string{"PrimitiveType"}, true},
		{`"PrimitiveType" in groups`, tri, nil, false},
		{`name startsWith "GL_TEX"`, oes, nil, true},
		{`api == "gles2"`, oes, nil, true},
		{`api == ""`, tri, nil, true},
		{`value == 4`, tri, nil, true},
		{`value > 255`, bit, nil, true},
		{`name matches "_BIT$" && len(groups) == 0`, bit, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, err := CompileFilter(tt.src)
			if err != nil {
				t.Fatalf("CompileFilter failed: %v", err)
			}

			got, err := f.Match(tt.entry, tt.groups)
			if err != nil {
				t.Fatalf("Match failed: %v", err)
			}

			if got != tt.want {
				t.Errorf("Match(%s) = %v, want %v", tt.entry.Key, got, tt.want)
			}

			if f.String() != tt.src {
				t.Errorf("String() = %q", f.String())
			}
		})
	}
}

func TestFilter_Nil(t *testing.T) {
	f, err := CompileFilter("")
	if err != nil || f != nil {
		t.Fatalf("CompileFilter(\"\") = %v, %v", f, err)
	}

	ok, err := f.Match(Entry{Key: Key{Name: "GL_A"}}, nil)
	if !ok || err != nil {
		t.Errorf("nil filter Match = %v, %v", ok, err)
	}
}

func TestCompileFilter_Errors(t *testing.T) {
	for _, src := range []string{
		`name ==`,
		`unknown == 1`,
		`name`,
	} {
		if _, err := CompileFilter(src); !errors.Is(err, ErrInvalidFilter) {
			t.Errorf("CompileFilter(%q) error = %v, want ErrInvalidFilter", src, err)
		}
	}
}
