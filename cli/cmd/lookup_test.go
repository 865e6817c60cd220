package cmd

import (
	"errors"
	"strings"
	"testing"
)

func TestLookupRun(t *testing.T) {
	tests := []struct {
		name   string
		lookup Lookup
		want   string
	}{
		{
			name:   "full name",
			lookup: Lookup{Names: []string{"GL_TRIANGLES"}},
			want:   "GL_TRIANGLES GLenum = 0x4\n",
		},
		{
			name:   "without prefix",
			lookup: Lookup{Names: []string{"DEPTH_BUFFER_BIT"}, Strip: true},
			want:   "DEPTH_BUFFER_BIT GLbitfield = 0x00000100\n",
		},
		{
			name:   "all variants",
			lookup: Lookup{Names: []string{"GL_ACTIVE_PROGRAM_EXT"}},
			want: "GL_ACTIVE_PROGRAM_EXT GLenum = 0x1 // gl\n" +
				"GL_ACTIVE_PROGRAM_EXT GLenum = 0x8259 // gles2\n",
		},
		{
			name:   "one api",
			lookup: Lookup{Names: []string{"GL_ACTIVE_PROGRAM_EXT"}, API: "gles2"},
			want:   "GL_ACTIVE_PROGRAM_EXT GLenum = 0x8259 // gles2\n",
		},
		{
			name:   "groups",
			lookup: Lookup{Names: []string{"GL_POINTS", "GL_TIMEOUT_IGNORED"}, Groups: true},
			want: "GL_POINTS GLenum = 0x0\n" +
				"\t// groups: PrimitiveType\n" +
				"GL_TIMEOUT_IGNORED uint64 = 0xFFFFFFFFFFFFFFFF\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t)

			if err := tt.lookup.Run(ctx); err != nil {
				t.Fatalf("Lookup.Run() failed: %v", err)
			}

			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestLookupRun_Unknown(t *testing.T) {
	ctx, out := testContext(t)

	l := Lookup{Names: []string{"GL_TRIANGLES", "TRIANGLE"}, Suggest: 2}

	err := l.Run(ctx)
	if !errors.Is(err, ErrUnknownName) {
		t.Fatalf("Lookup.Run() error = %v, want ErrUnknownName", err)
	}

	// Known names are still printed.
	if !strings.Contains(out.String(), "GL_TRIANGLES") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSuggest(t *testing.T) {
	names := []string{"GL_POINTS", "GL_TRIANGLES", "GL_TRIANGLE_STRIP"}

	got := suggest("TRIANGLE", "GL_", names, 5)
	if len(got) != 2 {
		t.Fatalf("suggest = %v, want two triangle names", got)
	}

	for _, s := range got {
		if !strings.Contains(s, "TRIANGLE") {
			t.Errorf("unexpected suggestion %q", s)
		}
	}

	if got := suggest("TRIANGLE", "GL_", names, 1); len(got) != 1 {
		t.Errorf("limit ignored: %v", got)
	}

	if got := suggest("zzz", "GL_", names, 5); len(got) != 0 {
		t.Errorf("suggest(zzz) = %v", got)
	}
}
