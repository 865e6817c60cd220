package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string) // setup function to prepare test
		wantErr error
	}{
		{
			name: "create_new_config",
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "fail_without_force",
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confBase := filepath.Join(t.TempDir(), "config")
			confPath := confBase + ConfigExt

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct {
				Level  string   `default:"info"`
				Prefix string   `default:"GL_"`
				Ignore []string `default:"group,comment"`
				Radix  int      `default:"10"`
				Pretty bool     `default:"true"`
				Empty  string
			}

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confBase,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			err = (&Init{Force: tt.force}).Run(ctx)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() failed: %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, content)
			}

			if got["level"] != "info" || got["prefix"] != "GL_" || got["pretty"] != true {
				t.Errorf("config = %v", got)
			}

			if _, ok := got["empty"]; ok {
				t.Error("empty flag written to config")
			}

			if _, ok := got["help"]; ok {
				t.Error("help flag written to config")
			}

			if ignore, ok := got["ignore"].([]any); !ok || len(ignore) != 2 {
				t.Errorf("ignore = %#v", got["ignore"])
			}
		})
	}
}
