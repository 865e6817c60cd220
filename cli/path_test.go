package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestSearchPath(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	missing := filepath.Join(first, "missing")

	t.Setenv(pathEnv, second+string(os.PathListSeparator)+missing)

	dirs := searchPath(first)

	i := slices.Index(dirs, first)
	j := slices.Index(dirs, second)

	if i < 0 || j < 0 {
		t.Fatalf("searchPath() = %v, want %q and %q", dirs, first, second)
	}

	if i > j {
		t.Errorf("searchPath() = %v, want %q before %q", dirs, first, second)
	}

	if slices.Contains(dirs, missing) {
		t.Errorf("searchPath() = %v, want %q dropped", dirs, missing)
	}
}

func TestFindRegistry(t *testing.T) {
	empty := t.TempDir()
	full := t.TempDir()
	later := t.TempDir()

	// A directory with the registry's name is not a match.
	err := os.Mkdir(filepath.Join(empty, registryFile), 0o700)
	if err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{full, later} {
		err = os.WriteFile(filepath.Join(dir, registryFile), []byte("<registry/>"), 0o600)
		if err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name   string
		dirs   []string
		want   string
		wantOK bool
	}{
		{"first match", []string{empty, full, later}, filepath.Join(full, registryFile), true},
		{"none", []string{empty}, "", false},
		{"no dirs", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findRegistry(registryFile, tt.dirs)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("findRegistry() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRegistryConfig_Sources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, registryFile)

	err := os.WriteFile(path, []byte("<registry/>"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv(pathEnv, "")

	explicit := registryConfig{Source: []string{"-"}, Path: []string{dir}}
	if got := explicit.sources(t.Context()); !slices.Equal(got, []string{"-"}) {
		t.Errorf("sources() = %v, want [-]", got)
	}

	searched := registryConfig{Path: []string{dir}}
	if got := searched.sources(t.Context()); !slices.Equal(got, []string{path}) {
		t.Errorf("sources() = %v, want [%s]", got, path)
	}
}
