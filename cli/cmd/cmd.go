package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/glenum/log"
	"github.com/ardnew/glenum/registry"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable name, or "" without a kong context.
func kongVar(ctx context.Context, name string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[name]
}

type (
	sourcesKey  struct{}
	optionsKey  struct{}
	outputKey   struct{}
	prefixKey   struct{}
	stdinRdrKey struct{}
	sourceFiles struct {
		files    []*os.File
		names    []string
		hasStdin bool
	}
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSources returns a new context.Context naming the registry files that
// commands load. "-" reads stdin.
func WithSources(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourcesKey{}, sources)
}

// WithStdin returns a new context.Context whose "-" source reads r instead
// of os.Stdin.
func WithStdin(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, stdinRdrKey{}, r)
}

// WithRegistryOptions returns a new context.Context carrying the options
// used to load and render registries.
func WithRegistryOptions(ctx context.Context, opts ...registry.Option) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// WithOutput returns a new context.Context whose commands write to w instead
// of os.Stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// WithNamePrefix returns a new context.Context carrying the namespace prefix
// that lookups may omit.
func WithNamePrefix(ctx context.Context, prefix string) context.Context {
	return context.WithValue(ctx, prefixKey{}, prefix)
}

func sourcesFrom(ctx context.Context) []string {
	s, _ := ctx.Value(sourcesKey{}).([]string)

	return s
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinRdrKey{}).(io.Reader); ok {
		return r
	}

	return os.Stdin
}

func registryOptions(ctx context.Context, extra ...registry.Option) []registry.Option {
	opts, _ := ctx.Value(optionsKey{}).([]registry.Option)

	return append(append([]registry.Option{}, opts...), extra...)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok {
		return w
	}

	return os.Stdout
}

func namePrefixFrom(ctx context.Context) string {
	if p, ok := ctx.Value(prefixKey{}).(string); ok {
		return p
	}

	return registry.DefaultPrefix
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens the given registry files.
//
// Duplicates are removed by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin reader
// placed last.
func openSources(sources []string) (*sourceFiles, error) {
	var srcs sourceFiles

	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			continue
		}

		file, key, err := openFile(src)
		if err != nil {
			_ = srcs.Close()

			return nil, ErrOpenSource.Wrap(err).With(slog.String("source", src))
		}

		if _, dup := seen[key]; dup || key == stdinKey {
			srcs.hasStdin = srcs.hasStdin || key == stdinKey
			_ = file.Close()

			continue
		}

		seen[key] = struct{}{}
		srcs.files = append(srcs.files, file)
		srcs.names = append(srcs.names, src)
	}

	if srcs.hasStdin {
		srcs.names = append(srcs.names, stdinSource)
	}

	return &srcs, nil
}

// openFile opens path after resolving it to an absolute, symlink-free
// location, and returns the file's identity.
func openFile(path string) (*os.File, fileKey, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fileKey{}, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fileKey{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, fileKey{}, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()

		return nil, fileKey{}, err
	}

	key, ok := makeFileKey(info)
	if !ok {
		// identity unknown, fall back to the resolved path
		key = fileKey{dev: ^uint64(0), ino: xxh3.HashString(resolved)}
	}

	return file, key, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// readers returns one reader per source, with stdin last.
func (s *sourceFiles) readers(stdin io.Reader) []io.Reader {
	out := make([]io.Reader, 0, len(s.files)+1)
	for _, f := range s.files {
		out = append(out, f)
	}

	if s.hasStdin {
		out = append(out, stdin)
	}

	return out
}

// Close closes every opened file.
func (s *sourceFiles) Close() error {
	var errs []error

	for _, f := range s.files {
		errs = append(errs, f.Close())
	}

	return errors.Join(errs...)
}

// loadRegistry loads every source named in ctx into one registry.
func loadRegistry(ctx context.Context) (*registry.Registry, error) {
	sources := sourcesFrom(ctx)
	if len(sources) == 0 {
		return nil, ErrNoSource
	}

	srcs, err := openSources(sources)
	if err != nil {
		return nil, err
	}
	defer srcs.Close()

	reg, err := registry.LoadAll(ctx, srcs.readers(stdinFrom(ctx)), registryOptions(ctx)...)
	if err != nil {
		return nil, ErrLoadRegistry.Wrap(err).With(slog.Any("sources", srcs.names))
	}

	log.DebugContext(ctx, "registry ready",
		slog.Any("sources", srcs.names),
		slog.Int("enums", reg.Enums.Len()),
		slog.Int("groups", len(reg.Groups)),
	)

	return reg, nil
}

// createOutput returns the writer for path, where "" or "-" is the context
// output. The returned close function must always be called.
func createOutput(ctx context.Context, path string) (io.Writer, func() error, error) {
	if path == "" || path == stdinSource {
		return outputFrom(ctx), func() error { return nil }, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, ErrWriteOutput.Wrap(err).With(slog.String("file", path))
	}

	return file, file.Close, nil
}
