package registry

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// loaded caches registries keyed by content and option hash.
var loaded sync.Map

// state records the outcome of loading one source.
type state struct {
	once sync.Once
	reg  *Registry
	err  error
}

// hashOptions hashes the options that change the loaded table.
func hashOptions(o options) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(o.negativeRadix)
	_ = enc.Encode(o.ignoredAttrs)

	return xxh3.Hash(buf.Bytes())
}

// ParseReader loads a registry document from r.
//
// The input is read through an asynchronous read-ahead buffer. Results are
// cached by content: loading identical input with equivalent options parses
// it once, and every caller receives its own copy of the registry.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Registry, error) {
	o := makeOptions(opts...)

	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	sourceHash := xxh3.Hash(data)
	optsHash := hashOptions(o)
	key := strconv.FormatUint(sourceHash^optsHash, 36)

	value, hit := loaded.LoadOrStore(key, new(state))
	entry, _ := value.(*state)

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Int("source_bytes", len(data)),
		slog.Bool("cache_hit", hit),
	)

	entry.once.Do(func() {
		entry.reg, entry.err = Load(ctx, NewXMLStream(bytes.NewReader(data)), opts...)
	})

	if entry.err != nil {
		// Do not pin failures, e.g. a cancelled context.
		loaded.CompareAndDelete(key, entry)

		return nil, entry.err
	}

	return entry.reg.Clone(), nil
}

// ParseString loads a registry document from a string.
func ParseString(ctx context.Context, s string, opts ...Option) (*Registry, error) {
	return ParseReader(ctx, bytes.NewReader([]byte(s)), opts...)
}

// ClearCache discards all cached registries.
func ClearCache() {
	loaded.Clear()
}
