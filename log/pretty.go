package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles used by the pretty handlers. lipgloss drops the color sequences when
// the output is not a terminal.
var (
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stringStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	trueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	falseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	otherStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

func levelStyle(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return falseStyle.Bold(true)
	case level >= slog.LevelWarn:
		return numberStyle.Bold(true)
	case level >= slog.LevelInfo:
		return trueStyle
	default:
		return timeStyle
	}
}

func levelName(level slog.Level) string {
	if Level(level) == LevelTrace {
		return strings.ToUpper(LevelTrace.String())
	}

	return level.String()
}

// prettyBase holds state shared by both pretty handlers.
type prettyBase struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	groups     []string
}

func (h *prettyBase) enabled(level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

// qualify prefixes a key with the open groups.
func (h *prettyBase) qualify(key string) string {
	if len(h.groups) == 0 {
		return key
	}

	return strings.Join(h.groups, ".") + "." + key
}

func (h *prettyBase) source(r slog.Record) string {
	if !h.opts.AddSource {
		return ""
	}

	if src := r.Source(); src != nil {
		return src.File + ":" + strconv.Itoa(src.Line)
	}

	return ""
}

func (h *prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h prettyBase) with(attrs []slog.Attr, group string) prettyBase {
	for _, a := range attrs {
		a.Key = h.qualify(a.Key)
		h.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], a)
	}

	if group != "" {
		h.groups = append(h.groups[:len(h.groups):len(h.groups)], group)
	}

	return h
}

// prettyTextHandler writes colorized key=value records on one line.
type prettyTextHandler struct{ prettyBase }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{prettyBase{
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			h.writePair(buf, slog.TimeKey, timeStyle.Render(ts))
		}
	}

	h.writePair(buf, slog.LevelKey,
		levelStyle(r.Level).Render(levelName(r.Level)))

	if src := h.source(r); src != "" {
		h.writePair(buf, slog.SourceKey, stringStyle.Render(src))
	}

	h.writePair(buf, slog.MessageKey, stringStyle.Render(r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, strings.Join(h.groups, "."), a)

		return true
	})

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.with(attrs, "")}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.with(nil, name)}
}

func (h *prettyTextHandler) writePair(buf *bytes.Buffer, key, value string) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(keyStyle.Render(key))
	buf.WriteByte('=')
	buf.WriteString(value)
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, key, ga)
		}

		return
	}

	h.writePair(buf, key, renderValue(a.Value))
}

// prettyJSONHandler writes colorized, indented JSON-like records.
type prettyJSONHandler struct{ prettyBase }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{prettyBase{
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	first := true

	buf.WriteString("{\n")

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			h.writeField(buf, &first, 1, slog.TimeKey, timeStyle.Render(ts))
		}
	}

	h.writeField(buf, &first, 1, slog.LevelKey,
		levelStyle(r.Level).Render(levelName(r.Level)))

	if src := h.source(r); src != "" {
		h.writeField(buf, &first, 1, slog.SourceKey, stringStyle.Render(src))
	}

	h.writeField(buf, &first, 1, slog.MessageKey, stringStyle.Render(r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, &first, 1, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		if len(h.groups) > 0 {
			a.Key = h.qualify(a.Key)
		}

		h.writeAttr(buf, &first, 1, a)

		return true
	})

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.with(attrs, "")}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.with(nil, name)}
}

func (h *prettyJSONHandler) writeField(
	buf *bytes.Buffer,
	first *bool,
	depth int,
	key, value string,
) {
	if !*first {
		buf.WriteString(",\n")
	}

	*first = false

	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString(keyStyle.Render(key))
	buf.WriteString(": ")
	buf.WriteString(value)
}

func (h *prettyJSONHandler) writeAttr(
	buf *bytes.Buffer,
	first *bool,
	depth int,
	a slog.Attr,
) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() != slog.KindGroup {
		h.writeField(buf, first, depth, a.Key, renderValue(a.Value))

		return
	}

	if !*first {
		buf.WriteString(",\n")
	}

	*first = false

	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString(keyStyle.Render(a.Key))
	buf.WriteString(": {\n")

	inner := true
	for _, ga := range a.Value.Group() {
		h.writeAttr(buf, &inner, depth+1, ga)
	}

	buf.WriteString("\n")
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString("}")
}

// renderValue styles a resolved attribute value by kind.
func renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return stringStyle.Render(v.String())

	case slog.KindInt64:
		return numberStyle.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return numberStyle.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return numberStyle.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return trueStyle.Render("true")
		}

		return falseStyle.Render("false")

	case slog.KindDuration:
		return otherStyle.Render(v.Duration().String())

	case slog.KindTime:
		return timeStyle.Render(v.Time().String())

	default:
		if v.Any() == nil {
			return keyStyle.Render("null")
		}

		return stringStyle.Render(fmt.Sprint(v.Any()))
	}
}
