package browse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/glenum/log"
	"github.com/ardnew/glenum/registry"
)

// ErrEmptyRegistry is returned by [Run] for a registry with no entries.
var ErrEmptyRegistry = errors.New("registry has no enums")

const (
	prompt        = "➜ "
	defaultWidth  = 80
	defaultHeight = 24
	// rows used by everything but the match list
	chromeHeight = 8
)

// Config configures [Run].
type Config struct {
	// CacheDir holds the query history. Empty disables persistence.
	CacheDir string
	Logger   log.Logger
	// Options are passed to [registry.Render] for the detail pane.
	Options []registry.Option
	// Strip starts the browser with prefix stripping enabled.
	Strip bool
	// Input and Output override the terminal, mainly for tests.
	Input  io.Reader
	Output io.Writer
}

// model is the Bubble Tea model for the browser.
type model struct {
	ctxFunc    func() context.Context
	logger     log.Logger
	input      textinput.Model
	reg        *registry.Registry
	opts       []registry.Option
	names      []string
	groups     map[string][]string
	matches    fuzzy.Matches
	history    *History
	historyIdx int
	cursor     int // selected match
	offset     int // first visible match
	width      int
	height     int
	strip      bool
	quitting   bool
}

// Run starts the interactive browser over reg and blocks until the user
// quits.
func Run(ctx context.Context, reg *registry.Registry, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if reg == nil || reg.Enums.Len() == 0 {
		return ErrEmptyRegistry
	}

	var history *History
	if cfg.CacheDir != "" {
		history = NewHistory(filepath.Join(cfg.CacheDir, baseHistory))
	} else {
		history = NewHistory("")
	}

	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("error", err.Error()))
	}

	cfg.Logger.TraceContext(ctx, "browse start",
		slog.Int("enums", reg.Enums.Len()),
		slog.Int("groups", len(reg.Groups)),
		slog.Int("history", history.Len()),
	)

	m := newModel(ctx, reg, history, cfg)

	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		popts = append(popts, tea.WithInput(cfg.Input))
	}

	if cfg.Output != nil {
		popts = append(popts, tea.WithOutput(cfg.Output))
	}

	_, err = tea.NewProgram(m, popts...).Run()

	return err
}

func newModel(
	ctx context.Context,
	reg *registry.Registry,
	history *History,
	cfg Config,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Placeholder = "fuzzy search"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	groups := make(map[string][]string)
	for _, name := range reg.Enums.Names() {
		groups[name] = reg.GroupsOf(name)
	}

	m := model{
		ctxFunc:    func() context.Context { return ctx },
		logger:     cfg.Logger,
		input:      ti,
		reg:        reg,
		opts:       cfg.Options,
		names:      reg.Enums.Names(),
		groups:     groups,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		height:     defaultHeight,
		strip:      cfg.Strip,
	}

	m.refresh()

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(prompt) - 2
		m.scroll()

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "browse keypress",
		slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEsc:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.refresh()

		return m, nil

	case tea.KeyUp:
		m.move(-1)

		return m, nil

	case tea.KeyDown:
		m.move(1)

		return m, nil

	case tea.KeyPgUp:
		m.move(-m.rows())

		return m, nil

	case tea.KeyPgDown:
		m.move(m.rows())

		return m, nil

	case tea.KeyTab:
		m.strip = !m.strip

		return m, nil

	case tea.KeyCtrlP:
		return m.historyStep(-1), nil

	case tea.KeyCtrlN:
		return m.historyStep(1), nil

	case tea.KeyEnter:
		return m.submit()
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

// submit records the query and prints the selected declarations above the
// program output.
func (m model) submit() (model, tea.Cmd) {
	name, ok := m.selected()
	if !ok {
		return m, nil
	}

	if err := m.history.Add(m.input.Value()); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.String("error", err.Error()))
	}

	m.historyIdx = m.history.Len()

	lines := m.declarations(name)

	return m, tea.Println(resultStyle.Render(strings.Join(lines, "\n")))
}

func (m model) historyStep(delta int) model {
	idx := m.historyIdx + delta
	if idx < 0 || idx > m.history.Len() {
		return m
	}

	m.historyIdx = idx

	line, err := m.history.Line(idx)
	if err != nil {
		line = ""
	}

	m.input.SetValue(line)
	m.input.CursorEnd()
	m.refresh()

	return m
}

// refresh recomputes matches for the current query.
func (m *model) refresh() {
	query := strings.TrimSpace(m.input.Value())

	if query == "" {
		m.matches = make(fuzzy.Matches, len(m.names))
		for i, name := range m.names {
			m.matches[i] = fuzzy.Match{Str: name, Index: i}
		}
	} else {
		m.matches = fuzzy.Find(query, m.names)
	}

	m.cursor, m.offset = 0, 0
}

func (m *model) move(delta int) {
	if len(m.matches) == 0 {
		return
	}

	m.cursor = min(max(m.cursor+delta, 0), len(m.matches)-1)
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *model) scroll() {
	rows := m.rows()

	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case m.cursor >= m.offset+rows:
		m.offset = m.cursor - rows + 1
	}
}

func (m model) rows() int {
	return max(m.height-chromeHeight, 1)
}

func (m model) selected() (string, bool) {
	if m.cursor >= len(m.matches) {
		return "", false
	}

	return m.matches[m.cursor].Str, true
}

// declarations renders every API variant of name.
func (m model) declarations(name string) []string {
	var lines []string

	for _, e := range m.reg.Enums.Variants(name) {
		decl, err := registry.Render(e.Key, e.Value, m.strip, m.opts...)
		if err != nil {
			decl = fmt.Sprintf("%s: %v", e.Key, err)
		}

		if e.Key.API != "" {
			decl += " // " + e.Key.API
		}

		lines = append(lines, decl)
	}

	return lines
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("%d/%d", len(m.matches), len(m.names))))
	b.WriteString("\n")

	end := min(m.offset+m.rows(), len(m.matches))
	for i := m.offset; i < end; i++ {
		b.WriteString(renderMatch(m.matches[i], i == m.cursor, m.width))
		b.WriteString("\n")
	}

	if name, ok := m.selected(); ok {
		b.WriteString("\n")

		for _, line := range m.declarations(name) {
			b.WriteString(declStyle.Render(line))
			b.WriteString("\n")
		}

		if g := m.groups[name]; len(g) > 0 {
			b.WriteString(groupStyle.Render("groups: " + strings.Join(g, ", ")))
			b.WriteString("\n")
		}
	}

	b.WriteString(hintStyle.Render(
		"↑/↓ select  tab strip prefix  enter print  ctrl+p/n history  esc quit"))
	b.WriteString("\n")

	return b.String()
}
