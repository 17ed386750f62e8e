package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwarner/fsprobe/internal/aggregate"
	"github.com/mwarner/fsprobe/internal/filetype"
	"github.com/mwarner/fsprobe/internal/inventory"
)

// EntryItem represents one directory entry in the browser list.
type EntryItem struct {
	Name string
	Path string
	Kind filetype.Kind
	Size int64 // byte length for files, 0 for everything else
}

// Model is the main TUI model: a navigable directory listing with type
// codes, sizes and on-demand cumulative aggregates.
type Model struct {
	prober  *filetype.Prober
	counter *aggregate.Counter

	dir      string
	entries  []EntryItem
	cursor   int
	width    int
	height   int
	quitting bool

	// Status message
	statusMsg string
	statusErr bool
}

// Key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Back      key.Binding
	Aggregate key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("backspace", "h"),
		key.WithHelp("backspace", "parent"),
	),
	Aggregate: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "aggregate"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NewModel creates a browser rooted at dir using the default probes.
func NewModel(dir string) (*Model, error) {
	return NewModelWith(dir, filetype.Default, aggregate.Default)
}

// NewModelWith creates a browser with injected probes for testing.
func NewModelWith(dir string, prober *filetype.Prober, counter *aggregate.Counter) (*Model, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	m := &Model{
		prober:  prober,
		counter: counter,
		dir:     abs,
	}
	if err := m.loadEntries(); err != nil {
		return nil, err
	}
	return m, nil
}

// loadEntries lists and classifies the current directory.
func (m *Model) loadEntries() error {
	dirEntries, err := m.prober.FS.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", m.dir, err)
	}

	m.entries = nil
	for _, entry := range dirEntries {
		path := filepath.Join(m.dir, entry.Name())
		kind, ok := m.prober.Type(path)
		if !ok {
			// vanished between enumeration and classification
			continue
		}
		item := EntryItem{
			Name: entry.Name(),
			Path: path,
			Kind: kind,
		}
		if kind == filetype.KindFile {
			if info, err := m.prober.FS.Lstat(path); err == nil {
				item.Size = info.Size()
			}
		}
		m.entries = append(m.entries, item)
	}
	if m.cursor >= len(m.entries) {
		m.cursor = 0
	}
	return nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, keys.Enter):
			m.descend()

		case key.Matches(msg, keys.Back):
			m.ascend()

		case key.Matches(msg, keys.Aggregate):
			m.aggregateSelected()
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// descend opens the selected directory. Links and special files stay put.
func (m *Model) descend() {
	if m.cursor >= len(m.entries) {
		return
	}
	selected := m.entries[m.cursor]
	if selected.Kind != filetype.KindDir {
		m.statusMsg = fmt.Sprintf("%s is not a directory", selected.Name)
		m.statusErr = true
		return
	}
	prev := m.dir
	m.dir = selected.Path
	m.cursor = 0
	if err := m.loadEntries(); err != nil {
		m.dir = prev
		_ = m.loadEntries()
		m.statusMsg = err.Error()
		m.statusErr = true
		return
	}
	m.statusMsg = ""
	m.statusErr = false
}

func (m *Model) ascend() {
	parent := filepath.Dir(m.dir)
	if parent == m.dir {
		return
	}
	m.dir = parent
	m.cursor = 0
	if err := m.loadEntries(); err != nil {
		m.statusMsg = err.Error()
		m.statusErr = true
		return
	}
	m.statusMsg = ""
	m.statusErr = false
}

// aggregateSelected computes cumulative count and size for the selection.
// Repeated aggregations of the same entry come from the counter's cache.
func (m *Model) aggregateSelected() {
	if m.cursor >= len(m.entries) {
		return
	}
	selected := m.entries[m.cursor]
	count, err := m.counter.FileCount(selected.Path)
	if err != nil {
		m.statusMsg = err.Error()
		m.statusErr = true
		return
	}
	size, err := m.counter.TotalSize(selected.Path)
	if err != nil {
		m.statusMsg = err.Error()
		m.statusErr = true
		return
	}
	m.statusMsg = fmt.Sprintf("%s: %d files, %s", selected.Name, count, inventory.FormatSize(size))
	m.statusErr = false
}

// View renders the browser
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := titleStyle.Render(" fsprobe ")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.dir))
	b.WriteString("\n\n")

	header := fmt.Sprintf("  %-4s %-36s %12s", "TYPE", "NAME", "SIZE")
	b.WriteString(dimStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", 56)))
	b.WriteString("\n")

	visibleHeight := m.height - 10
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	start := 0
	if m.cursor >= visibleHeight {
		start = m.cursor - visibleHeight + 1
	}

	for i := start; i < len(m.entries) && i < start+visibleHeight; i++ {
		entry := m.entries[i]
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = selectedStyle
		}

		size := "-"
		if entry.Kind == filetype.KindFile {
			size = inventory.FormatSize(entry.Size)
		}

		line := fmt.Sprintf("%s%-4s %-36s %12s",
			cursor, entry.Kind.Code(), truncate(entry.Name, 36), size)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render("  (empty)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.statusMsg != "" {
		if m.statusErr {
			b.WriteString(errorBadge.Render(m.statusMsg))
		} else {
			b.WriteString(successBadge.Render(m.statusMsg))
		}
	}
	b.WriteString("\n")

	help := "[↑/↓] navigate  [enter] open  [backspace] parent  [a] aggregate  [q] quit"
	b.WriteString(helpStyle.Render(help))

	return appStyle.Render(b.String())
}

// Run starts the TUI rooted at dir (or the working directory when empty).
func Run(dir string) error {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = wd
	}

	m, err := NewModel(dir)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
