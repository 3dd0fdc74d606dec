package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snipmd/internal/refs"
	"snipmd/internal/render"
	"snipmd/internal/source"
)

// filterMsg triggers filtering after debounce
type filterMsg struct{}

// debounceFilter returns a command that triggers filtering after a delay
func debounceFilter() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return filterMsg{}
	})
}

// model is the Bubble Tea model for browsing snippet regions with a live
// preview of the processed output
type model struct {
	width     int
	height    int
	textInput textinput.Model
	quitting  bool

	items    []*snippetItem
	filtered []*snippetItem
	cursor   int
	offset   int
	selected *snippetItem

	links  refs.TableResolver
	marker render.Styles
}

func newModel(entries []source.Entry, links refs.TableResolver) model {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	items := make([]*snippetItem, len(entries))
	for i, entry := range entries {
		items[i] = newSnippetItem(entry)
	}

	return model{
		textInput: ti,
		items:     items,
		filtered:  items,
		links:     links,
		marker:    render.StylesFromConfig(),
	}
}

// Init implements tea.Model
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 4
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	case filterMsg:
		m.filterItems()
		return m, nil
	}

	prevQuery := m.textInput.Value()
	var cmds []tea.Cmd
	var tiCmd tea.Cmd
	m.textInput, tiCmd = m.textInput.Update(msg)
	cmds = append(cmds, tiCmd)

	// Only trigger debounced filter if query changed
	if m.textInput.Value() != prevQuery {
		cmds = append(cmds, debounceFilter())
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input
func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit
	case "enter":
		if m.cursor < len(m.filtered) {
			m.selected = m.filtered[m.cursor]
			return tea.Quit
		}
	case "up", "ctrl+p":
		m.moveCursor(-1)
	case "down", "ctrl+n":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-10)
	case "pgdown":
		m.moveCursor(10)
	case "home", "ctrl+a":
		m.cursor = 0
		m.adjustOffset()
	case "end", "ctrl+e":
		m.cursor = max(0, len(m.filtered)-1)
		m.adjustOffset()
	}
	return nil
}

// moveCursor moves the cursor by delta, clamping to valid range
func (m *model) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
}

// adjustOffset ensures cursor is visible within the list viewport
func (m *model) adjustOffset() {
	viewHeight := max(m.height-previewHeight-inputLines, 3)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+viewHeight {
		m.offset = m.cursor - viewHeight + 1
	}
	m.offset = clamp(m.offset, 0, max(0, len(m.filtered)-viewHeight))
}

// filterItems filters the entry list based on the search query
func (m *model) filterItems() {
	query := strings.TrimSpace(m.textInput.Value())

	if query == "" {
		m.filtered = m.items
	} else {
		words := strings.Fields(strings.ToLower(query))
		m.filtered = make([]*snippetItem, 0, len(m.items))
		for _, item := range m.items {
			if item.matchesQuery(words) {
				m.filtered = append(m.filtered, item)
			}
		}
	}

	m.cursor = clamp(m.cursor, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
}

const (
	previewHeight = 9 // preview lines + divider
	inputLines    = 2 // divider + input
)

// View implements tea.Model
func (m model) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	width := max(m.width, 80)
	height := max(m.height, 24)

	preview := m.renderPreview(width)
	listHeight := max(height-previewHeight-inputLines, 3)
	list := m.renderList(listHeight)

	padding := max(height-previewHeight-countLines(list)-inputLines, 0)

	var b strings.Builder
	b.WriteString(preview)
	b.WriteString(list)
	b.WriteString(strings.Repeat("\n", padding))
	b.WriteString(m.renderInput(width))
	return b.String()
}

// renderPreview renders the processed snippet for the item under the cursor
func (m model) renderPreview(width int) string {
	var b strings.Builder
	lines := 0
	const maxLines = previewHeight - 1

	if m.cursor < len(m.filtered) {
		item := m.filtered[m.cursor]
		item.process(m.links)

		b.WriteString(styles.Path.Render(item.entry.File))
		if item.entry.Region != "" {
			b.WriteString(styles.Region.Render(" #" + item.entry.Region))
		}
		b.WriteString("\n")
		lines++

		if n := len(item.warnings); n > 0 {
			b.WriteString(styles.Dim.Render(fmt.Sprintf("%d diagnostic(s), first: %s", n, item.warnings[0])))
			b.WriteString("\n")
			lines++
		}

		for _, line := range strings.Split(m.marker.ANSI(item.body), "\n") {
			if lines >= maxLines {
				break
			}
			// Styled lines carry escape sequences; byte truncation
			// would cut them mid-sequence.
			if !strings.Contains(line, "\x1b") {
				line = truncateString(line, width)
			}
			b.WriteString(line)
			b.WriteString("\n")
			lines++
		}
	}

	for lines < maxLines {
		b.WriteString("\n")
		lines++
	}

	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	return b.String()
}

// renderList renders the scrollable list of snippet regions
func (m *model) renderList(maxHeight int) string {
	if len(m.filtered) == 0 {
		return styles.Dim.Render("  no snippet regions found") + "\n"
	}

	start := clamp(m.offset, 0, max(0, len(m.filtered)-1))
	end := min(start+maxHeight, len(m.filtered))

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderListItem(m.filtered[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// renderListItem renders a single list row
func (m model) renderListItem(item *snippetItem, selected bool) string {
	pStyle, rStyle := styles.Path, styles.Region
	if selected {
		pStyle = styles.WithSelection(pStyle)
		rStyle = styles.WithSelection(rStyle)
	}

	path := item.folder + "/" + item.file
	line := pStyle.Render(fmt.Sprintf("%-40s", truncateString(path, 40))) + rStyle.Render(item.entry.Region)
	if selected {
		return styles.Cursor.Render("▶ ") + line
	}
	return "  " + line
}

// renderInput renders the search input at the bottom
func (m model) renderInput(width int) string {
	var b strings.Builder
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render(fmt.Sprintf("%d/%d ", len(m.filtered), len(m.items))))
	b.WriteString(m.textInput.View())
	return b.String()
}

// getTTY returns input and output streams for the TUI, falling back to
// /dev/tty when stdout is piped or captured
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) == 0 {
		out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr
		} else {
			closers = append(closers, func() { out.Close() })
		}

		in, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			in = os.Stdin
		} else {
			closers = append(closers, func() { in.Close() })
		}

		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))

		return in, out, func() {
			for _, c := range closers {
				c()
			}
		}
	}

	return os.Stdin, os.Stdout, func() {}
}

// Run launches the browse TUI over the given entries and returns the
// processed body of the selected snippet. An empty string with ok=false
// means the user cancelled.
func Run(entries []source.Entry, links refs.TableResolver) (body string, ok bool, err error) {
	if len(entries) == 0 {
		return "", false, fmt.Errorf("no snippet regions found")
	}

	ttyIn, ttyOut, cleanup := getTTY()
	RefreshStyles() // Refresh after getTTY sets up the renderer

	m := newModel(entries, links)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(ttyOut), tea.WithInput(ttyIn))
	finalModel, err := p.Run()
	cleanup()
	if err != nil {
		return "", false, err
	}

	result := finalModel.(model)
	if result.selected == nil {
		return "", false, nil
	}
	result.selected.process(result.links)
	return result.selected.body, true, nil
}

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func countLines(s string) int {
	return strings.Count(s, "\n")
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 1 {
		return ""
	}
	return s[:maxLen-1] + "…"
}
