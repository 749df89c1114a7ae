package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hegde-atri/wg-burrow/internal/nm"
	"github.com/hegde-atri/wg-burrow/internal/rotor"
	"github.com/hegde-atri/wg-burrow/internal/types"
)

// TunnelsMsg carries a fresh snapshot of the tunnel list
type TunnelsMsg struct {
	Tunnels []types.Tunnel
	Current string
	Err     error
}

// ToggledMsg is sent when a toggle request has been issued
type ToggledMsg struct {
	Name  string
	State types.State
	Err   error
}

// App represents the interactive tunnel picker
type App struct {
	version string
	program *tea.Program
}

// New creates the picker on top of a tunnel source and the selection store
// shared with the status bar helper
func New(version string, src nm.Source, store rotor.Store) *App {
	m := newModel(version, src, store)
	p := tea.NewProgram(m, tea.WithAltScreen())

	return &App{
		version: version,
		program: p,
	}
}

// Run starts the picker and blocks until it exits
func (a *App) Run() error {
	_, err := a.program.Run()
	return err
}

// model represents the state of the bubbletea application
type model struct {
	version string
	src     nm.Source
	store   rotor.Store
	toggler *rotor.Toggler

	tunnels []types.Tunnel
	current string // persisted selection
	loaded  bool
	busy    bool // a toggle is in flight
	message string
	err     error

	table  table.Model
	width  int
	height int
}

func newModel(version string, src nm.Source, store rotor.Store) model {
	return model{
		version: version,
		src:     src,
		store:   store,
		toggler: rotor.NewToggler(src, nil),
		table:   createTunnelTable(nil),
	}
}

// Init loads the tunnel list
func (m model) Init() tea.Cmd {
	return m.refresh()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// header and footer take roughly 9 lines
		m.table.SetWidth(m.width - 4)
		m.table.SetHeight(max(m.height-9, 3))

	case TunnelsMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err == nil {
			m.tunnels = msg.Tunnels
			m.current = msg.Current
			m.rebuildTable()
		}
		return m, nil

	case ToggledMsg:
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		for i := range m.tunnels {
			if m.tunnels[i].Name == msg.Name {
				m.tunnels[i].State = msg.State
			}
		}
		m.message = fmt.Sprintf("%s is now %s", msg.Name, msg.State)
		m.rebuildTable()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.message = ""
			return m, m.refresh()
		}

		if len(m.tunnels) == 0 {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			if m.busy {
				return m, nil
			}
			name := m.tunnels[m.table.Cursor()].Name
			m.selectTunnel(name)
			m.busy = true
			m.message = fmt.Sprintf("toggling %s...", name)
			return m, m.toggle(name)
		case "s", " ":
			m.selectTunnel(m.tunnels[m.table.Cursor()].Name)
			return m, nil
		case "n", "p":
			dir := types.Forward
			if msg.String() == "p" {
				dir = types.Backward
			}
			m.selectTunnel(rotor.Rotate(m.current, m.names(), dir))
			return m, nil
		}

		m.table, cmd = m.table.Update(msg)
	}

	return m, cmd
}

// selectTunnel makes name the persisted selection and moves the cursor to it
func (m *model) selectTunnel(name string) {
	m.current = name
	if err := m.store.Save(name); err != nil {
		m.message = fmt.Sprintf("selected %s (not saved: %v)", name, err)
	} else {
		m.message = fmt.Sprintf("selected %s", name)
	}
	m.rebuildTable()
	for i, t := range m.tunnels {
		if t.Name == name {
			m.table.SetCursor(i)
		}
	}
}

func (m model) names() []string {
	names := make([]string, len(m.tunnels))
	for i, t := range m.tunnels {
		names[i] = t.Name
	}
	return names
}

func (m *model) rebuildTable() {
	for i := range m.tunnels {
		m.tunnels[i].Selected = m.tunnels[i].Name == m.current
	}
	cursor := m.table.Cursor()
	m.table.SetRows(tunnelRows(m.tunnels))
	if cursor >= len(m.tunnels) {
		cursor = len(m.tunnels) - 1
	}
	if cursor >= 0 {
		m.table.SetCursor(cursor)
	}
}

func (m model) refresh() tea.Cmd {
	src, store := m.src, m.store
	return func() tea.Msg {
		tunnels, current, err := loadTunnels(context.Background(), src, store)
		return TunnelsMsg{Tunnels: tunnels, Current: current, Err: err}
	}
}

func (m model) toggle(name string) tea.Cmd {
	toggler := m.toggler
	return func() tea.Msg {
		state, err := toggler.Toggle(context.Background(), name)
		return ToggledMsg{Name: name, State: state, Err: err}
	}
}

// loadTunnels lists the tunnels with their states and the current selection.
// A failed listing shows as no tunnels, like the status bar helper does.
func loadTunnels(ctx context.Context, src nm.Source, store rotor.Store) ([]types.Tunnel, string, error) {
	names, err := src.ListTunnels(ctx)
	if err != nil || len(names) == 0 {
		return nil, "", nil
	}

	active, err := src.ListActive(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", nm.ErrQueryActive, err)
	}
	up := make(map[string]bool, len(active))
	for _, a := range active {
		up[a] = true
	}

	current := store.Load(names[0])
	tunnels := make([]types.Tunnel, len(names))
	for i, name := range names {
		tunnels[i] = types.Tunnel{
			Name:     name,
			State:    types.StateOf(up[name]),
			Selected: name == current,
		}
	}
	return tunnels, current, nil
}

func (m model) View() string {
	var (
		primaryColor   = lipgloss.Color("#7D56F4")
		secondaryColor = lipgloss.Color("#FF8C00")
		mutedColor     = lipgloss.Color("#626262")
		errorColor     = lipgloss.Color("#FF6B6B")

		titleStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

		subtitleStyle = lipgloss.NewStyle().
				Foreground(secondaryColor).
				Italic(true).
				MarginBottom(1)

		footerStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				MarginTop(1)

		messageStyle = lipgloss.NewStyle().
				Foreground(secondaryColor)

		errorStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Bold(true)
	)

	header := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("wg-burrow v%s", m.version)),
		subtitleStyle.Render("WireGuard tunnels from NetworkManager"),
	)

	var body string
	switch {
	case !m.loaded:
		body = messageStyle.Render("Loading tunnels...")
	case len(m.tunnels) == 0 && m.err == nil:
		body = messageStyle.Render("No VPNs")
	default:
		body = m.table.View()
	}

	footerText := "r: refresh • q: quit"
	if len(m.tunnels) > 0 {
		footerText = "Enter: up/down • s: select • n/p: next/previous • ↑/↓: navigate • r: refresh • q: quit"
	}

	status := messageStyle.Render(m.message)
	if m.err != nil {
		status = errorStyle.Render("Error: " + m.err.Error())
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		status,
		footerStyle.Render(footerText),
	)

	if m.width > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
	}
	return content
}

// createTunnelTable initializes the table with its columns and theme
func createTunnelTable(tunnels []types.Tunnel) table.Model {
	columns := []table.Column{
		{Title: " ", Width: 2},
		{Title: "Name", Width: 30},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tunnelRows(tunnels)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#7D56F4")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("#7D56F4"))

	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#7D56F4")).
		Bold(true)

	t.SetStyles(s)

	return t
}

func tunnelRows(tunnels []types.Tunnel) []table.Row {
	rows := make([]table.Row, len(tunnels))
	for i, t := range tunnels {
		marker := ""
		if t.Selected {
			marker = "▶"
		}
		state := "🚫 inactive"
		if t.State == types.Active {
			state = "🛡️ active"
		}
		rows[i] = table.Row{marker, t.Name, state}
	}
	return rows
}
