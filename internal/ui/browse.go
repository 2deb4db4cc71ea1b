package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"symgraph/internal/encode"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// browseModel pages through the graphs of one extraction, one viewport per
// graph, tab switching between them.
type browseModel struct {
	payloads []encode.GraphPayload
	index    int
	vp       viewport.Model
	ready    bool
	width    int
}

// NewBrowseModel returns a Bubble Tea model over the given payloads.
// The caller guarantees at least one payload.
func NewBrowseModel(payloads []encode.GraphPayload) tea.Model {
	return &browseModel{payloads: payloads, width: 80}
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.index = (m.index + 1) % len(m.payloads)
			m.refresh()
			return m, nil
		case "shift+tab", "left", "h":
			m.index = (m.index - 1 + len(m.payloads)) % len(m.payloads)
			m.refresh()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-3)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 3
		}
		m.refresh()
		return m, nil
	}
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *browseModel) View() string {
	if !m.ready {
		return "loading…"
	}
	footer := footerStyle.Render(fmt.Sprintf(
		"graph %d/%d  •  tab: next graph  •  ↑/↓: scroll  •  q: quit",
		m.index+1, len(m.payloads)))
	return m.vp.View() + "\n" + footer
}

func (m *browseModel) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(RenderGraph(m.payloads[m.index], m.width))
	m.vp.GotoTop()
}

// Browse runs the interactive browser until the user quits.
func Browse(payloads []encode.GraphPayload) error {
	if len(payloads) == 0 {
		return fmt.Errorf("nothing to browse")
	}
	_, err := tea.NewProgram(NewBrowseModel(payloads), tea.WithAltScreen()).Run()
	return err
}
