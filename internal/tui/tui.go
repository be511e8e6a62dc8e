package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	tocCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFAA00"))
)

// Model is the bubbletea model for the reading view.
type Model struct {
	session  *Session
	renderer *Renderer
	viewport viewport.Model

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel builds the reading view around a session.
func NewModel(s *Session, width int, accent string) Model {
	return Model{
		session:  s,
		renderer: NewRenderer(width, accent),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.session.ShowTOC {
			return m.updateTOC(msg)
		}

		switch msg.String() {
		case "q", "Q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "n", "right", "l":
			if m.session.NextChapter() {
				m.setContent()
			}
			return m, nil

		case "p", "left", "h":
			if m.session.PrevChapter() {
				m.setContent()
			}
			return m, nil

		case "t":
			if len(m.session.Book.Content.Toc) > 0 {
				m.session.ShowTOC = true
				m.session.TOCCur = 0
			}
			return m, nil

		case "g", "home":
			m.viewport.GotoTop()
			return m, nil

		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// 1 line of status on top, 1 of controls below.
		vpHeight := msg.Height - 2
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.renderer.Width = min(msg.Width-2, 100)
		m.setContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) updateTOC(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	titles := m.session.TOCTitles()
	switch msg.String() {
	case "up", "k":
		if m.session.TOCCur > 0 {
			m.session.TOCCur--
		}
	case "down", "j":
		if m.session.TOCCur < len(titles)-1 {
			m.session.TOCCur++
		}
	case "enter":
		m.session.ShowTOC = false
		m.session.JumpToTOC(m.session.TOCCur)
		m.setContent()
	case "t", "esc", "q":
		m.session.ShowTOC = false
	}
	return *m, nil
}

func (m *Model) setContent() {
	if !m.ready {
		return
	}
	ch := m.session.Chapter()
	if ch == nil {
		m.viewport.SetContent("Empty book.")
		return
	}
	m.viewport.SetContent(m.renderer.RenderChapter(ch))
	m.viewport.GotoTop()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	if m.session.ShowTOC {
		return m.tocView()
	}

	title := m.session.Book.Metadata.Title
	status := statusStyle.Render(fmt.Sprintf(
		"%s | Chapter %d/%d | %.0f%%",
		title,
		m.session.CurrentChapter+1,
		len(m.session.Book.Content.Chapters),
		m.session.Progress()*100,
	))

	controls := controlsStyle.Render("←/→: chapter  ↑/↓: scroll  T: contents  Q: quit")

	return status + "\n" + m.viewport.View() + "\n" + controls
}

func (m Model) tocView() string {
	var sb strings.Builder
	sb.WriteString(statusStyle.Render("Table of Contents"))
	sb.WriteString("\n\n")

	for i, title := range m.session.TOCTitles() {
		if i == m.session.TOCCur {
			sb.WriteString(tocCursorStyle.Render("> " + title))
		} else {
			sb.WriteString("  " + title)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(controlsStyle.Render("↑/↓: move  ENTER: jump  ESC: close"))
	return sb.String()
}

// Run opens the reading view in the alternate screen and blocks until
// the user quits. The session reflects the final position afterward.
func Run(s *Session, width int, accent string) error {
	m := NewModel(s, width, accent)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
