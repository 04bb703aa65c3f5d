package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Viewer styles
var (
	viewerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewerHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

var viewerBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1)

// =============================================================================
// TreeViewModel - Scrollable layout viewer
// =============================================================================

// TreeViewModel is the bubbletea model for panning around a text diagram.
type TreeViewModel struct {
	Title string
	Lines []string

	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// newTreeViewModel creates a viewer over a rendered text diagram.
func newTreeViewModel(title, diagram string) TreeViewModel {
	lines := strings.Split(strings.TrimRight(diagram, "\n"), "\n")
	return TreeViewModel{
		Title:  title,
		Lines:  lines,
		Width:  80,
		Height: 20,
	}
}

func (m TreeViewModel) Init() tea.Cmd {
	return nil
}

func (m TreeViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.OffsetY > 0 {
				m.OffsetY--
			}
		case "down", "j":
			if m.OffsetY < m.maxOffsetY() {
				m.OffsetY++
			}
		case "left", "h":
			if m.OffsetX > 0 {
				m.OffsetX--
			}
		case "right", "l":
			if m.OffsetX < m.maxOffsetX() {
				m.OffsetX++
			}
		case "home", "g":
			m.OffsetX = 0
			m.OffsetY = 0
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width - 4
		m.Height = msg.Height - 6
		if m.Width < 10 {
			m.Width = 10
		}
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m TreeViewModel) View() string {
	var b strings.Builder

	b.WriteString(viewerTitleStyle.Render(m.Title))
	b.WriteString("\n")

	b.WriteString(viewerBorderStyle.Width(m.Width).Render(m.window()))
	b.WriteString("\n")
	b.WriteString(viewerHelpStyle.Render("arrows/hjkl pan · g top · q quit"))

	return b.String()
}

// window extracts the visible slice of the diagram.
func (m TreeViewModel) window() string {
	var rows []string
	for i := m.OffsetY; i < m.OffsetY+m.Height && i < len(m.Lines); i++ {
		line := []rune(m.Lines[i])
		if m.OffsetX >= len(line) {
			rows = append(rows, "")
			continue
		}
		end := m.OffsetX + m.Width - 2
		if end > len(line) {
			end = len(line)
		}
		rows = append(rows, string(line[m.OffsetX:end]))
	}
	return strings.Join(rows, "\n")
}

func (m TreeViewModel) maxOffsetY() int {
	max := len(m.Lines) - m.Height
	if max < 0 {
		return 0
	}
	return max
}

func (m TreeViewModel) maxOffsetX() int {
	longest := 0
	for _, l := range m.Lines {
		if n := len([]rune(l)); n > longest {
			longest = n
		}
	}
	max := longest - (m.Width - 2)
	if max < 0 {
		return 0
	}
	return max
}
