package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/svgtween/pkg/io"
	"github.com/matzehuels/svgtween/pkg/svg"
	"github.com/matzehuels/svgtween/pkg/timeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// frameHeaders are the columns of the frame table.
var frameHeaders = []string{"", "Frame", "Transition", "t", "Kind", "Interp", "Snapped", "Frozen", "Excluded", "Skipped"}

// =============================================================================
// FrameListModel - Interactive frame browser
// =============================================================================

// FrameListModel is the bubbletea model for browsing a built timeline.
type FrameListModel struct {
	Frames []timeline.Frame
	Cursor int
	Height int
	Offset int
}

// NewFrameListModel creates a new frame list model.
func NewFrameListModel(frames []timeline.Frame) FrameListModel {
	return FrameListModel{
		Frames: frames,
		Height: 15,
	}
}

func (m FrameListModel) Init() tea.Cmd {
	return nil
}

func (m FrameListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Frames)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = len(m.Frames) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		case "n":
			m = m.jumpTransition(1)
		case "p":
			m = m.jumpTransition(-1)
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// jumpTransition moves the cursor to the next (dir > 0) or previous keyframe.
func (m FrameListModel) jumpTransition(dir int) FrameListModel {
	for i := m.Cursor + dir; i >= 0 && i < len(m.Frames); i += dir {
		if m.Frames[i].Keyframe {
			m.Cursor = i
			break
		}
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m FrameListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Frames"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  n/p next/prev keyframe  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Frames) {
		end = len(m.Frames)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, frameRow(m.Frames[i])...))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(frameHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Frames) {
				return lipgloss.NewStyle()
			}
			return frameCellStyle(m.Frames[idx], col, idx == m.Cursor)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Frames) > 0 {
		f := m.Frames[m.Cursor]
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %s", m.Cursor+1, len(m.Frames), io.FrameName(f.Index))))
	}

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// frameRow formats one frame as table cells, without the cursor column.
func frameRow(f timeline.Frame) []string {
	kind := "tween"
	if f.Keyframe {
		kind = "keyframe"
	}
	r := f.Report
	return []string{
		fmt.Sprintf("%03d", f.Index),
		fmt.Sprintf("%d", f.Transition),
		svg.FormatNumber(f.T),
		kind,
		countCell(r.Interpolated),
		countCell(r.Snapped),
		countCell(r.Frozen),
		countCell(r.Excluded),
		countCell(r.Skipped),
	}
}

func countCell(n int) string {
	if n == 0 {
		return "—"
	}
	return fmt.Sprintf("%d", n)
}

// frameCellStyle colours keyframes green and degraded counts amber.
// Columns are offset by one for the cursor column.
func frameCellStyle(f timeline.Frame, col int, current bool) lipgloss.Style {
	base := lipgloss.NewStyle()
	if current {
		base = base.Bold(true)
	}
	switch {
	case col >= 6 && col <= 8 && f.Report.Degraded():
		return base.Foreground(colorYellow)
	case f.Keyframe:
		return base.Foreground(colorGreen)
	case current:
		return base.Foreground(colorCyan)
	}
	return base.Foreground(colorGray)
}

// frameTable renders every frame as a static table.
func frameTable(frames []timeline.Frame) string {
	rows := make([][]string, len(frames))
	for i, f := range frames {
		rows[i] = frameRow(f)
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(frameHeaders[1:]...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return frameCellStyle(frames[row], col+1, false)
		}).
		Render()
}
