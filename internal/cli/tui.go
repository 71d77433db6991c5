package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/labelsheet/pkg/config"
	"github.com/matzehuels/labelsheet/pkg/format"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// FormatPickerModel - Interactive label format selection
// =============================================================================

// FormatPickerModel is the bubbletea model for interactive format selection.
type FormatPickerModel struct {
	Formats  []format.LabelFormat
	Cursor   int
	Selected *format.LabelFormat
	Height   int
	Offset   int
}

// NewFormatPickerModel creates a picker with the cursor on the format whose
// id equals current (case-insensitive), or on the first format.
func NewFormatPickerModel(formats []format.LabelFormat, current string) FormatPickerModel {
	m := FormatPickerModel{Formats: formats, Height: 15}
	for i, f := range formats {
		if strings.EqualFold(f.ID, current) {
			m.Cursor = i
			break
		}
	}
	if m.Cursor >= m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m FormatPickerModel) Init() tea.Cmd {
	return nil
}

func (m FormatPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Formats)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Formats) == 0 {
				return m, tea.Quit
			}
			f := m.Formats[m.Cursor]
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m FormatPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Label Format"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Formats))
	visible := m.Formats[m.Offset:end]

	rows := formatRows(visible)
	for i := range rows {
		cursor := "  "
		if m.Offset+i == m.Cursor {
			cursor = "▸ "
		}
		rows[i] = append([]string{cursor}, rows[i]...)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(append([]string{""}, formatHeaders...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Formats))))

	return b.String()
}

// =============================================================================
// Format Table
// =============================================================================

var formatHeaders = []string{"ID", "Name", "Grid", "Label (mm)", "Capacity"}

// formatRows renders one table row per format.
func formatRows(formats []format.LabelFormat) [][]string {
	rows := make([][]string, len(formats))
	for i, f := range formats {
		w, h := f.CellSize()
		rows[i] = []string{
			f.ID,
			f.Name,
			fmt.Sprintf("%d×%d", f.ColumnsPerRow, f.RowsPerSheet),
			fmt.Sprintf("%s × %s", trimFloat(w), trimFloat(h)),
			fmt.Sprintf("%d", f.Capacity()),
		}
	}
	return rows
}

// formatTable renders formats as a static table for non-interactive output.
func formatTable(formats []format.LabelFormat) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(formatHeaders...).
		Rows(formatRows(formats)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return StyleValue
			case col == 4:
				return StyleNumber
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// pickFormat runs the interactive picker and returns the chosen format id,
// or "" when the user quits without choosing.
func pickFormat(cfg *config.Config, current string) (string, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return "", err
	}
	final, err := tea.NewProgram(NewFormatPickerModel(reg.Formats(), current)).Run()
	if err != nil {
		return "", fmt.Errorf("format picker: %w", err)
	}
	m, ok := final.(FormatPickerModel)
	if !ok || m.Selected == nil {
		return "", nil
	}
	return m.Selected.ID, nil
}
