package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/subnetplan/pkg/subnet"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the tui command for interactive partition editing.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the partition interactively",
		Long: `Browse and edit the partition interactively.

Keys:
  up/down   move the cursor
  s         split the selected subnet
  backspace join the selected subnet back into its parent
  a         toggle the Azure reservation policy
  q         quit and save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, skipped, err := loadWorkspace()
			if err != nil {
				return err
			}
			warnSkipped(skipped)

			model := NewPartitionModel(ws)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}

			m, ok := final.(PartitionModel)
			if !ok || !m.Dirty {
				return nil
			}
			m.ws.pruneAnnotations()
			if err := m.ws.save(); err != nil {
				return err
			}
			printSuccess("Saved partition %s", m.ws.baseCIDR())
			return nil
		},
	}
}

// =============================================================================
// PartitionModel - Interactive partition editing
// =============================================================================

// PartitionModel is the bubbletea model for browsing and editing the
// partition. The cursor moves over the leaf subnets; splits and joins are
// applied to the underlying tree immediately and saved on quit.
type PartitionModel struct {
	ws     *workspace
	leaves []subnet.Leaf
	Cursor int
	Dirty  bool
	Height int
	Offset int
	status string
}

// NewPartitionModel creates a model over the given workspace.
func NewPartitionModel(ws *workspace) PartitionModel {
	m := PartitionModel{ws: ws, Height: 15}
	m.reload()
	return m
}

// reload refreshes the leaf list after a mutation and clamps the cursor.
func (m *PartitionModel) reload() {
	m.leaves = subnet.Leaves(m.ws.Tree, m.ws.RootID)
	if m.Cursor >= len(m.leaves) {
		m.Cursor = len(m.leaves) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m PartitionModel) Init() tea.Cmd {
	return nil
}

func (m PartitionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.leaves)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "s":
			leaf := m.leaves[m.Cursor]
			var changed bool
			m.ws.Tree, changed = m.ws.Tree.Split(leaf.ID)
			if changed {
				m.Dirty = true
				m.status = "split " + leaf.CIDR()
				m.reload()
			} else {
				m.status = leaf.CIDR() + " cannot be split"
			}
		case "backspace":
			leaf := m.leaves[m.Cursor]
			parentID := leaf.ParentID
			if parentID == "" {
				m.status = "root has no parent"
				break
			}
			var changed bool
			m.ws.Tree, changed = m.ws.Tree.Join(parentID)
			if changed {
				m.Dirty = true
				m.status = "joined " + m.ws.Tree[parentID].CIDR()
				m.reload()
			} else {
				m.status = "cannot join " + m.ws.Tree[parentID].CIDR()
			}
		case "a":
			m.ws.Azure = !m.ws.Azure
			m.Dirty = true
			if m.ws.Azure {
				m.status = "azure policy enabled"
			} else {
				m.status = "azure policy disabled"
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PartitionModel) View() string {
	var b strings.Builder

	policy := "classic"
	if m.ws.Azure {
		policy = "azure"
	}
	b.WriteString(StyleTitle.Render("Partition " + m.ws.baseCIDR()))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render("(" + policy + ")"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  s split  ⌫ join  a azure  q quit"))
	b.WriteString("\n\n")

	rows := subnet.Rows(m.ws.Tree, m.ws.RootID, subnet.ViewOptions{
		Azure:    m.ws.Azure,
		Colors:   m.ws.Colors,
		Comments: m.ws.Comments,
	})

	end := m.Offset + m.Height
	if end > len(rows) {
		end = len(rows)
	}

	data := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		data = append(data, []string{
			cursor,
			r.CIDR,
			r.UsableRange,
			strconv.FormatUint(r.HostCapacity, 10),
			r.Comment,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "CIDR", "Usable Range", "Hosts", "Comment").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(rows) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if color := rows[actualIdx].Color; color != "" && col == 1 {
				return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(rows))))
	if m.status != "" {
		b.WriteString(listDimStyle.Render("  · " + m.status))
	}
	b.WriteString("\n")

	return b.String()
}
