package selector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/Ilia01/jira-to-pr/internal/utils"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))
	focusedStyle  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
)

// pickerModel is a single-choice list with an optional fuzzy filter.
type pickerModel struct {
	message  string
	options  []string
	visible  []int
	cursor   int
	offset   int
	pageSize int
	width    int

	filter    textinput.Model
	filtering bool
	slab      *util.Slab

	keys   pickerKeyMap
	chosen int
	done   bool
}

func newPickerModel(message string, options []string, pageSize int) pickerModel {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "type to filter"
	filter.CharLimit = 64

	m := pickerModel{
		message:  message,
		options:  options,
		pageSize: pageSize,
		filter:   filter,
		slab:     util.MakeSlab(100*1024, 2048),
		keys:     defaultPickerKeys,
		chosen:   -1,
	}
	m.applyFilter()
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFiltering(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m pickerModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.done = true
		m.chosen = -1
		return m, tea.Quit
	case key.Matches(msg, m.keys.Select):
		if len(m.visible) == 0 {
			return m, nil
		}
		m.done = true
		m.chosen = m.visible[m.cursor]
		return m, tea.Quit
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	default:
		m.move(msg)
	}
	return m, nil
}

func (m pickerModel) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.done = true
		m.chosen = -1
		return m, tea.Quit
	case key.Matches(msg, m.keys.Clear):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		m.move(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *pickerModel) move(msg tea.KeyMsg) {
	last := len(m.visible) - 1
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < last {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		if last >= 0 {
			m.cursor = last
		}
	}
	m.scroll()
}

// applyFilter ranks the options against the filter query. The last option,
// the cancel entry, always stays reachable at the bottom.
func (m *pickerModel) applyFilter() {
	query := m.filter.Value()
	if strings.TrimSpace(query) == "" || len(m.options) == 0 {
		m.visible = make([]int, len(m.options))
		for i := range m.options {
			m.visible[i] = i
		}
	} else {
		last := len(m.options) - 1
		m.visible = rank(m.options[:last], query, m.slab)
		m.visible = append(m.visible, last)
	}
	m.cursor = 0
	m.offset = 0
}

func (m *pickerModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.pageSize {
		m.offset = m.cursor - m.pageSize + 1
	}
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(questionStyle.Render("? " + m.message))
	sb.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		sb.WriteString(m.filter.View())
		sb.WriteString("\n")
	}

	end := m.offset + m.pageSize
	if end > len(m.visible) {
		end = len(m.visible)
	}
	labelWidth := 0
	if m.width > 2 {
		labelWidth = m.width - 2
	}
	for i := m.offset; i < end; i++ {
		label := m.options[m.visible[i]]
		if labelWidth > 0 {
			label = utils.FitWidth(label, labelWidth)
		}
		if i == m.cursor {
			sb.WriteString(cursorStyle.Render("❯ " + label))
		} else {
			sb.WriteString("  " + label)
		}
		sb.WriteString("\n")
	}

	if len(m.visible) > m.pageSize {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d", m.cursor+1, len(m.visible))))
		sb.WriteString("\n")
	}
	sb.WriteString(mutedStyle.Render("  enter select • j/k move • / filter • esc cancel"))
	sb.WriteString("\n")
	return sb.String()
}

// confirmModel is a yes/no question with two focusable buttons.
type confirmModel struct {
	message  string
	yesFocus bool
	keys     confirmKeyMap
	answer   bool
	done     bool
}

func newConfirmModel(message string, defaultYes bool) confirmModel {
	return confirmModel{message: message, yesFocus: defaultYes, keys: defaultConfirmKeys}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.answer, m.done = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No):
		m.answer, m.done = false, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Toggle):
		m.yesFocus = !m.yesFocus
	case key.Matches(keyMsg, m.keys.Accept):
		m.answer, m.done = m.yesFocus, true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yes, no := buttonStyle, focusedStyle
	if m.yesFocus {
		yes, no = focusedStyle, buttonStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("Yes"), " ", no.Render("No"))
	return questionStyle.Render("? "+m.message) + "\n" + buttons + "\n"
}
