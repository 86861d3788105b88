package selector

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// TUIPrompter runs a bubbletea program per question.
type TUIPrompter struct {
	in  io.Reader
	out io.Writer
}

func NewTUIPrompter(in io.Reader, out io.Writer) *TUIPrompter {
	return &TUIPrompter{in: in, out: out}
}

func (p *TUIPrompter) Choose(message string, options []string, pageSize int) (int, error) {
	if len(options) == 0 {
		return -1, nil
	}
	final, err := p.run(newPickerModel(message, options, pageSize))
	if err != nil {
		return -1, err
	}
	picker, ok := final.(pickerModel)
	if !ok {
		return -1, errors.New("unexpected picker state")
	}

	answer := "Cancel"
	if picker.chosen >= 0 {
		answer = options[picker.chosen]
	}
	fmt.Fprintf(p.out, "%s %s\n", questionStyle.Render("? "+message), answerStyle.Render(answer))
	return picker.chosen, nil
}

func (p *TUIPrompter) Confirm(message string, defaultYes bool) (bool, error) {
	final, err := p.run(newConfirmModel(message, defaultYes))
	if err != nil {
		return false, err
	}
	confirm, ok := final.(confirmModel)
	if !ok {
		return false, errors.New("unexpected confirm state")
	}

	answer := "No"
	if confirm.answer {
		answer = "Yes"
	}
	fmt.Fprintf(p.out, "%s %s\n", questionStyle.Render("? "+message), answerStyle.Render(answer))
	return confirm.answer, nil
}

func (p *TUIPrompter) run(model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}

// NewPrompter returns a TUIPrompter when in is a terminal and a LinePrompter
// otherwise.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return NewTUIPrompter(in, out)
	}
	return NewLinePrompter(in, out)
}
