package selector

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Ilia01/jira-to-pr/internal/utils"
)

// LinePrompter asks through numbered lists and typed answers. It works on any
// reader, so it serves pipes and tests.
type LinePrompter struct {
	reader *utils.LineReader
	out    io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{reader: utils.NewLineReader(in, out), out: out}
}

// Choose lists every option; pageSize is ignored. An empty answer re-prompts.
func (p *LinePrompter) Choose(message string, options []string, _ int) (int, error) {
	if len(options) == 0 {
		return -1, nil
	}
	for i, option := range options {
		fmt.Fprintf(p.out, "  %s %s\n", utils.Cyan(fmt.Sprintf("%2d)", i+1)), option)
	}

	question := fmt.Sprintf("%s [1-%d]", message, len(options))
	for {
		input, err := p.reader.Prompt(question)
		if err != nil {
			return -1, fmt.Errorf("read selection: %w", err)
		}
		idx, err := strconv.Atoi(input)
		if err != nil || idx < 1 || idx > len(options) {
			fmt.Fprintln(p.out, utils.Yellow(fmt.Sprintf("Please enter a number between 1 and %d.", len(options))))
			continue
		}
		return idx - 1, nil
	}
}

func (p *LinePrompter) Confirm(message string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	question := fmt.Sprintf("%s (%s)", message, hint)
	for {
		input, err := p.reader.Prompt(question)
		if err != nil {
			return false, fmt.Errorf("read confirmation: %w", err)
		}
		switch strings.ToLower(input) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, utils.Yellow("Please answer y or n."))
	}
}
