// Package selector lets the user pick one ticket and confirm it.
package selector

import (
	"errors"
	"fmt"
	"io"

	"github.com/Ilia01/jira-to-pr/internal/models"
	"github.com/Ilia01/jira-to-pr/internal/utils"
)

const (
	PageSize = 15

	cancelLabel       = "❌ Cancel"
	descriptionLength = 200
)

type Outcome int

const (
	// OutcomeNone means there was nothing to choose from.
	OutcomeNone Outcome = iota
	OutcomeProceed
	OutcomeCancel
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeProceed:
		return "proceed"
	case OutcomeCancel:
		return "cancel"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Selection is the result of SelectTask. Ticket is set for OutcomeProceed,
// and for OutcomeCancel only when the user declined at the confirmation step.
type Selection struct {
	Outcome Outcome
	Ticket  *models.Ticket
}

// Prompter asks the questions SelectTask needs.
type Prompter interface {
	// Choose returns the index of the chosen option, or -1 when the user
	// aborted the prompt.
	Choose(message string, options []string, pageSize int) (int, error)
	Confirm(message string, defaultYes bool) (bool, error)
}

type Selector struct {
	prompter Prompter
	out      io.Writer
}

func New(prompter Prompter, out io.Writer) *Selector {
	if out == nil {
		out = io.Discard
	}
	return &Selector{prompter: prompter, out: out}
}

func (s *Selector) SelectTask(tickets []models.Ticket) (Selection, error) {
	if len(tickets) == 0 {
		fmt.Fprintln(s.out, "📭 No issues found.")
		return Selection{Outcome: OutcomeNone}, nil
	}
	if s.prompter == nil {
		return Selection{}, errors.New("no prompter configured")
	}

	fmt.Fprintf(s.out, "\n🎯 Found %d issue(s):\n\n", len(tickets))

	options := make([]string, 0, len(tickets)+1)
	for i := range tickets {
		options = append(options, Label(&tickets[i]))
	}
	options = append(options, cancelLabel)

	index, err := s.prompter.Choose("Select a task to implement:", options, PageSize)
	if err != nil {
		return Selection{}, err
	}
	if index < 0 || index >= len(tickets) {
		return Selection{Outcome: OutcomeCancel}, nil
	}

	ticket := &tickets[index]
	s.printDetails(ticket)

	proceed, err := s.prompter.Confirm("Proceed with this task?", true)
	if err != nil {
		return Selection{}, err
	}
	if !proceed {
		return Selection{Outcome: OutcomeCancel, Ticket: ticket}, nil
	}
	return Selection{Outcome: OutcomeProceed, Ticket: ticket}, nil
}

func (s *Selector) printDetails(ticket *models.Ticket) {
	fmt.Fprintf(s.out, "\n📋 Selected: %s\n", ticket.Key)
	fmt.Fprintf(s.out, "📝 Summary: %s\n", ticket.Title())
	if ticket.HasDescription() {
		fmt.Fprintf(s.out, "📖 Description: %s\n", utils.Excerpt(ticket.Fields.Description.Text, descriptionLength))
	}
	fmt.Fprintf(s.out, "📊 Status: %s\n", ticket.Fields.Status.Name)
	fmt.Fprintf(s.out, "⚡ Priority: %s\n\n", ticket.Fields.Priority.Name)
}

// Label is the list entry shown for a ticket. It is always a single line.
func Label(ticket *models.Ticket) string {
	return fmt.Sprintf("%s: %s [%s]", ticket.Key, utils.SingleLine(ticket.Title()), ticket.Fields.Status.Name)
}
