package launcher

import (
	"strings"

	"github.com/Ilia01/jira-to-pr/internal/models"
)

// BuildPrompt renders the instructions handed to the assistant for ticket.
// Description and assignee lines appear only when the ticket has them.
func BuildPrompt(ticket *models.Ticket) string {
	parts := []string{
		"Implement the following Jira ticket: " + ticket.Key,
		"",
		"**Title:** " + ticket.Title(),
		"",
	}

	if ticket.HasDescription() {
		parts = append(parts, "**Description:**", ticket.Fields.Description.Text, "")
	}

	parts = append(parts,
		"**Status:** "+ticket.Fields.Status.Name,
		"**Priority:** "+ticket.Fields.Priority.Name,
	)
	if name, ok := ticket.AssigneeName(); ok {
		parts = append(parts, "**Assignee:** "+name)
	}

	parts = append(parts, "", "Please analyze the codebase and implement this feature according to the requirements.")
	return strings.Join(parts, "\n")
}
