package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ilia01/jira-to-pr/internal/models"
)

func ticket(key, summary string) models.Ticket {
	return models.Ticket{Key: key, Fields: models.TicketFields{Summary: summary}}
}

func keys(tickets []models.Ticket) []string {
	out := make([]string, len(tickets))
	for i := range tickets {
		out[i] = tickets[i].Key
	}
	return out
}

func TestFilterTicketsRanksMatches(t *testing.T) {
	tickets := []models.Ticket{
		ticket("PROJ-1", "Fix login"),
		ticket("PROJ-4", "Do a rework"),
		ticket("PROJ-2", "Add dark mode"),
	}

	got := FilterTickets(tickets, "DARK")
	assert.Equal(t, []string{"PROJ-2", "PROJ-4"}, keys(got))
}

func TestFilterTicketsByKey(t *testing.T) {
	tickets := []models.Ticket{
		ticket("PROJ-1", "Fix login"),
		ticket("PROJ-2", "Add dark mode"),
	}

	assert.Equal(t, []string{"PROJ-2"}, keys(FilterTickets(tickets, "proj-2")))
}

func TestFilterTicketsEmptyPattern(t *testing.T) {
	tickets := []models.Ticket{ticket("PROJ-1", "Fix login")}
	assert.Equal(t, tickets, FilterTickets(tickets, "  "))
	assert.Empty(t, FilterTickets(tickets, "zzz"))
}
