package models

type Ticket struct {
	ID     string       `json:"id"`
	Key    string       `json:"key"`
	Fields TicketFields `json:"fields"`
}

type TicketFields struct {
	Summary     string       `json:"summary"`
	Description Description  `json:"description"`
	Status      TicketStatus `json:"status"`
	Assignee    *TicketUser  `json:"assignee"`
	Priority    Priority     `json:"priority"`
}

type TicketStatus struct {
	Name string `json:"name"`
}

type Priority struct {
	Name string `json:"name"`
}

type TicketUser struct {
	DisplayName string `json:"displayName"`
}

type SearchResponse struct {
	Issues []Ticket `json:"issues"`
	Total  int      `json:"total"`
}

func (t *Ticket) Title() string {
	return t.Fields.Summary
}

func (t *Ticket) HasDescription() bool {
	return t.Fields.Description.Text != ""
}

func (t *Ticket) AssigneeName() (string, bool) {
	if t.Fields.Assignee == nil || t.Fields.Assignee.DisplayName == "" {
		return "", false
	}
	return t.Fields.Assignee.DisplayName, true
}
