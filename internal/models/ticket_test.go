package models

import (
	"encoding/json"
	"testing"
)

func TestTicketDecodesPlainDescription(t *testing.T) {
	body := `{"id":"10001","key":"TEST-1","fields":{"summary":"Fix login","description":"Steps to reproduce","status":{"name":"To Do"},"priority":{"name":"High"},"assignee":{"displayName":"Alice"}}}`

	var ticket Ticket
	if err := json.Unmarshal([]byte(body), &ticket); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if ticket.ID != "10001" || ticket.Key != "TEST-1" {
		t.Fatalf("unexpected identity: %s %s", ticket.ID, ticket.Key)
	}
	if ticket.Title() != "Fix login" {
		t.Fatalf("unexpected title: %s", ticket.Title())
	}
	if !ticket.HasDescription() || ticket.Fields.Description.Text != "Steps to reproduce" {
		t.Fatalf("unexpected description: %q", ticket.Fields.Description.Text)
	}
	if ticket.Fields.Priority.Name != "High" || ticket.Fields.Status.Name != "To Do" {
		t.Fatalf("unexpected status/priority: %#v", ticket.Fields)
	}
	name, ok := ticket.AssigneeName()
	if !ok || name != "Alice" {
		t.Fatalf("unexpected assignee: %q %v", name, ok)
	}
}

func TestTicketWithoutOptionalFields(t *testing.T) {
	body := `{"key":"TEST-2","fields":{"summary":"No extras","description":null,"assignee":null,"status":{"name":"Done"},"priority":{"name":"Low"}}}`

	var ticket Ticket
	if err := json.Unmarshal([]byte(body), &ticket); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if ticket.HasDescription() {
		t.Fatalf("expected no description, got %q", ticket.Fields.Description.Text)
	}
	if _, ok := ticket.AssigneeName(); ok {
		t.Fatalf("expected no assignee")
	}
}

func TestDescriptionFlattensDocument(t *testing.T) {
	doc := `{
		"type": "doc",
		"version": 1,
		"content": [
			{"type": "heading", "attrs": {"level": 2}, "content": [{"type": "text", "text": "Context"}]},
			{"type": "paragraph", "content": [
				{"type": "text", "text": "Ping "},
				{"type": "mention", "attrs": {"id": "1", "text": "@alice"}},
				{"type": "hardBreak"},
				{"type": "text", "text": "second line"}
			]},
			{"type": "bulletList", "content": [
				{"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "one"}]}]},
				{"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "two"}]}]}
			]},
			{"type": "codeBlock", "attrs": {"language": "go"}, "content": [{"type": "text", "text": "x := 1"}]},
			{"type": "paragraph", "content": []}
		]
	}`

	var d Description
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := "Context\n\nPing @alice\nsecond line\n\n- one\n- two\n\n```\nx := 1\n```"
	if d.Text != want {
		t.Fatalf("flattened text mismatch:\n got: %q\nwant: %q", d.Text, want)
	}
}

func TestDescriptionOrderedListStart(t *testing.T) {
	doc := `{"type":"doc","content":[{"type":"orderedList","attrs":{"order":3},"content":[
		{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"c"}]}]},
		{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"d"}]}]}
	]}]}`

	var d Description
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if d.Text != "3. c\n4. d" {
		t.Fatalf("unexpected ordered list: %q", d.Text)
	}
}

func TestEmptyDocumentCountsAsNoDescription(t *testing.T) {
	body := `{"key":"TEST-3","fields":{"summary":"s","description":{"type":"doc","version":1,"content":[]},"status":{"name":"To Do"},"priority":{"name":"Medium"}}}`

	var ticket Ticket
	if err := json.Unmarshal([]byte(body), &ticket); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if ticket.HasDescription() {
		t.Fatalf("expected empty document to count as no description")
	}
}

func TestDescriptionRejectsUnexpectedValue(t *testing.T) {
	var d Description
	if err := json.Unmarshal([]byte(`42`), &d); err == nil {
		t.Fatalf("expected error for numeric description")
	}
}

func TestDescriptionMarshalsAsText(t *testing.T) {
	data, err := json.Marshal(TicketFields{Description: Description{Text: "hello"}})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded TicketFields
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Description.Text != "hello" {
		t.Fatalf("unexpected description after round trip: %q", decoded.Description.Text)
	}
}
