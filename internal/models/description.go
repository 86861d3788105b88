package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Description is the free-text body of a ticket. Jira Server and API v2 send
// it as a plain string, Jira Cloud API v3 as an Atlassian Document Format
// (ADF) tree. Both decode to plain text.
type Description struct {
	Text string
}

func (d *Description) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		d.Text = ""
		return nil
	case trimmed[0] == '"':
		return json.Unmarshal(trimmed, &d.Text)
	case trimmed[0] == '{':
		var doc adfNode
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return fmt.Errorf("parse description document: %w", err)
		}
		d.Text = strings.TrimSpace(renderBlock(doc))
		return nil
	default:
		return fmt.Errorf("unsupported description value: %s", string(trimmed))
	}
}

func (d Description) MarshalJSON() ([]byte, error) {
	if d.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(d.Text)
}

func (d Description) String() string {
	return d.Text
}

type adfNode struct {
	Type    string         `json:"type"`
	Text    string         `json:"text"`
	Attrs   map[string]any `json:"attrs"`
	Content []adfNode      `json:"content"`
}

func (n adfNode) attr(name string) string {
	if v, ok := n.Attrs[name].(string); ok {
		return v
	}
	return ""
}

func renderBlock(n adfNode) string {
	switch n.Type {
	case "doc", "panel", "expand", "layoutSection", "layoutColumn", "tableCell", "tableHeader":
		return joinBlocks(n.Content, "\n\n")
	case "paragraph", "heading":
		return renderInline(n.Content)
	case "bulletList":
		return renderList(n.Content, func(int) string { return "- " })
	case "orderedList":
		start := 1
		if v, ok := n.Attrs["order"].(float64); ok && v > 0 {
			start = int(v)
		}
		return renderList(n.Content, func(i int) string { return strconv.Itoa(start+i) + ". " })
	case "listItem":
		return joinBlocks(n.Content, "\n")
	case "codeBlock":
		return "```\n" + renderInline(n.Content) + "\n```"
	case "blockquote":
		inner := joinBlocks(n.Content, "\n\n")
		return "> " + strings.ReplaceAll(inner, "\n", "\n> ")
	case "rule":
		return "---"
	case "table":
		return joinBlocks(n.Content, "\n")
	case "tableRow":
		cells := make([]string, 0, len(n.Content))
		for _, cell := range n.Content {
			cells = append(cells, strings.ReplaceAll(renderBlock(cell), "\n", " "))
		}
		return "| " + strings.Join(cells, " | ") + " |"
	default:
		if len(n.Content) > 0 {
			return renderInline(n.Content)
		}
		return renderInline([]adfNode{n})
	}
}

func renderInline(nodes []adfNode) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Type {
		case "text":
			b.WriteString(n.Text)
		case "hardBreak":
			b.WriteString("\n")
		case "mention":
			b.WriteString(n.attr("text"))
		case "emoji":
			if text := n.attr("text"); text != "" {
				b.WriteString(text)
			} else {
				b.WriteString(n.attr("shortName"))
			}
		case "inlineCard", "blockCard", "embedCard":
			b.WriteString(n.attr("url"))
		case "status":
			b.WriteString(n.attr("text"))
		case "date":
			b.WriteString(n.attr("timestamp"))
		default:
			if len(n.Content) > 0 {
				b.WriteString(renderBlock(n))
			}
		}
	}
	return b.String()
}

func joinBlocks(nodes []adfNode, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if text := renderBlock(n); strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, sep)
}

func renderList(items []adfNode, marker func(int) string) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		body := renderBlock(item)
		lines = append(lines, marker(i)+strings.ReplaceAll(body, "\n", "\n  "))
	}
	return strings.Join(lines, "\n")
}
