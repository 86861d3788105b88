package selector

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/Ilia01/jira-to-pr/internal/models"
)

var initAlgo sync.Once

type match struct {
	index int
	score int
}

// rank returns the indices of texts matching pattern, best score first.
// Ties keep input order. An empty pattern matches everything.
func rank(texts []string, pattern string, slab *util.Slab) []int {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		all := make([]int, len(texts))
		for i := range texts {
			all[i] = i
		}
		return all
	}

	initAlgo.Do(func() { algo.Init("default") })
	if slab == nil {
		slab = util.MakeSlab(100*1024, 2048)
	}

	runes := []rune(strings.ToLower(pattern))
	matches := make([]match, 0, len(texts))
	for i, text := range texts {
		chars := util.ToChars([]byte(text))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, runes, false, slab)
		if result.Start < 0 {
			continue
		}
		matches = append(matches, match{index: i, score: result.Score})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})

	indices := make([]int, len(matches))
	for i, m := range matches {
		indices[i] = m.index
	}
	return indices
}

// FilterTickets keeps the tickets whose key and title fuzzy-match pattern,
// best match first. An empty pattern returns tickets unchanged.
func FilterTickets(tickets []models.Ticket, pattern string) []models.Ticket {
	if strings.TrimSpace(pattern) == "" {
		return tickets
	}

	texts := make([]string, len(tickets))
	for i := range tickets {
		texts[i] = tickets[i].Key + " " + tickets[i].Title()
	}

	indices := rank(texts, pattern, nil)
	filtered := make([]models.Ticket, 0, len(indices))
	for _, i := range indices {
		filtered = append(filtered, tickets[i])
	}
	return filtered
}
