package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Ilia01/jira-to-pr/internal/models"
)

const maxBranchWords = 5

var ticketKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]+-[0-9]+$`)

// TicketBranchName returns prefix/KEY/words, where words are the first five
// title words of two or more letters or digits, lower-cased and joined with
// underscores. A title without such words gives prefix/KEY.
func TicketBranchName(prefix string, ticket *models.Ticket) string {
	name := ticket.Key
	if p := strings.Trim(prefix, "/ "); p != "" {
		name = p + "/" + name
	}

	words := branchWords(ticket.Title())
	if len(words) == 0 {
		return name
	}
	return name + "/" + strings.Join(words, "_")
}

func branchWords(title string) []string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		if r == '\'' || r == '’' {
			return false
		}
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})

	words := make([]string, 0, maxBranchWords)
	for _, field := range fields {
		word := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return -1
		}, field)
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		words = append(words, word)
		if len(words) == maxBranchWords {
			break
		}
	}
	return words
}

// TicketKeyFromBranch finds the Jira issue key among the path segments of a
// branch name, as in feat/PROJ-12/add_login.
func TicketKeyFromBranch(branch string) (string, bool) {
	for _, segment := range strings.Split(branch, "/") {
		if ticketKeyPattern.MatchString(segment) {
			return segment, true
		}
	}
	return "", false
}
