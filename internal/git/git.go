package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Ilia01/jira-to-pr/internal/utils"
)

type Client struct {
	worktree string
}

// NewClient opens the work tree containing dir. An empty dir means the
// current directory.
func NewClient(dir string) (*Client, error) {
	out, err := runInDir(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("not in git repository: %w", err)
	}
	return &Client{worktree: strings.TrimSpace(out)}, nil
}

func (c *Client) Root() string {
	return c.worktree
}

func (c *Client) CurrentBranch() (string, error) {
	out, err := runInDir(c.worktree, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(out)
	if branch == "HEAD" {
		return "", fmt.Errorf("detached HEAD state")
	}
	return branch, nil
}

func (c *Client) IsClean() (bool, error) {
	out, err := runInDir(c.worktree, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "", nil
}

func (c *Client) BranchExists(branch string) (bool, error) {
	cmd := exec.Command("git", "rev-parse", "--verify", "--quiet", "refs/heads/"+branch)
	cmd.Dir = c.worktree
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return false, nil
		}
		return false, fmt.Errorf("check branch %s: %w", branch, err)
	}
	return true, nil
}

func (c *Client) CreateBranch(branch string) error {
	_, err := runInDir(c.worktree, "checkout", "-b", branch)
	return err
}

func (c *Client) Checkout(branch string) error {
	_, err := runInDir(c.worktree, "checkout", branch)
	return err
}

type BranchAction int

const (
	// BranchKept means the current branch already belongs to the ticket.
	BranchKept BranchAction = iota
	BranchCheckedOut
	BranchCreated
)

// PrepareTicketBranch puts the work tree on a branch for ticketKey. The
// current branch is kept when it already names the ticket; otherwise branch
// is checked out, or created when missing.
func (c *Client) PrepareTicketBranch(ticketKey, branch string) (BranchAction, string, error) {
	current, err := c.CurrentBranch()
	if err == nil {
		if key, ok := utils.TicketKeyFromBranch(current); ok && strings.EqualFold(key, ticketKey) {
			return BranchKept, current, nil
		}
	}

	exists, err := c.BranchExists(branch)
	if err != nil {
		return BranchKept, "", err
	}
	if exists {
		if err := c.Checkout(branch); err != nil {
			return BranchKept, "", fmt.Errorf("checkout %s: %w", branch, err)
		}
		return BranchCheckedOut, branch, nil
	}
	if err := c.CreateBranch(branch); err != nil {
		return BranchKept, "", fmt.Errorf("create branch %s: %w", branch, err)
	}
	return BranchCreated, branch, nil
}

func runInDir(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%s", strings.TrimSpace(stderr.String()))
		}
		return "", err
	}
	return stdout.String(), nil
}
