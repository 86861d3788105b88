package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Ilia01/jira-to-pr/internal/config"
	"github.com/Ilia01/jira-to-pr/internal/git"
	"github.com/Ilia01/jira-to-pr/internal/jira"
	"github.com/Ilia01/jira-to-pr/internal/launcher"
	"github.com/Ilia01/jira-to-pr/internal/models"
	"github.com/Ilia01/jira-to-pr/internal/selector"
	"github.com/Ilia01/jira-to-pr/internal/utils"
)

type jiraService interface {
	SearchIssues(ctx context.Context, jql string) ([]models.Ticket, error)
	GetIssue(ctx context.Context, key string) (*models.Ticket, error)
}

type launchService interface {
	Launch(ticket *models.Ticket, projectPath string, dryRun bool) *launcher.Session
}

type branchService interface {
	Root() string
	IsClean() (bool, error)
	PrepareTicketBranch(ticketKey, branch string) (git.BranchAction, string, error)
}

var (
	settingsLoader = config.LoadFromEnvironment

	jiraFactory = func(settings *config.Settings, logger *slog.Logger) (jiraService, error) {
		client, err := jira.NewClient(settings, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	prompterFactory = func(in io.Reader, out io.Writer) selector.Prompter {
		return selector.NewPrompter(in, out)
	}

	launcherFactory = func(out, errOut io.Writer, logger *slog.Logger) launchService {
		return launcher.New(launcher.Options{Out: out, ErrOut: errOut, Logger: logger})
	}

	gitFactory = func(dir string) (branchService, error) {
		client, err := git.NewClient(dir)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
)

func handleRun(cmd *cobra.Command, opts runOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	logger := newCommandLogger(errOut, opts.Verbose)

	utils.DisplayInfo(out, "Loading configuration...")
	settings, err := settingsLoader(opts.EnvFiles...)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "settings", settings)

	projectPath, err := resolveProjectPath(opts.Project)
	if err != nil {
		return err
	}

	utils.DisplayInfo(out, "Connecting to Jira...")
	client, err := jiraFactory(settings, logger)
	if err != nil {
		return err
	}

	tickets, err := fetchTickets(ctx, client, opts, out)
	if err != nil {
		return err
	}
	if opts.Filter != "" {
		before := len(tickets)
		tickets = selector.FilterTickets(tickets, opts.Filter)
		logger.Debug("filtered issues", "pattern", opts.Filter, "before", before, "after", len(tickets))
	}

	selection, err := selector.New(prompterFactory(cmd.InOrStdin(), out), out).SelectTask(tickets)
	if err != nil {
		return err
	}
	if selection.Outcome != selector.OutcomeProceed {
		logger.Debug("selection finished without a task", "outcome", selection.Outcome.String())
		utils.DisplayInfo(out, "Operation cancelled.")
		return nil
	}

	if opts.Branch {
		if err := prepareBranch(selection.Ticket, projectPath, opts, out, logger); err != nil {
			return err
		}
	}

	session := launcherFactory(out, errOut, logger).Launch(selection.Ticket, projectPath, opts.DryRun)

	// The child shares the terminal and handles interrupts itself, so keep
	// waiting for it after our own context is cancelled.
	result, err := session.Wait(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}
	// The launcher already reported spawn failures and non-zero exits.
	if !result.Success() {
		logger.Debug("claude code session ended without success", "exit_code", result.ExitCode, "error", result.Err)
	}
	return nil
}

func fetchTickets(ctx context.Context, client jiraService, opts runOptions, out io.Writer) ([]models.Ticket, error) {
	if opts.Issue != "" {
		utils.DisplayInfo(out, fmt.Sprintf("Fetching issue %s...", opts.Issue))
		ticket, err := client.GetIssue(ctx, opts.Issue)
		if err != nil {
			return nil, err
		}
		return []models.Ticket{*ticket}, nil
	}

	utils.DisplayInfo(out, "Fetching issues...")
	jql := opts.JQL
	if jql == "" {
		jql = jira.DefaultJQL
	}
	return client.SearchIssues(ctx, jql)
}

func prepareBranch(ticket *models.Ticket, projectPath string, opts runOptions, out io.Writer, logger *slog.Logger) error {
	branch := utils.TicketBranchName(opts.BranchPrefix, ticket)
	if opts.DryRun {
		utils.DisplayInfo(out, "Would switch to branch "+branch)
		return nil
	}

	repo, err := gitFactory(projectPath)
	if err != nil {
		return fmt.Errorf("prepare branch: %w", err)
	}
	logger.Debug("preparing ticket branch", "repo", repo.Root(), "branch", branch)
	if clean, err := repo.IsClean(); err == nil && !clean {
		utils.DisplayWarning(out, fmt.Sprintf("Working tree at %s has uncommitted changes, they stay with you on the ticket branch", repo.Root()))
	}

	action, name, err := repo.PrepareTicketBranch(ticket.Key, branch)
	if err != nil {
		return err
	}
	switch action {
	case git.BranchCreated:
		utils.DisplaySuccess(out, "Created branch "+name)
	case git.BranchCheckedOut:
		utils.DisplaySuccess(out, "Switched to branch "+name)
	default:
		utils.DisplayInfo(out, "Staying on branch "+name)
	}
	return nil
}

func resolveProjectPath(project string) (string, error) {
	if project == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(project)
	if err != nil {
		return "", fmt.Errorf("resolve project path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project path %s is not a directory", abs)
	}
	return abs, nil
}
