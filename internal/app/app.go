package app

import (
	"context"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X .../internal/app.version=...".
var version = "1.0.0"

type runOptions struct {
	JQL          string
	Project      string
	Issue        string
	Filter       string
	DryRun       bool
	Branch       bool
	BranchPrefix string
	EnvFiles     []string
	Verbose      bool
}

var (
	rootCmd = newRootCommand()

	runHandler = handleRun
)

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:           "jira-to-pr",
		Short:         "Fetch Jira tickets and launch Claude Code for implementation",
		Long:          "jira-to-pr lists your Jira tickets, lets you pick one and starts Claude Code in your project with a prompt describing it.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHandler(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.JQL, "jql", "j", "", "Custom JQL query for filtering issues")
	flags.StringVarP(&opts.Project, "project", "p", "", "Project path for Claude Code (default: current directory)")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be executed without actually launching Claude Code")
	flags.StringVarP(&opts.Issue, "issue", "i", "", "Fetch a single issue by key instead of searching")
	flags.StringVarP(&opts.Filter, "filter", "f", "", "Fuzzy filter applied to issue keys and titles")
	flags.BoolVar(&opts.Branch, "branch", false, "Create or switch to a ticket branch before launching")
	flags.StringVar(&opts.BranchPrefix, "branch-prefix", "feat", "Prefix for ticket branches")
	flags.StringSliceVar(&opts.EnvFiles, "env-file", []string{".env"}, "Environment files to load before reading settings")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}
