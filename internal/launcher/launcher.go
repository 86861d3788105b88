// Package launcher starts the code assistant on a ticket, or describes the
// invocation in dry-run mode.
package launcher

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Ilia01/jira-to-pr/internal/models"
	"github.com/Ilia01/jira-to-pr/internal/utils"
)

const (
	DefaultCommand = "claude"
	InstallURL     = "https://claude.ai/code"

	promptPreviewLength = 100
	dividerWidth        = 60
)

type Options struct {
	// Command is the executable to start. Defaults to DefaultCommand.
	Command string
	// Out and ErrOut receive progress messages.
	Out    io.Writer
	ErrOut io.Writer
	// Stdio is handed to the child. Defaults to the process' own streams.
	Stdio  Stdio
	Start  StartFunc
	Logger *slog.Logger
}

type Launcher struct {
	command string
	out     io.Writer
	errOut  io.Writer
	stdio   Stdio
	start   StartFunc
	logger  *slog.Logger
}

func New(opts Options) *Launcher {
	l := &Launcher{
		command: opts.Command,
		out:     opts.Out,
		errOut:  opts.ErrOut,
		stdio:   opts.Stdio,
		start:   opts.Start,
		logger:  opts.Logger,
	}
	if l.command == "" {
		l.command = DefaultCommand
	}
	if l.out == nil {
		l.out = os.Stdout
	}
	if l.errOut == nil {
		l.errOut = os.Stderr
	}
	if l.stdio.In == nil {
		l.stdio.In = os.Stdin
	}
	if l.stdio.Out == nil {
		l.stdio.Out = os.Stdout
	}
	if l.stdio.Err == nil {
		l.stdio.Err = os.Stderr
	}
	if l.start == nil {
		l.start = execStart
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// Launch returns once the process start was requested. The outcome arrives on
// the returned session; in dry-run mode the session is already complete and
// nothing is started. projectPath is used as given; callers resolve it.
func (l *Launcher) Launch(ticket *models.Ticket, projectPath string, dryRun bool) *Session {
	prompt := BuildPrompt(ticket)

	if dryRun {
		l.printDryRun(ticket, projectPath, prompt)
		return completedSession(Result{DryRun: true})
	}

	fmt.Fprintf(l.out, "🚀 Launching Claude Code for %s...\n", ticket.Key)
	fmt.Fprintf(l.out, "📁 Project path: %s\n", projectPath)
	fmt.Fprintf(l.out, "💬 Prompt: %s\n\n", utils.Excerpt(prompt, promptPreviewLength))

	session := newSession()
	go l.run(session, ticket.Key, projectPath, prompt)
	return session
}

func (l *Launcher) run(session *Session, key, dir, prompt string) {
	l.logger.Debug("starting assistant", "command", l.command, "dir", dir, "issue", key)

	proc, err := l.start(l.command, []string{prompt}, dir, l.stdio)
	if err != nil {
		fmt.Fprintln(l.errOut, utils.Red("❌ Failed to launch Claude Code: "+err.Error()))
		fmt.Fprintln(l.out, "💡 Make sure Claude Code is installed and available in your PATH")
		fmt.Fprintln(l.out, "🔗 Install from: "+InstallURL)
		session.finish(Result{ExitCode: -1, Err: fmt.Errorf("launch %s: %w", l.command, err)})
		return
	}

	code, err := proc.Wait()
	l.logger.Debug("assistant exited", "issue", key, "code", code, "error", err)
	switch {
	case err != nil:
		utils.DisplayError(l.errOut, "Claude Code session failed: "+err.Error())
	case code == 0:
		utils.DisplaySuccess(l.out, "Claude Code session completed for "+key)
	default:
		utils.DisplayWarning(l.out, fmt.Sprintf("Claude Code exited with code %d", code))
	}
	session.finish(Result{ExitCode: code, Err: err})
}

func (l *Launcher) printDryRun(ticket *models.Ticket, projectPath, prompt string) {
	lines := []string{
		"\n🧪 DRY RUN MODE - Claude Code would be launched with:",
		utils.Divider("=", dividerWidth),
		"Command: " + l.command,
		"Working Directory: " + projectPath,
		"Issue: " + ticket.Key,
		"Title: " + ticket.Title(),
		utils.Divider("=", dividerWidth),
		"Prompt:",
		utils.Divider("-", dividerWidth),
		prompt,
		utils.Divider("-", dividerWidth),
		"\n💡 To actually launch Claude Code, run without --dry-run option",
	}
	fmt.Fprintln(l.out, strings.Join(lines, "\n"))
}
