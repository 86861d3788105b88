package launcher

import (
	"errors"
	"io"
	"os/exec"
)

// Process is a started child process.
type Process interface {
	// Wait blocks until the process exits. A non-zero exit is reported
	// through the code, not as an error.
	Wait() (int, error)
}

type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StartFunc starts name with args in dir. The arguments are passed as is,
// without a shell.
type StartFunc func(name string, args []string, dir string, stdio Stdio) (Process, error)

func execStart(name string, args []string, dir string, stdio Stdio) (Process, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
