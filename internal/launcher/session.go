package launcher

import "context"

// Result is the final state of a launch.
type Result struct {
	// ExitCode is the process exit code, or -1 when it never started or its
	// code is unknown.
	ExitCode int
	Err      error
	DryRun   bool
}

func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Session tracks one launch. The result is published exactly once.
type Session struct {
	done   chan struct{}
	result Result
}

func newSession() *Session {
	return &Session{done: make(chan struct{})}
}

func completedSession(result Result) *Session {
	s := newSession()
	s.finish(result)
	return s
}

func (s *Session) finish(result Result) {
	s.result = result
	close(s.done)
}

// Done is closed once the result is available.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session finishes or ctx is done.
func (s *Session) Wait(ctx context.Context) (Result, error) {
	select {
	case <-s.done:
		return s.result, nil
	case <-ctx.Done():
		return Result{ExitCode: -1}, ctx.Err()
	}
}
