package enumerate

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/osintbo/rastro/internal/config"
)

// Enumerator finds profile URLs matching a candidate username.
type Enumerator interface {
	// Enumerate returns profile URLs found for the username. It never
	// fails: any error (tool absent, non-zero exit, timeout) yields an
	// empty slice, because username enumeration is an optional signal
	// that must not abort a subject's scan.
	Enumerate(ctx context.Context, username string) []string
}

// Sherlock runs the sherlock command-line tool as a subprocess.
type Sherlock struct {
	// command is the executable name or path. Default "sherlock".
	command string

	// timeout bounds each invocation and is also passed to the tool as
	// its per-site check timeout.
	timeout time.Duration

	logger *slog.Logger
}

// SherlockOption configures a Sherlock enumerator.
type SherlockOption func(*Sherlock)

// WithCommand overrides the executable name or path.
func WithCommand(command string) SherlockOption {
	return func(s *Sherlock) {
		s.command = command
	}
}

// WithTimeout sets the per-invocation timeout.
func WithTimeout(timeout time.Duration) SherlockOption {
	return func(s *Sherlock) {
		s.timeout = timeout
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) SherlockOption {
	return func(s *Sherlock) {
		s.logger = logger
	}
}

// NewSherlock creates a subprocess-backed enumerator.
func NewSherlock(opts ...SherlockOption) *Sherlock {
	s := &Sherlock{
		command: config.DefaultSherlockCommand,
		timeout: config.DefaultEnumTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Enumerate invokes the tool once for the username and parses its stdout.
func (s *Sherlock) Enumerate(ctx context.Context, username string) []string {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	seconds := int(s.timeout.Seconds())
	cmd := exec.CommandContext(runCtx, s.command, username,
		"--print-found", fmt.Sprintf("--timeout=%d", seconds))

	output, err := cmd.Output()
	if err != nil {
		s.logger.Debug("username enumeration failed",
			"username", username, "error", err)
		return nil
	}

	urls := parseSherlockOutput(string(output))
	s.logger.Debug("username enumeration completed",
		"username", username, "profiles", len(urls))
	return urls
}

// parseSherlockOutput extracts profile URLs from the tool's stdout. A hit
// line contains "Found" and carries the URL as its second whitespace field.
func parseSherlockOutput(output string) []string {
	var urls []string
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "Found") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		urls = append(urls, fields[1])
	}
	return urls
}
