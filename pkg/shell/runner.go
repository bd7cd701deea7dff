package shell

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/logging"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner interprets shell commands in-process. When the manifest file
// exists it is sourced first, so tools installed earlier (dependencies in
// particular) are on PATH.
type Runner struct {
	manifestFile string
	env          []string
}

// NewRunner creates a runner that sources manifestFile before each command
func NewRunner(manifestFile string) *Runner {
	return &Runner{manifestFile: manifestFile, env: os.Environ()}
}

// WithEnv returns a copy of the runner with extra KEY=VALUE entries
func (r *Runner) WithEnv(kv ...string) *Runner {
	env := append(append([]string(nil), r.env...), kv...)
	return &Runner{manifestFile: r.manifestFile, env: env}
}

// Validate parses command without running it
func Validate(command string) error {
	if _, err := syntax.NewParser().Parse(strings.NewReader(command), "command"); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "invalid shell command %q", command)
	}
	return nil
}

// Run executes command in dir and returns its combined stdout and stderr
func (r *Runner) Run(ctx context.Context, dir, command string) (string, error) {
	logger := logging.GetLogger("shell")
	logger.Info().Str("dir", dir).Str("command", command).Msg("sh")

	script := command
	if r.manifestFile != "" {
		if _, err := os.Stat(r.manifestFile); err == nil {
			quoted, err := syntax.Quote(r.manifestFile, syntax.LangPOSIX)
			if err != nil {
				return "", errors.Wrapf(err, errors.ErrCommandFailed, "cannot source %s", r.manifestFile)
			}
			script = fmt.Sprintf(". %s\n%s", quoted, command)
		}
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(script), "command")
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrCommandFailed, "invalid shell command %q", command)
	}

	var out bytes.Buffer
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(r.env...)),
		interp.StdIO(nil, &out, &out),
	)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCommandFailed, "failed to create shell interpreter")
	}

	if err := runner.Run(ctx, file); err != nil {
		noxErr := errors.Wrapf(err, errors.ErrCommandFailed, "command %q failed", command).
			WithDetail("dir", dir).
			WithDetail("output", out.String())
		var status interp.ExitStatus
		if stderrors.As(err, &status) {
			noxErr = noxErr.WithDetail("exitCode", int(status))
		}
		logger.Debug().Err(err).Str("output", out.String()).Msg("Command failed")
		return out.String(), noxErr
	}

	return out.String(), nil
}
