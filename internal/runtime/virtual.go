// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oschwald/travis-build/internal/uroot"
	"github.com/oschwald/travis-build/pkg/types"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

type (
	// ExecMiddleware wraps the handler that runs external commands.
	ExecMiddleware = func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc

	// Virtual runs scripts with the embedded mvdan/sh interpreter.
	Virtual struct {
		dir        string
		env        []string
		stdin      io.Reader
		stdout     io.Writer
		stderr     io.Writer
		middleware []ExecMiddleware
		logger     *log.Logger
	}

	// VirtualOption configures a Virtual runtime.
	VirtualOption func(*Virtual)
)

// NewVirtual creates a virtual runtime. By default it runs in the current
// directory with the host environment and discards output.
func NewVirtual(opts ...VirtualOption) *Virtual {
	v := &Virtual{
		stdout: io.Discard,
		stderr: io.Discard,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithDir sets the working directory.
func WithDir(dir string) VirtualOption {
	return func(v *Virtual) { v.dir = dir }
}

// WithEnv replaces the host environment with env ("KEY=value" pairs).
func WithEnv(env []string) VirtualOption {
	return func(v *Virtual) { v.env = env }
}

// WithStdIO sets the standard streams. Nil writers discard output.
func WithStdIO(stdin io.Reader, stdout, stderr io.Writer) VirtualOption {
	return func(v *Virtual) {
		v.stdin = stdin
		if stdout != nil {
			v.stdout = stdout
		}
		if stderr != nil {
			v.stderr = stderr
		}
	}
}

// WithExecMiddleware intercepts external commands, outermost first.
func WithExecMiddleware(mw ...ExecMiddleware) VirtualOption {
	return func(v *Virtual) { v.middleware = append(v.middleware, mw...) }
}

// WithBuiltins runs the commands of r in-process instead of looking them up
// on PATH. Typically uroot.DefaultRegistry.
func WithBuiltins(r *uroot.Registry) VirtualOption {
	return func(v *Virtual) {
		if r != nil {
			v.middleware = append(v.middleware, r.Middleware)
		}
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l *log.Logger) VirtualOption {
	return func(v *Virtual) {
		if l != nil {
			v.logger = l
		}
	}
}

// Name returns the runtime name.
func (v *Virtual) Name() string {
	return "virtual"
}

// Validate checks that script parses as bash.
func (v *Virtual) Validate(script string) error {
	if _, err := parseScript(script); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Run executes script, streaming to the configured writers.
func (v *Virtual) Run(ctx context.Context, script string) *Result {
	return v.run(ctx, script, v.stdout, v.stderr)
}

// RunCapture executes script and captures its output in the Result.
func (v *Virtual) RunCapture(ctx context.Context, script string) *Result {
	var stdout, stderr bytes.Buffer
	res := v.run(ctx, script, &stdout, &stderr)
	res.Output = stdout.String()
	res.ErrOutput = stderr.String()
	return res
}

func (v *Virtual) run(ctx context.Context, script string, stdout, stderr io.Writer) *Result {
	prog, err := parseScript(script)
	if err != nil {
		return errorResult(fmt.Errorf("failed to parse script: %w", err))
	}

	env := v.env
	if env == nil {
		env = os.Environ()
	}
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(v.stdin, stdout, stderr),
	}
	if v.dir != "" {
		opts = append(opts, interp.Dir(v.dir))
	}
	if len(v.middleware) > 0 {
		opts = append(opts, interp.ExecHandlers(v.middleware...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return errorResult(fmt.Errorf("failed to create interpreter: %w", err))
	}

	if ctx == nil {
		ctx = context.Background()
	}
	v.logger.Debug("running script", "runtime", v.Name(), "bytes", len(script))
	err = runner.Run(ctx, prog)
	if err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			v.logger.Debug("script exited", "code", int(status))
			return &Result{ExitCode: types.ExitCode(status)}
		}
		return errorResult(fmt.Errorf("script execution failed: %w", err))
	}
	return &Result{}
}

func parseScript(script string) (*syntax.File, error) {
	return syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(script), "script")
}
