// SPDX-License-Identifier: MPL-2.0

package shell

type (
	// Options is the resolved policy of a single directive. It is computed once
	// when the directive is emitted and never changes afterwards.
	Options struct {
		// Echo prints the command before running it.
		Echo bool
		// Assert aborts the script when the command exits non-zero.
		Assert bool
		// Retry re-runs the command up to RetryAttempts times before giving up.
		Retry bool
		// Timing wraps the command in timing markers.
		Timing bool
		// Fold groups the command's output under a named collapsible section.
		Fold string
		// Color tags Echo output.
		Color Color
	}

	// Option mutates the policy of the directive being emitted.
	Option func(*Options)
)

// RetryAttempts is the number of attempts travis_retry makes before giving up.
const RetryAttempts = 3

var (
	cmdDefaults    = Options{Echo: true, Assert: true, Timing: true}
	rawDefaults    = Options{}
	exportDefaults = Options{Echo: true}
	echoDefaults   = Options{}
)

// WithEcho toggles printing the command before it runs.
func WithEcho(on bool) Option {
	return func(o *Options) { o.Echo = on }
}

// WithAssert toggles aborting the script on a non-zero exit status.
func WithAssert(on bool) Option {
	return func(o *Options) { o.Assert = on }
}

// WithRetry toggles retrying the command on failure.
func WithRetry(on bool) Option {
	return func(o *Options) { o.Retry = on }
}

// WithTiming toggles timing markers around the command.
func WithTiming(on bool) Option {
	return func(o *Options) { o.Timing = on }
}

// WithFold groups the command under the named fold.
func WithFold(name string) Option {
	return func(o *Options) { o.Fold = name }
}

// WithColor colors echoed text.
func WithColor(c Color) Option {
	return func(o *Options) { o.Color = c }
}

func resolve(defaults Options, opts []Option) Options {
	o := defaults
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
