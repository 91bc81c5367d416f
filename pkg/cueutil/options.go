// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds documents read from disk (5 MiB).
const DefaultMaxFileSize int64 = 5 << 20

type (
	// Option configures validation.
	Option func(*options)

	options struct {
		filename    string
		concrete    bool
		maxFileSize int64
	}
)

// WithFilename names the document in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithConcrete requires every field of the unified value to be concrete.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

func resolve(opts []Option) options {
	o := options{filename: "<input>", maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
