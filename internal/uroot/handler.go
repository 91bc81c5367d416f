// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"context"
	"io"

	"mvdan.cc/sh/v3/interp"
)

type (
	// HandlerContext is the execution context of a built-in, taken from the
	// interpreter's handler context.
	HandlerContext struct {
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
		Dir       string
		LookupEnv func(string) (string, bool)
	}

	handlerContextKey struct{}
)

// WithHandlerContext stores hc in ctx, overriding the interpreter's. Used by
// tests running built-ins outside an interpreter.
func WithHandlerContext(ctx context.Context, hc *HandlerContext) context.Context {
	return context.WithValue(ctx, handlerContextKey{}, hc)
}

// GetHandlerContext returns the context stored by WithHandlerContext, or the
// one derived from the running interpreter.
func GetHandlerContext(ctx context.Context) *HandlerContext {
	if hc, ok := ctx.Value(handlerContextKey{}).(*HandlerContext); ok {
		return hc
	}
	hc := interp.HandlerCtx(ctx)
	return &HandlerContext{
		Stdin:  hc.Stdin,
		Stdout: hc.Stdout,
		Stderr: hc.Stderr,
		Dir:    hc.Dir,
		LookupEnv: func(name string) (string, bool) {
			v := hc.Env.Get(name)
			return v.Str, v.Set
		},
	}
}
