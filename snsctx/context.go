// Package snsctx carries per-invocation flags through context.
package snsctx

import "context"

type ctxKey int

const verboseKey ctxKey = iota

// IsVerbose reports whether bus adapters should dump raw traffic.
func IsVerbose(ctx context.Context) bool {
	val, ok := ctx.Value(verboseKey).(bool)
	return ok && val
}

func SetVerbose(ctx context.Context, value bool) context.Context {
	return context.WithValue(ctx, verboseKey, value)
}
