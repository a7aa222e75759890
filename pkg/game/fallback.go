package game

import (
	"context"
	"errors"
)

// TryEach invokes fn with each option in order and returns the first
// successful result together with the option that produced it. If every
// option fails, the last failure is returned. The context is checked before
// each attempt so a cancelled caller does not burn through the whole list.
//
// This generalizes "try this voice, then that one" style fallback: an ordered
// preference list where the first accepted option wins.
func TryEach[T, R any](ctx context.Context, options []T, fn func(context.Context, T) (R, error)) (R, T, error) {
	var (
		zero    R
		zeroOpt T
		lastErr error
	)
	if len(options) == 0 {
		return zero, zeroOpt, errors.New("no options to try")
	}
	for _, opt := range options {
		if err := ctx.Err(); err != nil {
			return zero, zeroOpt, err
		}
		res, err := fn(ctx, opt)
		if err == nil {
			return res, opt, nil
		}
		lastErr = err
	}
	return zero, zeroOpt, lastErr
}
