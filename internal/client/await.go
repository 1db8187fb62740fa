package client

import (
	"context"
	"sync"
)

// Await runs call and blocks until it reports through one of its callbacks
// or ctx is done. Only the first report is kept.
//
// Typical use:
//
//	response, err := client.Await(ctx, func(onSuccess func(*client.Response), onFailure client.FailureFunc) {
//		c.Get(ctx, url, nil, nil, onSuccess, onFailure)
//	})
func Await[T any](ctx context.Context, call func(onSuccess func(T), onFailure FailureFunc)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	var (
		once     sync.Once
		outcomes = make(chan outcome, 1)
	)

	call(
		func(value T) {
			once.Do(func() { outcomes <- outcome{value: value} })
		},
		func(err error) {
			once.Do(func() { outcomes <- outcome{err: err} })
		},
	)

	select {
	case result := <-outcomes:
		return result.value, result.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}
