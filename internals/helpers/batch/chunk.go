package batch

import (
	"context"
	"fmt"
)

// SendFunc delivers one chunk and returns one result per item, in order.
type SendFunc[T, R any] func(ctx context.Context, chunk []T) ([]R, error)

// Classifier reports whether an item's result should be collected.
type Classifier[T, R any] func(item T, result R) bool

// Outcome summarises a chunked dispatch.
type Outcome[T any] struct {
	Batches int
	Sent    int
	Flagged []T
}

// Send splits items into chunks of at most size and sends them one chunk
// after another. Items whose result matches flag are collected in
// Outcome.Flagged. A chunk error stops the run; the outcome then covers the
// chunks already delivered.
func Send[T, R any](ctx context.Context, items []T, size int, send SendFunc[T, R], flag Classifier[T, R]) (Outcome[T], error) {
	var out Outcome[T]
	if size <= 0 {
		return out, fmt.Errorf("batch: invalid chunk size %d", size)
	}

	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunk := items[start:end]

		results, err := send(ctx, chunk)
		if err != nil {
			return out, err
		}
		if len(results) != len(chunk) {
			return out, fmt.Errorf("batch: got %d results for %d items", len(results), len(chunk))
		}

		out.Batches++
		out.Sent += len(chunk)
		if flag == nil {
			continue
		}
		for i, r := range results {
			if flag(chunk[i], r) {
				out.Flagged = append(out.Flagged, chunk[i])
			}
		}
	}
	return out, nil
}
