// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package throttle

import (
	"context"
)

// Chunks - consecutive slices of at most size items
func Chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultMaxBatchSize
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// Split - run items in chunks of the maximum batch size, each as its
// own throttled batch operation
//
// results are concatenated in item order; on error the results of the
// chunks already completed are returned with it
func Split[T any, R any](ctx context.Context, t *Throttler, items []T, fn func(chunk []T) ([]R, error)) ([]R, error) {
	results := make([]R, 0, len(items))
	for _, chunk := range Chunks(items, t.MaxBatchSize()) {
		var r []R
		err := t.Execute(ctx, BatchVerification, func() error {
			var err error
			r, err = fn(chunk)
			return err
		})
		if nil != err {
			return results, err
		}
		results = append(results, r...)
	}
	return results, nil
}
