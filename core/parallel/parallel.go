// Package parallel splits row ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the row count below which Rows stays on the caller's
// goroutine.
const DefaultThreshold = 4096

// Workers returns the number of goroutines Rows uses for n items.
func Workers(n int) int {
	w := runtime.GOMAXPROCS(0)
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Rows calls fn over contiguous, disjoint chunks covering [0, n). When n is at
// or below threshold, fn(0, n) runs on the calling goroutine. fn must only
// write to indices inside its own range.
func Rows(n, threshold int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if n <= threshold {
		fn(0, n)
		return
	}

	workers := Workers(n)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
