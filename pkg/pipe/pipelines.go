// Package pipe holds channel stages that move payload.Result values between
// goroutines. Every stage stops and closes its output once done is closed.
package pipe

import (
	"sync"

	"github.com/Philanthropists/opresult/pkg/result/payload"
)

type Handler[T, K any] func(T) payload.Result[K]

// OrDone forwards in until it is closed or done is closed.
func OrDone[T any](done <-chan struct{}, in <-chan T) <-chan T {
	stream := make(chan T)

	go func() {
		defer close(stream)

		for {
			var (
				v  T
				ok bool
			)

			select {
			case <-done:
				return
			case v, ok = <-in:
			}

			if !ok {
				return
			}

			select {
			case <-done:
				return
			case stream <- v:
			}
		}
	}()

	return stream
}

// OnFailure streams the data of successful results and hands every failure
// to handler, from the stage goroutine.
func OnFailure[T any](done <-chan struct{}, in <-chan payload.Result[T], handler func(payload.Result[T])) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		for val := range OrDone(done, in) {
			if !val.Success {
				handler(val)
				continue
			}

			select {
			case <-done:
				return
			case out <- val.Data:
			}
		}
	}()

	return out
}

// ConcurrentMap runs mapper over in with the given number of goroutines.
// Output order is not preserved.
func ConcurrentMap[A, B any](done <-chan struct{}, workers int, in <-chan A, mapper Handler[A, B]) <-chan payload.Result[B] {
	if workers <= 0 {
		workers = 1
	}

	out := make(chan payload.Result[B], workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			for val := range OrDone(done, in) {
				select {
				case <-done:
					return
				case out <- mapper(val):
				}
			}
		}()
	}

	go func() {
		defer close(out)
		wg.Wait()
	}()

	return out
}
