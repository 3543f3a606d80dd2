package scan

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// binarySemaphore realizes a POSIX counted semaphore of capacity 1 on top
// of golang.org/x/sync/semaphore.Weighted: Wait is sem_wait, Post is
// sem_post. The five pipeline semaphores (new_file_signal, data_ready[0],
// data_ready[1], data_consumed[0], data_consumed[1]) are each one of these,
// differing only in initial value.
type binarySemaphore struct {
	sem *semaphore.Weighted
}

// newBinarySemaphore creates a semaphore with the given initial value (0 or
// 1). A 0 semaphore starts drained, so the first Wait blocks until a Post.
func newBinarySemaphore(initial int) *binarySemaphore {
	b := &binarySemaphore{sem: semaphore.NewWeighted(1)}
	if initial == 0 {
		_ = b.sem.Acquire(context.Background(), 1)
	}
	return b
}

// Wait blocks until the semaphore is posted or ctx is cancelled.
func (b *binarySemaphore) Wait(ctx context.Context) error {
	return b.sem.Acquire(ctx, 1)
}

// Post signals the semaphore, waking at most one waiter.
func (b *binarySemaphore) Post() {
	b.sem.Release(1)
}
