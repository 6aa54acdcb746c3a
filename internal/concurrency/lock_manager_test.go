package concurrency

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLock_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("u1"), lm.GetLock("u1"))
	assert.NotSame(t, lm.GetLock("u1"), lm.GetLock("u2"))
}

func TestWithLock_Serializes(t *testing.T) {
	lm := NewLockManager()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.WithLock("shared", func() error {
				v := counter
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestWithLock_ReturnsError(t *testing.T) {
	lm := NewLockManager()
	want := errors.New("boom")

	assert.ErrorIs(t, lm.WithLock("k", func() error { return want }), want)
	// lock was released
	assert.NoError(t, lm.WithLock("k", func() error { return nil }))
}
