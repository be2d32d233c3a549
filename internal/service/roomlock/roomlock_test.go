package roomlock

import (
	"sync"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type RoomLockUnitSuite struct {
	suite.Suite
}

func (s *RoomLockUnitSuite) TestMutualExclusion(t provider.T) {
	t.Parallel()

	locker := New()

	const (
		goroutines = 16
		iterations = 200
	)

	var (
		wg      sync.WaitGroup
		counter int
	)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := 0; it < iterations; it++ {
				unlock := locker.Lock("ABCDEF")
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*iterations, counter)
}

func (s *RoomLockUnitSuite) TestIndependentKeys(t provider.T) {
	t.Parallel()

	locker := New()

	unlockA := locker.Lock("AAAAAA")
	defer unlockA()

	// A held lock on one key must not block another key.
	done := make(chan struct{})
	go func() {
		unlockB := locker.Lock("BBBBBB")
		unlockB()
		close(done)
	}()
	<-done
}

func (s *RoomLockUnitSuite) TestEntriesAreDropped(t provider.T) {
	t.Parallel()

	locker := New()

	unlock := locker.Lock("ABCDEF")
	locker.mu.Lock()
	held := len(locker.locks)
	locker.mu.Unlock()
	assert.Equal(t, 1, held)

	unlock()

	locker.mu.Lock()
	defer locker.mu.Unlock()
	assert.Empty(t, locker.locks)
}

func (s *RoomLockUnitSuite) TestReuseAfterRelease(t provider.T) {
	t.Parallel()

	locker := New()

	unlock := locker.Lock("ABCDEF")
	unlock()

	unlock = locker.Lock("ABCDEF")
	unlock()
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(RoomLockUnitSuite))
}
