package roomlock

import "sync"

// Locker hands out one mutex per key so room state transitions are
// serialized without any cross-room contention. Entries are reference
// counted and dropped once the last holder releases, so torn-down
// rooms leave nothing behind.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func New() *Locker {
	return &Locker{locks: make(map[string]*lockEntry)}
}

// Lock blocks until the key's mutex is held and returns the release
// function.
func (l *Locker) Lock(key string) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &lockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
