package services

import "sync"

// KeyedMutex serializes state-mutating operations per key (session or drawer
// ID). One instance is shared by the session and transfer services so a close
// and a transfer on the same session exclude each other. Mutexes are created
// lazily and retained for the life of the process; the population is bounded
// by the number of drawers and open sessions.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Lock acquires the mutex for one key and returns the unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	m := k.get(key)
	m.Lock()
	return m.Unlock
}

// LockPair acquires both mutexes in lexicographic key order so that two
// concurrent opposite-direction transfers cannot deadlock.
func (k *KeyedMutex) LockPair(a, b string) func() {
	if a == b {
		return k.Lock(a)
	}
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	m1 := k.get(first)
	m2 := k.get(second)
	m1.Lock()
	m2.Lock()
	return func() {
		m2.Unlock()
		m1.Unlock()
	}
}
