package utils

import "sync"

// ProviderLocker serializes booking writes per provider. The conflict check
// is read-then-write, so the lock must be held from the overlap query until
// the appointment insert commits; otherwise two overlapping requests can
// both pass validation.
type ProviderLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProviderLocker() *ProviderLocker {
	return &ProviderLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given provider, creating it on first use.
func (pl *ProviderLocker) Lock(providerID string) {
	pl.mu.Lock()
	m, ok := pl.locks[providerID]
	if !ok {
		m = &sync.Mutex{}
		pl.locks[providerID] = m
	}
	pl.mu.Unlock()
	m.Lock()
}

// Unlock releases the mutex for the given provider.
func (pl *ProviderLocker) Unlock(providerID string) {
	pl.mu.Lock()
	m := pl.locks[providerID]
	pl.mu.Unlock()
	if m != nil {
		m.Unlock()
	}
}
