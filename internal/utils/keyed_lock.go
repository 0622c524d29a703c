package utils

import (
	"context"
	"sync"
)

// KeyedLock is a set of mutexes addressed by string key. Each key owns a
// one-slot channel; holding the slot means holding the lock. A key's entry
// lives only while someone holds or waits for it.
type KeyedLock struct {
	mu    sync.Mutex
	slots map[string]*keySlot
}

type keySlot struct {
	ch   chan struct{}
	refs int
}

func (l *KeyedLock) acquire(key string) *keySlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.slots == nil {
		l.slots = make(map[string]*keySlot)
	}
	slot, ok := l.slots[key]
	if !ok {
		slot = &keySlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	return slot
}

func (l *KeyedLock) release(key string, slot *keySlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}

func (l *KeyedLock) unlocker(key string, slot *keySlot) func() {
	return func() {
		<-slot.ch
		l.release(key, slot)
	}
}

// Lock blocks until the key is free or ctx is done.
func (l *KeyedLock) Lock(ctx context.Context, key string) (unlock func(), err error) {
	slot := l.acquire(key)
	select {
	case slot.ch <- struct{}{}:
		return l.unlocker(key, slot), nil
	case <-ctx.Done():
		l.release(key, slot)
		return nil, ctx.Err()
	}
}

// TryLock reports false instead of waiting when the key is held.
func (l *KeyedLock) TryLock(key string) (unlock func(), ok bool) {
	slot := l.acquire(key)
	select {
	case slot.ch <- struct{}{}:
		return l.unlocker(key, slot), true
	default:
		l.release(key, slot)
		return nil, false
	}
}

// Len reports how many keys are currently held or awaited.
func (l *KeyedLock) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
