// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "sync"

const (
	folderKeyPrefix = "folders:"
	searchKeyPrefix = "search:"
)

// inflightGuard admits at most one holder per key.
type inflightGuard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{keys: make(map[string]struct{})}
}

// acquire claims key. The returned release func must be called exactly once;
// ok is false when key is already held.
func (g *inflightGuard) acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.keys[key]; held {
		return nil, false
	}
	g.keys[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.keys, key)
			g.mu.Unlock()
		})
	}, true
}

// held reports whether key is currently claimed.
func (g *inflightGuard) held(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.keys[key]
	return ok
}
