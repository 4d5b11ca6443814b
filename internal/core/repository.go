package core

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JonMunkholm/clientview/internal/metrics"
)

// Repository holds the current snapshot. Readers always see a complete
// snapshot; Reload builds a new one and swaps it in.
type Repository struct {
	loader *Loader

	reloadMu sync.Mutex
	current  atomic.Pointer[Snapshot]
}

// NewRepository returns a repository holding an empty snapshot until the
// first Reload.
func NewRepository(loader *Loader) *Repository {
	r := &Repository{loader: loader}
	r.current.Store(&Snapshot{})
	return r
}

// Snapshot returns the current snapshot. Callers must not modify it.
func (r *Repository) Snapshot() *Snapshot {
	return r.current.Load()
}

// Reload loads a fresh snapshot and makes it current. Concurrent reloads
// are serialized; reads are never blocked.
func (r *Repository) Reload(ctx context.Context) *Snapshot {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	snap := r.loader.Load(ctx)
	r.Replace(snap)
	return snap
}

// Replace makes snap current without loading.
func (r *Repository) Replace(snap *Snapshot) {
	if snap.LoadedAt.IsZero() {
		snap.LoadedAt = time.Now()
	}
	r.current.Store(snap)
	metrics.ObserveSnapshot(snap.LoadedAt, len(snap.Errors))
}
