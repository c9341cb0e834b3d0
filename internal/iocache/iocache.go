// Package iocache provides durable storage for fetched snapshot sets and
// analysis history, backed by SQLite, MySQL or PostgreSQL.
package iocache

import (
	"sync"

	"github.com/zarmaks/gitfolio/internal/contract"
)

// StoreManager manages the snapshot cache and history store instances.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	snapshots    contract.SnapshotStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &StoreManager{} // Compile-time check

// GetSnapshotStore returns the snapshot SnapshotStore.
func (mgr *StoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshots
}

// GetHistoryStore returns the history HistoryStore.
func (mgr *StoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
