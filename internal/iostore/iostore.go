// Package iostore is for durable local storage: the repository scan cache
// and the recap run history.
package iostore

import (
	"sync"

	"github.com/gitrecap/gitrecap/internal/contract"
)

// StoreManagerImpl manages the scan cache and history store instances.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	scan         contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetScanStore returns the scan CacheStore.
func (mgr *StoreManagerImpl) GetScanStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.scan
}

// GetHistoryStore returns the HistoryStore.
func (mgr *StoreManagerImpl) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
