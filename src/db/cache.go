package db

import (
	"fmt"
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Storing cache keys in concurrent data structures to allow for clearing all
// caches of a certain type. Summary caches are cleared globally on writes
// because a linked user's current space may point at another user's ledger.
var (
	Cache            *ristretto.Cache
	SummaryCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
	SpaceCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func SummaryCacheKey(userID int) string {
	return fmt.Sprintf("summary:%d", userID)
}

func SpaceCacheKey(userID int) string {
	return fmt.Sprintf("spaces:%d", userID)
}

// Summary Cache Functions
func SetSummaryCache(cacheKey string, value interface{}) {
	SummaryCacheKeys.Lock()
	SummaryCacheKeys.m[cacheKey] = struct{}{}
	SummaryCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func DelSummaryCache(cacheKey string) {
	SummaryCacheKeys.Lock()
	delete(SummaryCacheKeys.m, cacheKey)
	SummaryCacheKeys.Unlock()
	Cache.Del(cacheKey)
}

func ClearAllSummaryCaches() {
	SummaryCacheKeys.Lock()
	for key := range SummaryCacheKeys.m {
		Cache.Del(key)
	}
	SummaryCacheKeys.m = make(map[string]struct{})
	SummaryCacheKeys.Unlock()
}

// Space Cache Functions
func SetSpaceCache(cacheKey string, value interface{}) {
	SpaceCacheKeys.Lock()
	SpaceCacheKeys.m[cacheKey] = struct{}{}
	SpaceCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func DelSpaceCache(cacheKey string) {
	SpaceCacheKeys.Lock()
	delete(SpaceCacheKeys.m, cacheKey)
	SpaceCacheKeys.Unlock()
	Cache.Del(cacheKey)
}

func ClearAllSpaceCaches() {
	SpaceCacheKeys.Lock()
	for key := range SpaceCacheKeys.m {
		Cache.Del(key)
	}
	SpaceCacheKeys.m = make(map[string]struct{})
	SpaceCacheKeys.Unlock()
}
