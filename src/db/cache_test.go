package db

import "testing"

func TestSummaryCacheSetGetDel(t *testing.T) {
	InitCache()

	key := SummaryCacheKey(1)
	SetSummaryCache(key, "envelope")
	Cache.Wait()

	value, found := Cache.Get(key)
	if !found || value != "envelope" {
		t.Fatalf("expected cached envelope, got %v (found=%v)", value, found)
	}

	DelSummaryCache(key)
	Cache.Wait()
	if _, found := Cache.Get(key); found {
		t.Fatal("expected key to be deleted")
	}
}

func TestClearAllSummaryCaches(t *testing.T) {
	InitCache()

	for userID := 1; userID <= 3; userID++ {
		SetSummaryCache(SummaryCacheKey(userID), userID)
	}
	Cache.Wait()

	ClearAllSummaryCaches()
	Cache.Wait()

	for userID := 1; userID <= 3; userID++ {
		if _, found := Cache.Get(SummaryCacheKey(userID)); found {
			t.Fatalf("expected summary cache for user %d to be cleared", userID)
		}
	}

	SummaryCacheKeys.RLock()
	remaining := len(SummaryCacheKeys.m)
	SummaryCacheKeys.RUnlock()
	if remaining != 0 {
		t.Fatalf("expected key set to be empty, got %d entries", remaining)
	}
}

func TestSpaceCacheIndependentFromSummaryCache(t *testing.T) {
	InitCache()

	SetSpaceCache(SpaceCacheKey(1), "spaces")
	SetSummaryCache(SummaryCacheKey(1), "summary")
	Cache.Wait()

	ClearAllSummaryCaches()
	Cache.Wait()

	if _, found := Cache.Get(SpaceCacheKey(1)); !found {
		t.Fatal("clearing summary caches must not drop space caches")
	}

	ClearAllSpaceCaches()
	Cache.Wait()
	if _, found := Cache.Get(SpaceCacheKey(1)); found {
		t.Fatal("expected space cache to be cleared")
	}
}
