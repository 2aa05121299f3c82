package puzzle

import (
	"fmt"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	c := newLineCache(0)
	key := cacheKey(engineSkim, []Clue{bclue(2)}, cells(tx, tx, tx))

	if _, _, hit := c.lookup(key); hit {
		t.Fatalf("empty cache reported a hit")
	}
	c.store(key, cells(tx, tb, tx), true)
	got, ok, hit := c.lookup(key)
	if !hit || !ok {
		t.Fatalf("stored entry not found (hit=%v ok=%v)", hit, ok)
	}
	if !sameCells(got, cells(tx, tb, tx)) {
		t.Errorf("cache returned %v, expected [x b x]", got)
	}

	// contradictions are memoized too
	badKey := cacheKey(engineScrub, []Clue{bclue(9)}, cells(tx, tx, tx))
	c.store(badKey, nil, false)
	if _, ok, hit := c.lookup(badKey); !hit || ok {
		t.Errorf("contradiction entry lookup gave (ok=%v hit=%v), expected (false, true)", ok, hit)
	}

	if rate := c.hitRate(); rate != 2.0/3.0 {
		t.Errorf("hit rate = %v, expected 2/3", rate)
	}
}

func TestCacheStoredCopyIsIndependent(t *testing.T) {
	c := newLineCache(0)
	vec := cells(tx, tx)
	c.store("k", vec, true)
	vec[0] = tb
	got, _, _ := c.lookup("k")
	if got[0] != tx {
		t.Errorf("cache entry shares storage with the caller's slice")
	}
}

func TestCacheEviction(t *testing.T) {
	c := newLineCache(2)
	for i := 0; i < 3; i++ {
		c.store(fmt.Sprintf("key-%d", i), cells(tx), true)
	}
	if _, _, hit := c.lookup("key-0"); hit {
		t.Errorf("oldest entry survived eviction")
	}
	for _, key := range []string{"key-1", "key-2"} {
		if _, _, hit := c.lookup(key); !hit {
			t.Errorf("entry %q evicted too early", key)
		}
	}

	// a lookup refreshes recency
	c.lookup("key-1")
	c.store("key-3", cells(tx), true)
	if _, _, hit := c.lookup("key-1"); !hit {
		t.Errorf("recently used entry was evicted")
	}
	if _, _, hit := c.lookup("key-2"); hit {
		t.Errorf("least recently used entry survived eviction")
	}
}
