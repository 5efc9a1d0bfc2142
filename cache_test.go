package rtss

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCacheGetOrBuildIdempotent(t *testing.T) {
	c := NewProgramCache()
	fp := Fingerprint("a")

	fCalls, gCalls := 0, 0
	want := &GeneratedProgramSet{Fingerprint: fp}

	got, err := c.GetOrBuild(fp, func() (*GeneratedProgramSet, error) {
		fCalls++
		return want, nil
	})
	if err != nil {
		t.Fatalf("GetOrBuild failed: %v", err)
	}
	if got != want {
		t.Error("Expected the built instance back")
	}

	got, err = c.GetOrBuild(fp, func() (*GeneratedProgramSet, error) {
		gCalls++
		return &GeneratedProgramSet{}, nil
	})
	if err != nil {
		t.Fatalf("GetOrBuild failed: %v", err)
	}
	if got != want {
		t.Error("Expected the cached instance, not a rebuild")
	}
	if fCalls != 1 || gCalls != 0 {
		t.Errorf("Expected f once and g never, got f=%d g=%d", fCalls, gCalls)
	}
}

func TestCacheBuildErrorNotCached(t *testing.T) {
	c := NewProgramCache()
	fp := Fingerprint("a")
	boom := errors.New("boom")

	if _, err := c.GetOrBuild(fp, func() (*GeneratedProgramSet, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Expected build error, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Expected failed build not cached, got %d entries", c.Len())
	}

	// A later build for the same fingerprint runs again.
	want := &GeneratedProgramSet{Fingerprint: fp}
	got, err := c.GetOrBuild(fp, func() (*GeneratedProgramSet, error) { return want, nil })
	if err != nil {
		t.Fatalf("GetOrBuild failed: %v", err)
	}
	if got != want {
		t.Error("Expected the retry's instance")
	}
}

func TestCacheConcurrentSingleBuild(t *testing.T) {
	c := NewProgramCache()
	fp := Fingerprint("shared")
	want := &GeneratedProgramSet{Fingerprint: fp}

	var builds int32
	const workers = 32
	results := make([]*GeneratedProgramSet, workers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			got, err := c.GetOrBuild(fp, func() (*GeneratedProgramSet, error) {
				atomic.AddInt32(&builds, 1)
				return want, nil
			})
			if err != nil {
				t.Errorf("GetOrBuild failed: %v", err)
				return
			}
			results[i] = got
		}(i)
	}
	start.Done()
	done.Wait()

	if builds != 1 {
		t.Errorf("Expected exactly 1 build, got %d", builds)
	}
	for i, got := range results {
		if got != want {
			t.Errorf("Worker %d got a different instance", i)
		}
	}
}

func TestCacheReleaseAndTrim(t *testing.T) {
	c := NewProgramCache()
	for _, fp := range []Fingerprint{"a", "b", "c"} {
		fp := fp
		if _, err := c.GetOrBuild(fp, func() (*GeneratedProgramSet, error) {
			return &GeneratedProgramSet{Fingerprint: fp}, nil
		}); err != nil {
			t.Fatalf("GetOrBuild failed: %v", err)
		}
	}

	// All entries referenced: nothing to evict.
	if n := c.Trim(1); n != 0 {
		t.Errorf("Expected 0 evictions while referenced, got %d", n)
	}

	c.Release("a")
	c.Release("b")
	if n := c.Trim(1); n != 2 {
		t.Errorf("Expected 2 evictions, got %d", n)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry left, got %d", c.Len())
	}
	if _, ok := c.Lookup("c"); !ok {
		t.Error("Expected the referenced entry to survive")
	}
}

func TestCacheTrimEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewProgramCache()
	for _, fp := range []Fingerprint{"old", "new"} {
		fp := fp
		if _, err := c.GetOrBuild(fp, func() (*GeneratedProgramSet, error) {
			return &GeneratedProgramSet{Fingerprint: fp}, nil
		}); err != nil {
			t.Fatalf("GetOrBuild failed: %v", err)
		}
		c.Release(fp)
	}

	// Touch "old" again so "new" becomes the eviction candidate.
	if _, err := c.GetOrBuild("old", nil); err != nil {
		t.Fatalf("GetOrBuild failed: %v", err)
	}
	c.Release("old")

	if n := c.Trim(1); n != 1 {
		t.Fatalf("Expected 1 eviction, got %d", n)
	}
	if _, ok := c.Lookup("old"); !ok {
		t.Error("Expected the recently used entry to survive")
	}
	if _, ok := c.Lookup("new"); ok {
		t.Error("Expected the least recently used entry evicted")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewProgramCache()
	for _, fp := range []Fingerprint{"keep", "drop1", "drop2"} {
		fp := fp
		if _, err := c.GetOrBuild(fp, func() (*GeneratedProgramSet, error) {
			return &GeneratedProgramSet{Fingerprint: fp}, nil
		}); err != nil {
			t.Fatalf("GetOrBuild failed: %v", err)
		}
	}

	n := c.Invalidate(func(fp Fingerprint) bool { return fp != "keep" })
	if n != 2 {
		t.Errorf("Expected 2 invalidations, got %d", n)
	}
	if _, ok := c.Lookup("keep"); !ok {
		t.Error("Expected unmatched entry to survive")
	}
	if !c.Drained() {
		if c.Len() != 1 {
			t.Errorf("Expected 1 entry, got %d", c.Len())
		}
	}
}

func TestCacheDrained(t *testing.T) {
	c := NewProgramCache()
	if !c.Drained() {
		t.Error("Expected a fresh cache to be drained")
	}
	if _, err := c.GetOrBuild("x", func() (*GeneratedProgramSet, error) {
		return &GeneratedProgramSet{}, nil
	}); err != nil {
		t.Fatalf("GetOrBuild failed: %v", err)
	}
	if c.Drained() {
		t.Error("Expected a populated cache not drained")
	}
	c.Invalidate(func(Fingerprint) bool { return true })
	if !c.Drained() {
		t.Error("Expected drained after invalidating everything")
	}
}
