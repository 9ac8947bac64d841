package estimator

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  2 Eggs and Toast  ", "2 eggs and toast"},
		{"2   eggs\tand\ntoast", "2 eggs and toast"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	// Normalization must not be lossy beyond trimming/case-folding:
	// different content stays distinct.
	if Normalize("2 eggs") == Normalize("3 eggs") {
		t.Error("distinct content must not collide")
	}
}

func TestCachePutGet(t *testing.T) {
	c := NewCache(10)
	est := Estimate("2 eggs")

	key := Normalize("  2 EGGS ")
	c.Put(key, est, true)

	got, ok := c.Get(Normalize("2 eggs"))
	if !ok {
		t.Fatal("expected cache hit after Put")
	}
	if !got.IsAI {
		t.Error("expected IsAI flag preserved")
	}
	if got.Estimate.TotalCalories != est.TotalCalories {
		t.Errorf("expected total %d, got %d", est.TotalCalories, got.Estimate.TotalCalories)
	}
}

func TestCacheMiss(t *testing.T) {
	c := NewCache(10)
	if _, ok := c.Get("never stored"); ok {
		t.Error("expected cache miss")
	}
}

func TestCacheEntriesImmutable(t *testing.T) {
	c := NewCache(10)
	first := Estimate("2 eggs")
	second := Estimate("3 bananas")

	c.Put("key", first, false)
	c.Put("key", second, true)

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.IsAI || got.Estimate.TotalCalories != first.TotalCalories {
		t.Error("entry must not change once written")
	}
}

func TestCacheEvictsOldestFirst(t *testing.T) {
	c := NewCache(2)
	est := Estimate("2 eggs")

	c.Put("first", est, false)
	c.Put("second", est, false)
	c.Put("third", est, false)

	if _, ok := c.Get("first"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get("second"); !ok {
		t.Error("second entry should survive")
	}
	if _, ok := c.Get("third"); !ok {
		t.Error("newest entry should survive")
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}
}
