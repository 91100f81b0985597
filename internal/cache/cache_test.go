package cache

import "testing"

func TestPutAndGet(t *testing.T) {
	c := New(2)

	c.Put("a", "1")
	if got, ok := c.Get("a"); !ok || got != "1" {
		t.Errorf("Get(a) = %q %v, want 1 true", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should report a miss")
	}
}

func TestPutUpdatesExistingKey(t *testing.T) {
	c := New(2)

	c.Put("a", "1")
	c.Put("a", "2")

	if got, _ := c.Get("a"); got != "2" {
		t.Errorf("Get(a) = %q, want 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)

	c.Put("a", "1")
	c.Put("b", "2")
	c.Get("a")
	c.Put("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was recently used and should survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c was just inserted and should be present")
	}
}

func TestZeroCapacityClampsToOne(t *testing.T) {
	c := New(0)

	c.Put("a", "1")
	if _, ok := c.Get("a"); !ok {
		t.Error("cache should hold at least one entry")
	}
}
