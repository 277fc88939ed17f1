package cache

import (
	"testing"
	"time"
)

func TestKeyDependsOnEverySetting(t *testing.T) {
	img := []byte{0x89, 0x50, 0x4e, 0x47}

	base := Key(img, "gray,otsu", "eng", "3")
	if base == Key(img, "gray,sauvola", "eng", "3") {
		t.Error("key should change with the preprocess chain")
	}
	if base == Key(img, "gray,otsu", "deu", "3") {
		t.Error("key should change with the language")
	}
	if base == Key([]byte{0x00}, "gray,otsu", "eng", "3") {
		t.Error("key should change with the image bytes")
	}
	if base != Key(img, "gray,otsu", "eng", "3") {
		t.Error("key should be deterministic")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := Key([]byte("img"), "gray")

	if _, found := c.Get(key); found {
		t.Fatal("unexpected hit on empty cache")
	}
	if err := c.Set(key, []byte("recognized text"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "recognized text" {
		t.Fatalf("expected hit with stored value, got %q found=%v", val, found)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("value survived delete")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := Key([]byte("img"), "gray")

	if err := c.Set(key, []byte("x"), -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expired entry should miss")
	}
}

func TestLayeredPromotion(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Hour, dir, time.Hour)
	key := Key([]byte("img"), "gray")

	// Seed disk only, simulating a previous run.
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set(key, []byte("from disk"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	val, found := layered.Get(key)
	if !found || string(val) != "from disk" {
		t.Fatalf("expected disk hit, got %q found=%v", val, found)
	}

	// After promotion the memory layer serves it even if disk is cleared.
	if err := disk.Clear(); err != nil {
		t.Fatalf("clear disk: %v", err)
	}
	if _, found := layered.Get(key); !found {
		t.Error("expected memory hit after promotion")
	}
}
