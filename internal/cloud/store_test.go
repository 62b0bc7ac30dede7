package cloud

import (
	"errors"
	"sync"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: got %v, want ErrNotFound", err)
	}
	if !s.Put("k", "v1") {
		t.Error("first Put: got existing, want created")
	}
	if s.Put("k", "v2") {
		t.Error("second Put: got created, want existing")
	}
	rec, err := s.Get("k")
	if err != nil || rec.Payload != "v2" {
		t.Errorf("Get: got %q %v, want v2", rec.Payload, err)
	}
	if rec.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := string(rune('a' + i%5))
			s.Put(key, "x")
			s.Get(key)
		}()
	}
	wg.Wait()
	if s.Len() != 5 {
		t.Errorf("Len: got %d, want 5", s.Len())
	}
}
