package images

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.db")

	s, err := OpenStore(path)
	if err != nil {
		t.Fatalf("unable to open store: %v", err)
	}
	if _, found, err := s.Get("http://example.com/a.png"); err != nil || found {
		t.Fatalf("empty store returned found=%v err=%v", found, err)
	}
	if err := s.Put("http://example.com/a.png", []byte{1, 2, 3}); err != nil {
		t.Fatalf("unable to put: %v", err)
	}
	if err := s.Put("http://example.com/a.png", []byte{4, 5}); err != nil {
		t.Fatalf("unable to replace: %v", err)
	}
	if err := s.Put("http://example.com/b.png", []byte{6}); err != nil {
		t.Fatalf("unable to put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("unable to close store: %v", err)
	}

	s, err = OpenStore(path)
	if err != nil {
		t.Fatalf("unable to reopen store: %v", err)
	}
	defer s.Close()

	data, found, err := s.Get("http://example.com/a.png")
	if err != nil || !found {
		t.Fatalf("stored data lost: found=%v err=%v", found, err)
	}
	if !bytes.Equal(data, []byte{4, 5}) {
		t.Errorf("data = %v, want [4 5]", data)
	}
	if n, err := s.Len(); err != nil || n != 2 {
		t.Errorf("Len() = %d, %v, want 2", n, err)
	}
}

func TestStoreMemory(t *testing.T) {
	s, err := OpenStore(":memory:")
	if err != nil {
		t.Fatalf("unable to open store: %v", err)
	}
	defer s.Close()

	if err := s.Put("u", []byte("data")); err != nil {
		t.Fatalf("unable to put: %v", err)
	}
	data, found, err := s.Get("u")
	if err != nil || !found || string(data) != "data" {
		t.Errorf("Get() = %q, %v, %v", data, found, err)
	}
}
