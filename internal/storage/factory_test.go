package storage

import "testing"

func TestNewStoreMemory(t *testing.T) {
	store, err := NewStore("memory", "")
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	if store == nil {
		t.Fatal("expected non-nil store")
	}
	if err := CloseIfSupported(store); err != nil {
		t.Fatalf("close memory store: %v", err)
	}
}

func TestDefaultStoreKindIsBuildable(t *testing.T) {
	store, err := NewStore("", "")
	if err != nil {
		// The sqlite default only resolves in sqlite-tagged builds.
		t.Skipf("default store kind %s unavailable: %v", DefaultStoreKind(), err)
	}
	if store == nil {
		t.Fatal("expected non-nil store")
	}
	_ = CloseIfSupported(store)
}

func TestNewStoreUnsupported(t *testing.T) {
	_, err := NewStore("unknown", "")
	if err == nil {
		t.Fatal("expected unsupported store error")
	}
}
