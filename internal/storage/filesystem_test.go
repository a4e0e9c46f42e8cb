package storage

import (
	"context"
	"testing"
	"time"
)

func TestScanKey(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	if got := ScanKey("u1", at); got != "users/u1/scans/1700000000123.jpg" {
		t.Fatalf("ScanKey = %q", got)
	}
}

func TestFileStoreWriteAndRead(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	key, err := store.Write(context.Background(), "/users/u1/scans/1.jpg", []byte("leaf"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if key != "users/u1/scans/1.jpg" {
		t.Fatalf("key = %q", key)
	}
	data, err := store.Read(key)
	if err != nil || string(data) != "leaf" {
		t.Fatalf("Read = %q, %v", data, err)
	}
}

func TestSanitizeKeyRejectsTraversal(t *testing.T) {
	for _, key := range []string{"", "  ", "../etc/passwd", "a/../../b", ".", ".."} {
		if _, err := sanitizeKey(key); err == nil {
			t.Errorf("sanitizeKey(%q) should fail", key)
		}
	}
}

func TestWriteHonoursCancelledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Write(ctx, "a.jpg", []byte("x")); err == nil {
		t.Fatal("Write should fail on cancelled context")
	}
}
