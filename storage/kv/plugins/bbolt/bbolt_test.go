package bbolt_test

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/jrife/mapkeeper/storage/kv/plugins/bbolt"
	bolt "go.etcd.io/bbolt"
)

func TestNewErrors(t *testing.T) {
	t.Run("data-dir-is-a-file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")

		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		_, err := bbolt.New(bbolt.BBoltRootStoreConfig{Path: filepath.Join(path, "data")})

		if !errors.Is(err, syscall.ENOTDIR) {
			t.Fatalf("expected err to wrap ENOTDIR, got %#v", err)
		}
	})

	t.Run("locked", func(t *testing.T) {
		path := t.TempDir()
		store, err := bbolt.New(bbolt.BBoltRootStoreConfig{Path: path})

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		defer store.Close()

		_, err = bbolt.New(bbolt.BBoltRootStoreConfig{Path: path, Timeout: 10 * time.Millisecond})

		if !errors.Is(err, bolt.ErrTimeout) {
			t.Fatalf("expected err to wrap ErrTimeout, got %#v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	store, err := bbolt.New(bbolt.BBoltRootStoreConfig{Path: path})

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := store.Delete(); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected data directory to be gone, got %#v", err)
	}
}
