package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/clipvault/backend/internal/config"
)

func newStagingForTest(t *testing.T) *StagingService {
	t.Helper()
	return NewStagingService(&config.Config{UploadStagingPath: t.TempDir()})
}

func TestStaging_SaveAndRemove(t *testing.T) {
	ctx := context.Background()
	staging := newStagingForTest(t)

	payload := []byte("some buffered upload")
	absPath, size, checksum, err := staging.Save(ctx, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if size != int64(len(payload)) {
		t.Errorf("size = %d, want %d", size, len(payload))
	}

	sum := sha256.Sum256(payload)
	if checksum != hex.EncodeToString(sum[:]) {
		t.Errorf("checksum mismatch: %s", checksum)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		t.Fatalf("staged file unreadable: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("staged content differs from payload")
	}

	if err := staging.Remove(absPath); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := os.Stat(absPath); !os.IsNotExist(err) {
		t.Error("staged file still exists after remove")
	}
}

func TestStaging_RemoveTolerantOfAbsentFile(t *testing.T) {
	staging := newStagingForTest(t)

	if err := staging.Remove(filepath.Join(t.TempDir(), "never-created.upload")); err != nil {
		t.Fatalf("remove of absent file should not error: %v", err)
	}
}

func TestStaging_NoPartFileLeftBehind(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	staging := NewStagingService(&config.Config{UploadStagingPath: dir})

	if _, _, _, err := staging.Save(ctx, bytes.NewReader([]byte("x"))); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read staging dir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".part" {
			t.Errorf("leftover partial file: %s", e.Name())
		}
	}
}
