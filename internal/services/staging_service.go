package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/clipvault/backend/internal/config"
	"github.com/google/uuid"
)

// StagingService buffers incoming uploads on local disk before they are
// forwarded to the remote store. Staged files are request-scoped: callers
// must Remove them on every exit path, success or failure.
type StagingService struct {
	cfg *config.Config
}

func NewStagingService(cfg *config.Config) *StagingService {
	// ensure staging path exists
	_ = os.MkdirAll(cfg.UploadStagingPath, 0o755)
	return &StagingService{cfg: cfg}
}

// Save writes the stream to a fresh staging file and returns its absolute
// path, size and sha256 checksum. The write goes through a .part file and a
// rename so a crash never leaves a half-written file under the final name.
func (s *StagingService) Save(ctx context.Context, r io.Reader) (string, int64, string, error) {
	absPath := filepath.Join(s.cfg.UploadStagingPath, uuid.New().String()+".upload")

	tmp := absPath + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", 0, "", err
	}
	defer f.Close()

	hasher := sha256.New()
	n, err := io.Copy(io.MultiWriter(f, hasher), r)
	if err != nil {
		_ = os.Remove(tmp)
		return "", 0, "", err
	}

	if err := f.Sync(); err != nil {
		_ = os.Remove(tmp)
		return "", 0, "", err
	}

	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return "", 0, "", err
	}

	checksum := hex.EncodeToString(hasher.Sum(nil))
	return absPath, n, checksum, nil
}

// Remove deletes a staged file. An already-absent file is not an error.
func (s *StagingService) Remove(absPath string) error {
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
