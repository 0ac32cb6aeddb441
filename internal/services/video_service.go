package services

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/clipvault/backend/internal/config"
	"github.com/clipvault/backend/internal/models"
	"github.com/clipvault/backend/pkg/apperrors"
	"github.com/clipvault/backend/pkg/validation"
	"github.com/google/uuid"
)

// RecommendedLimit caps the recommendation listing.
const RecommendedLimit = 5

// UploadInput is the validated boundary struct for an upload request.
type UploadInput struct {
	Title       string
	Description string
	File        io.Reader
	Size        int64
}

// UpdateInput carries a partial metadata edit. Empty fields are left
// unchanged; omission never clears a value.
type UpdateInput struct {
	Title       string
	Description string
}

// VideoService orchestrates the upload and delete pipelines and serves the
// metadata reads. It keeps the remote binary store and the metadata store
// consistent under partial failure: a record only becomes visible after the
// binary exists remotely, and a failed metadata write rolls the binary back.
type VideoService struct {
	repo   VideoRepository
	remote RemoteStore
	cfg    *config.Config
}

func NewVideoService(repo VideoRepository, remote RemoteStore, cfg *config.Config) *VideoService {
	return &VideoService{
		repo:   repo,
		remote: remote,
		cfg:    cfg,
	}
}

// Upload drives a binary through the remote store, derives the thumbnail URL
// and persists the metadata record. Order of failure handling:
// validation errors happen before any remote call, remote failures leave no
// record behind, and a failed record write triggers a compensating remote
// delete so no paid storage leaks on a known failure path.
func (s *VideoService) Upload(ctx context.Context, in UploadInput) (*models.Video, error) {
	title := validation.SanitizeString(in.Title)
	if in.File == nil || in.Size <= 0 {
		return nil, apperrors.Validation("video file is required")
	}
	if in.Size > s.cfg.UploadMaxVideoSize {
		return nil, apperrors.Validation("video file too large")
	}
	if !validation.ValidateTitle(title) {
		return nil, apperrors.Validation("title is required")
	}
	description := validation.SanitizeString(in.Description)
	if !validation.ValidateDescription(description) {
		return nil, apperrors.Validation("description too long")
	}

	// Bound the remote transfer; the metadata write below keeps the caller's
	// context.
	uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
	defer cancel()

	stored, err := s.remote.StoreVideo(uploadCtx, in.File)
	if err != nil {
		return nil, apperrors.Upload("failed to store video", err)
	}

	// A store that reports success without an identifier or URL is
	// indistinguishable from corruption; refuse to persist metadata for it.
	if stored.RemoteID == "" || stored.URL == "" {
		if stored.RemoteID != "" {
			s.rollbackRemote(stored.RemoteID)
		}
		return nil, apperrors.Upload("remote store returned an incomplete result", nil)
	}

	thumbnailURL, err := s.remote.ThumbnailURL(stored.RemoteID)
	if err != nil {
		s.rollbackRemote(stored.RemoteID)
		return nil, apperrors.Upload("failed to derive thumbnail URL", err)
	}

	video := &models.Video{
		Title:         title,
		Description:   description,
		VideoURL:      stored.URL,
		ThumbnailURL:  thumbnailURL,
		RemoteAssetID: stored.RemoteID,
	}
	if err := s.repo.Create(ctx, video); err != nil {
		s.rollbackRemote(stored.RemoteID)
		return nil, apperrors.Persistence("failed to save video record", err)
	}

	return video, nil
}

// rollbackRemote is the compensating delete for a binary whose metadata never
// made it. Its own failure is logged only: the orphaned binary is a tolerated
// transient state, and a cleanup failure must never mask the primary error.
func (s *VideoService) rollbackRemote(remoteID string) {
	// fresh context: the request context may already be cancelled
	if err := s.remote.DeleteVideo(context.Background(), remoteID); err != nil {
		log.Printf("WARN: failed to roll back remote asset %s: %v", remoteID, err)
	}
}

// Delete removes the remote binary and then the metadata record. The remote
// delete goes first: a crash in between leaves orphaned metadata pointing at
// a missing binary, which readers can detect, rather than invisible paid
// storage. A hard remote failure keeps the record intact so the delete can
// be retried.
func (s *VideoService) Delete(ctx context.Context, id uuid.UUID) error {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperrors.Unexpected("failed to load video", err)
	}
	if video == nil {
		return apperrors.NotFound("video not found")
	}

	if err := s.remote.DeleteVideo(ctx, video.RemoteAssetID); err != nil {
		return apperrors.Unexpected("failed to delete remote asset", err)
	}

	removed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return apperrors.Persistence("failed to delete video record", err)
	}
	if !removed {
		// lost a race with a concurrent delete; the outcome is the same
		log.Printf("video %s already removed from metadata store", id)
	}
	return nil
}

// List returns all records, newest first.
func (s *VideoService) List(ctx context.Context) ([]models.Video, error) {
	videos, err := s.repo.FindAllSorted(ctx)
	if err != nil {
		return nil, apperrors.Unexpected("failed to list videos", err)
	}
	return videos, nil
}

// Get returns a single record by id.
func (s *VideoService) Get(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Unexpected("failed to load video", err)
	}
	if video == nil {
		return nil, apperrors.NotFound("video not found")
	}
	return video, nil
}

// Recommend returns up to RecommendedLimit other records, newest first.
func (s *VideoService) Recommend(ctx context.Context, id uuid.UUID) ([]models.Video, error) {
	videos, err := s.repo.FindRecommended(ctx, id, RecommendedLimit)
	if err != nil {
		return nil, apperrors.Unexpected("failed to load recommendations", err)
	}
	return videos, nil
}

// Update applies a partial title/description edit. Only explicit non-empty
// values overwrite; identity and URL fields are never touched.
func (s *VideoService) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.Video, error) {
	updates := map[string]interface{}{}
	if title := strings.TrimSpace(in.Title); title != "" {
		if !validation.ValidateTitle(title) {
			return nil, apperrors.Validation("title too long")
		}
		updates["title"] = title
	}
	if in.Description != "" {
		description := validation.SanitizeString(in.Description)
		if !validation.ValidateDescription(description) {
			return nil, apperrors.Validation("description too long")
		}
		updates["description"] = description
	}

	video, err := s.repo.UpdateByID(ctx, id, updates)
	if err != nil {
		return nil, apperrors.Persistence("failed to update video record", err)
	}
	if video == nil {
		return nil, apperrors.NotFound("video not found")
	}
	return video, nil
}
