package services

import (
	"context"
	"errors"

	"github.com/clipvault/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VideoRepository is the metadata store port the orchestrators are built
// against. Lookups return (nil, nil) when the record is absent so callers can
// distinguish "missing" from a store failure without driver error checks.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	FindAllSorted(ctx context.Context) ([]models.Video, error)
	FindRecommended(ctx context.Context, excludeID uuid.UUID, limit int) ([]models.Video, error)
	UpdateByID(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Video, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// GormVideoRepository implements VideoRepository on Postgres.
type GormVideoRepository struct {
	db *gorm.DB
}

func NewGormVideoRepository(db *gorm.DB) *GormVideoRepository {
	return &GormVideoRepository{db: db}
}

func (r *GormVideoRepository) Create(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *GormVideoRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var video models.Video
	err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *GormVideoRepository) FindAllSorted(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *GormVideoRepository) FindRecommended(ctx context.Context, excludeID uuid.UUID, limit int) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *GormVideoRepository) UpdateByID(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Video, error) {
	if len(fields) > 0 {
		tx := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Updates(fields)
		if tx.Error != nil {
			return nil, tx.Error
		}
		if tx.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.FindByID(ctx, id)
}

func (r *GormVideoRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Video{}, "id = ?", id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
