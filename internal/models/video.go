package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video represents one uploaded video asset. VideoURL, ThumbnailURL and
// RemoteAssetID are set once at creation and never change afterwards; only
// Title and Description are mutable.
type Video struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Description   string    `gorm:"size:2000" json:"description"`
	VideoURL      string    `gorm:"size:1024;not null" json:"videoUrl"`
	ThumbnailURL  string    `gorm:"size:1024;not null" json:"thumbnailUrl"`
	RemoteAssetID string    `gorm:"size:255;uniqueIndex;not null" json:"remoteAssetId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
