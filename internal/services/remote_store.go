package services

import (
	"context"
	"io"
)

// StoredAsset is what the remote store hands back after a successful write.
type StoredAsset struct {
	RemoteID string
	URL      string
}

// RemoteStore is the remote binary store consumed by the video orchestrators.
// Implementations must keep ThumbnailURL a pure URL construction: no network
// side effects, so it can never fail due to transport conditions.
type RemoteStore interface {
	StoreVideo(ctx context.Context, r io.Reader) (*StoredAsset, error)
	DeleteVideo(ctx context.Context, remoteID string) error
	ThumbnailURL(remoteID string) (string, error)
}
