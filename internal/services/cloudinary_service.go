package services

import (
	"context"
	"fmt"
	"io"

	"github.com/clipvault/backend/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	videoResourceType = "video"
	videoFormat       = "mp4"

	thumbnailWidth  = 300
	thumbnailHeight = 200
)

// CloudinaryService implements RemoteStore against the Cloudinary video API.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
	cfg *config.Config
}

func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryService{cld: cld, cfg: cfg}, nil
}

// StoreVideo uploads the binary with fixed video storage parameters: target
// container mp4 and automatic quality normalization.
func (s *CloudinaryService) StoreVideo(ctx context.Context, r io.Reader) (*StoredAsset, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         s.cfg.CloudinaryUploadFolder,
		ResourceType:   videoResourceType,
		Format:         videoFormat,
		Transformation: "q_auto",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload rejected: %s", res.Error.Message)
	}
	return &StoredAsset{RemoteID: res.PublicID, URL: res.SecureURL}, nil
}

// DeleteVideo destroys the remote binary. A remote "not found" counts as
// success: the intent is idempotent and the binary may already be gone.
func (s *CloudinaryService) DeleteVideo(ctx context.Context, remoteID string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     remoteID,
		ResourceType: videoResourceType,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	if res.Result != "" && res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy failed: %s", res.Result)
	}
	return nil
}

// ThumbnailURL builds the derived preview URL for a stored video: a jpg
// frame cropped to fill 300x200. Pure string construction, no second upload.
func (s *CloudinaryService) ThumbnailURL(remoteID string) (string, error) {
	if remoteID == "" {
		return "", fmt.Errorf("empty remote asset id")
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/video/upload/c_fill,h_%d,w_%d/%s.jpg",
		s.cfg.CloudinaryCloudName, thumbnailHeight, thumbnailWidth, remoteID), nil
}
