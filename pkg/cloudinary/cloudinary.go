package cloudinary

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Client uploads user avatars. Kept as an interface so handlers can be
// tested without Cloudinary credentials.
type Client interface {
	UploadAvatar(ctx context.Context, file io.Reader, publicID string) (url string, err error)
}

const (
	avatarFolder = "pocketfund/avatars"
	avatarWidth  = 256
	avatarEager  = "q_auto,f_auto,w_256,h_256,c_fill,g_face"
)

var eagerAsyncFalse = false

// AvatarURL returns a delivery URL with face-crop transformations applied.
func AvatarURL(cloudName, publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,h_%d,c_fill,g_face/%s",
		cloudName, avatarWidth, avatarWidth, publicID)
}

type clientImpl struct {
	cloudName string
	uploader  *uploader.API
}

func (c *clientImpl) UploadAvatar(ctx context.Context, file io.Reader, publicID string) (string, error) {
	result, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:     avatarFolder,
		PublicID:   publicID,
		Eager:      avatarEager,
		EagerAsync: &eagerAsyncFalse,
	})
	if err != nil {
		return "", err
	}
	if len(result.Eager) > 0 && result.Eager[0].SecureURL != "" {
		return result.Eager[0].SecureURL, nil
	}
	return AvatarURL(c.cloudName, result.PublicID), nil
}

// NewClientFromParams builds a Client from Cloudinary credentials.
func NewClientFromParams(cloudName, apiKey, apiSecret string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{cloudName: cloudName, uploader: up}, nil
}
