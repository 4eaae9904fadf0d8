package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
)

// CloudinaryStore uploads images as Cloudinary assets. The persisted key is
// the asset public id (object key without extension).
type CloudinaryStore struct {
	cld *cld.Cloudinary
}

func NewCloudinaryStore(cloudinaryURL string) (*CloudinaryStore, error) {
	if cloudinaryURL == "" {
		return nil, errors.New("storage: CLOUDINARY_URL ayarlanmamış")
	}
	c, err := cld.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, errors.Wrap(err, "cloudinary.NewFromURL")
	}
	return &CloudinaryStore{cld: c}, nil
}

func publicID(key string) string {
	return strings.TrimSuffix(key, filepath.Ext(key))
}

func (s *CloudinaryStore) PublicURL(key string) string {
	asset, err := s.cld.Image(publicID(key))
	if err != nil {
		return ""
	}
	u, err := asset.String()
	if err != nil {
		return ""
	}
	return u
}

func (s *CloudinaryStore) Upload(ctx context.Context, key, contentType string, data []byte) (Object, error) {
	if key == "" {
		return Object{}, ErrEmptyKey
	}
	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:       publicID(key),
		ResourceType:   "image",
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(false),
	})
	if err != nil {
		return Object{}, errors.Wrapf(err, "cloudinary upload %s", key)
	}
	if res.Error.Message != "" {
		return Object{}, errors.Errorf("cloudinary upload %s: %s", key, res.Error.Message)
	}
	return Object{Key: res.PublicID, URL: res.SecureURL}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID(key)})
	if err != nil {
		return errors.Wrapf(err, "cloudinary destroy %s", key)
	}
	if res.Error.Message != "" {
		return errors.Errorf("cloudinary destroy %s: %s", key, res.Error.Message)
	}
	return nil
}
