package storage

import (
	"context"

	"hatatakip_backend/internals/configs"

	"github.com/pkg/errors"
)

// Object is what the store reports back after an upload. Key is what gets
// persisted in gorsel_s3_key and later handed to Delete.
type Object struct {
	Key string
	URL string
}

// BlobStore is the image store behind the upload and delete flows.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (Object, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

var ErrEmptyKey = errors.New("storage: empty object key")

// New builds the store selected by STORAGE_DRIVER.
func New(cfg configs.StorageConfig) (BlobStore, error) {
	switch cfg.Driver {
	case "", "supabase":
		return NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket, nil)
	case "oss":
		return NewOSSStore(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey, cfg.OSSBucket, cfg.OSSPublicBaseURL)
	case "cloudinary":
		return NewCloudinaryStore(cfg.CloudinaryURL)
	case "memory":
		return NewMemoryStore("memory://" + cfg.SupabaseBucket), nil
	default:
		return nil, errors.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
