package uploads

import (
	"context"
	"io"
	"log"
	"mime/multipart"
	"time"

	helper "hatatakip_backend/internals/helpers"
	"hatatakip_backend/internals/helpers/imagex"
	"hatatakip_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Folders inside the bucket.
const (
	FolderErrorRecords = "hatalar"
	FolderSolutions    = "cozumler"
)

const DefaultMaxBytes = 5 * 1024 * 1024

var ErrTooLarge = errors.New("uploads: dosya boyutu sınırı aşıldı")

// Uploader validates one image from a form and puts it in the blob store.
type Uploader struct {
	Store    storage.BlobStore
	MaxBytes int64
	Image    imagex.Options
	Now      func() time.Time
}

func New(store storage.BlobStore, maxBytes int64, opt imagex.Options) *Uploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Uploader{Store: store, MaxBytes: maxBytes, Image: opt, Now: time.Now}
}

// Upload reads fh, checks size and content, and stores it under folder.
func (u *Uploader) Upload(ctx context.Context, folder string, fh *multipart.FileHeader) (storage.Object, error) {
	if fh.Size > u.MaxBytes {
		return storage.Object{}, ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return storage.Object{}, errors.Wrap(err, "open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, u.MaxBytes+1))
	if err != nil {
		return storage.Object{}, errors.Wrap(err, "read upload")
	}
	if int64(len(data)) > u.MaxBytes {
		return storage.Object{}, ErrTooLarge
	}

	img, err := imagex.Prepare(data, u.Image)
	if err != nil {
		return storage.Object{}, err
	}

	key := storage.WithExt(storage.NewObjectKey(folder, fh.Filename, u.Now()), img.Ext)
	obj, err := u.Store.Upload(ctx, key, img.ContentType, img.Data)
	if err != nil {
		return storage.Object{}, errors.Wrap(err, "store upload")
	}
	log.Printf("[UPLOAD] %s (%d bytes, %s)", obj.Key, len(img.Data), img.ContentType)
	return obj, nil
}

// AsHTTPError maps upload failures to client errors; anything else is left
// for the error handler.
func AsHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrTooLarge):
		return helper.NewHTTPError(fiber.StatusBadRequest, "Dosya boyutu 5MB sınırını aşıyor", err)
	case errors.Is(err, imagex.ErrNotImage):
		return helper.NewHTTPError(fiber.StatusBadRequest, "Sadece resim dosyaları yüklenebilir!", err)
	}
	return err
}
