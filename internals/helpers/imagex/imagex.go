package imagex

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

var ErrNotImage = errors.New("imagex: yalnızca resim dosyaları yüklenebilir")

type Options struct {
	ConvertWebP  bool
	MaxDimension int     // 0 = no downscale
	Quality      float32 // webp quality, 0 → 80
}

type Image struct {
	Data        []byte
	ContentType string
	Ext         string // with leading dot
}

// Sniff detects the content type from the bytes themselves, not from what
// the client claimed.
func Sniff(data []byte) (contentType, ext string) {
	mt := mimetype.Detect(data)
	return mt.String(), mt.Extension()
}

func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// Prepare rejects non-images and, when asked, re-encodes raster images as
// WebP bounded by MaxDimension. Formats that cannot be decoded (or are not
// worth re-encoding: gif, svg, webp) pass through untouched.
func Prepare(data []byte, opt Options) (Image, error) {
	ct, ext := Sniff(data)
	if !IsImage(ct) {
		return Image{}, ErrNotImage
	}
	orig := Image{Data: data, ContentType: ct, Ext: ext}

	if !opt.ConvertWebP || !convertible(ct) {
		return orig, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return orig, nil
	}
	img = Downscale(img, opt.MaxDimension)

	encoded, err := EncodeWebP(img, opt.Quality)
	if err != nil {
		return Image{}, err
	}
	return Image{Data: encoded, ContentType: "image/webp", Ext: ".webp"}, nil
}

func convertible(ct string) bool {
	switch ct {
	case "image/jpeg", "image/png":
		return true
	}
	return false
}

func Downscale(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}

func EncodeWebP(img image.Image, quality float32) ([]byte, error) {
	if quality <= 0 {
		quality = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		return nil, errors.Wrap(err, "encode webp")
	}
	return buf.Bytes(), nil
}
