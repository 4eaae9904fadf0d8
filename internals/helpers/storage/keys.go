package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var extRe = regexp.MustCompile(`^[a-z0-9]{1,8}$`)

// NewObjectKey builds "<folder>/<unix-millis>-<random>.<ext>". The random
// part keeps concurrent uploads in the same millisecond apart.
func NewObjectKey(folder, originalFilename string, now time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalFilename)), ".")
	if !extRe.MatchString(ext) {
		ext = "bin"
	}
	folder = strings.Trim(folder, "/")
	name := fmt.Sprintf("%d-%s.%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:12], ext)
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// WithExt swaps the extension of key, used after a format conversion.
func WithExt(key, ext string) string {
	return strings.TrimSuffix(key, filepath.Ext(key)) + "." + strings.TrimPrefix(ext, ".")
}
