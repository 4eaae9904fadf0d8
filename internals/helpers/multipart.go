package helper

import (
	"mime/multipart"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// IsMultipart reports whether the request carries a multipart/form-data body.
func IsMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

// FormFields is a strict view over the text part of a multipart form.
type FormFields struct {
	values map[string][]string
}

// NewFormFields rejects any text field outside allowed and any file field
// outside fileFields.
func NewFormFields(form *multipart.Form, allowed []string, fileFields []string) (*FormFields, error) {
	known := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		known[k] = struct{}{}
	}
	var unknown []string
	for k := range form.Value {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	files := make(map[string]struct{}, len(fileFields))
	for _, k := range fileFields {
		files[k] = struct{}{}
	}
	for k := range form.File {
		if _, ok := files[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, BadRequest("Bilinmeyen alan(lar): " + strings.Join(unknown, ", "))
	}
	return &FormFields{values: form.Value}, nil
}

func (f *FormFields) has(key string) bool {
	v, ok := f.values[key]
	return ok && len(v) > 0
}

// String returns nil for an absent field.
func (f *FormFields) String(key string) *string {
	if !f.has(key) {
		return nil
	}
	v := f.values[key][0]
	return &v
}

// Int64 returns nil for an absent or blank field.
func (f *FormFields) Int64(key string) (*int64, error) {
	if !f.has(key) {
		return nil, nil
	}
	raw := strings.TrimSpace(f.values[key][0])
	if raw == "" || raw == "null" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, BadRequest("Geçersiz " + key + " değeri: " + raw)
	}
	return &n, nil
}

// FirstFile returns the first file found under any of keys, or nil.
func FirstFile(form *multipart.Form, keys ...string) *multipart.FileHeader {
	for _, k := range keys {
		if fhs := form.File[k]; len(fhs) > 0 {
			return fhs[0]
		}
	}
	return nil
}
