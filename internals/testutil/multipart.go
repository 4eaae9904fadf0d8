package testutil

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	errorRecordModel "hatatakip_backend/internals/features/error_records/model"
	helper "hatatakip_backend/internals/helpers"

	"github.com/stretchr/testify/require"
)

// NewValidator returns the validator with the enums the app registers.
func NewValidator() *helper.Validator {
	v := helper.NewValidator()
	v.RegisterEnum("record_status", errorRecordModel.Statuses)
	return v
}

func TinyPNG(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

// MultipartRequest builds a multipart/form-data request. fileField may be
// empty for a form without a file.
func MultipartRequest(t *testing.T, method, path string, fields map[string]string, fileField, filename string, data []byte) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		require.NoError(t, w.WriteField(k, fields[k]))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
