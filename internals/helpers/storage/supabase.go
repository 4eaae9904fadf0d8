package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SupabaseStore talks to Supabase Storage over its REST API.
type SupabaseStore struct {
	baseURL string
	key     string
	bucket  string
	client  *http.Client
}

func NewSupabaseStore(baseURL, serviceKey, bucket string, client *http.Client) (*SupabaseStore, error) {
	if baseURL == "" || serviceKey == "" {
		return nil, errors.New("storage: SUPABASE_URL veya SUPABASE_SERVICE_ROLE_KEY ayarlanmamış")
	}
	if bucket == "" {
		bucket = "hata-gorselleri"
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &SupabaseStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     serviceKey,
		bucket:  bucket,
		client:  client,
	}, nil
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func (s *SupabaseStore) objectURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, escapeKey(key))
}

func (s *SupabaseStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, escapeKey(key))
}

func (s *SupabaseStore) do(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("apikey", s.key)

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "supabase %s", req.Method)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("supabase %s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func (s *SupabaseStore) Upload(ctx context.Context, key, contentType string, data []byte) (Object, error) {
	if key == "" {
		return Object{}, ErrEmptyKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(key), bytes.NewReader(data))
	if err != nil {
		return Object{}, errors.Wrap(err, "build upload request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")
	req.Header.Set("Cache-Control", "max-age=3600")

	if err := s.do(req); err != nil {
		return Object{}, err
	}
	return Object{Key: key, URL: s.PublicURL(key)}, nil
}

func (s *SupabaseStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(key), nil)
	if err != nil {
		return errors.Wrap(err, "build delete request")
	}
	return s.do(req)
}
