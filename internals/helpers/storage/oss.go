package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

// OSSStore keeps images in an Alibaba Cloud OSS bucket.
type OSSStore struct {
	bucket        *oss.Bucket
	bucketName    string
	endpoint      string
	publicBaseURL string
}

func NewOSSStore(endpoint, accessKey, secretKey, bucketName, publicBaseURL string) (*OSSStore, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" || bucketName == "" {
		return nil, errors.New("storage: missing env OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET")
	}
	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, errors.Wrap(err, "oss.New")
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, errors.Wrap(err, "client.Bucket")
	}
	log.Printf("[OSS] bucket %s @ %s", bucketName, endpoint)

	return &OSSStore{
		bucket:        bkt,
		bucketName:    bucketName,
		endpoint:      endpoint,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *OSSStore) PublicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	host := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, host, key)
}

func (s *OSSStore) Upload(ctx context.Context, key, contentType string, data []byte) (Object, error) {
	if key == "" {
		return Object{}, ErrEmptyKey
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.ForbidOverWrite(true),
	}
	if err := s.bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return Object{}, errors.Wrapf(err, "oss put %s", key)
	}
	return Object{Key: key, URL: s.PublicURL(key)}, nil
}

func (s *OSSStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return errors.Wrapf(s.bucket.DeleteObject(key, oss.WithContext(ctx)), "oss delete %s", key)
}
