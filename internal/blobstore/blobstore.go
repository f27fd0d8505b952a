// Package blobstore archives uploaded source files in S3-compatible object
// storage. The archive is optional; a nil store skips archiving.
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store writes and reads raw upload bytes keyed by job ID and filename.
type Store struct {
	client   *minio.Client
	bucket   string
	region   string
	initOnce sync.Once
	initErr  error
}

func New(cfg Config) (*Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("blobstore endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("blobstore access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("blobstore bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init blobstore client: %w", err)
	}

	return &Store{client: client, bucket: bucket, region: region}, nil
}

func (s *Store) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

func objectKey(jobID, filename string) string {
	return jobID + "/" + filename
}

// Put archives an uploaded file. A nil receiver is a no-op so callers never
// branch on whether archiving is configured.
func (s *Store) Put(ctx context.Context, jobID, filename string, content []byte) error {
	if s == nil {
		return nil
	}
	if strings.TrimSpace(jobID) == "" || strings.TrimSpace(filename) == "" {
		return fmt.Errorf("job id and filename are required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	if content == nil {
		content = []byte{}
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectKey(jobID, filename), bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("archive %s/%s: %w", jobID, filename, err)
	}
	return nil
}

// Get retrieves an archived upload.
func (s *Store) Get(ctx context.Context, jobID, filename string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("blobstore not configured")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(jobID, filename), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", jobID, filename, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", jobID, filename, err)
	}
	return data, nil
}
