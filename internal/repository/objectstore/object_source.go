package objectstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/nearest-service/internal/domain"
	"github.com/nearest-service/internal/domain/repository"
	apperrors "github.com/nearest-service/internal/pkg/errors"
	"github.com/nearest-service/internal/repository/file"
)

const scheme = "s3://"

// ParseLocation splits an s3://bucket/key location.
func ParseLocation(location string) (bucket, key string, err error) {
	if !strings.HasPrefix(location, scheme) {
		return "", "", fmt.Errorf("location %q must start with %s", location, scheme)
	}
	bucket, key, _ = strings.Cut(strings.TrimPrefix(location, scheme), "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("location %q must name a bucket and an object key", location)
	}
	return bucket, key, nil
}

type objectSource struct {
	client *minio.Client
	bucket string
	key    string
	sheet  string
}

// NewObjectSource reads a single object from a bucket. The format (CSV or XLSX)
// follows the key extension.
func NewObjectSource(client *minio.Client, bucket, key, sheet string) repository.TableSource {
	return &objectSource{
		client: client,
		bucket: bucket,
		key:    key,
		sheet:  sheet,
	}
}

func (s *objectSource) Describe() string {
	return scheme + s.bucket + "/" + s.key
}

func (s *objectSource) Read(ctx context.Context) (*domain.Table, error) {
	if _, err := s.client.StatObject(ctx, s.bucket, s.key, minio.StatObjectOptions{}); err != nil {
		return nil, s.mapError(err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.mapError(err)
	}
	defer obj.Close()

	if file.IsWorkbook(s.key) {
		return file.ReadXLSX(ctx, obj, s.sheet)
	}
	return file.ReadCSV(ctx, obj)
}

func (s *objectSource) mapError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return apperrors.ErrSourceNotFound.
			WithMessage("Object not found at %s", s.Describe()).
			WithDetails(map[string]interface{}{"bucket": s.bucket, "key": s.key}).
			Wrap(err)
	}
	return fmt.Errorf("get object %s: %w", s.Describe(), err)
}
