package objectstore

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nearest-service/internal/config"
	"go.uber.org/zap"
)

// NewClient connects to S3-compatible storage (MinIO, Ceph, AWS S3).
func NewClient(cfg *config.S3Config, logger *zap.Logger) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	logger.Info("S3 client initialized",
		zap.String("endpoint", cfg.Endpoint),
		zap.Bool("ssl", cfg.UseSSL),
	)

	return client, nil
}
