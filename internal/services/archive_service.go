package services

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/asiaagro/silage-backend/internal/config"
	"github.com/asiaagro/silage-backend/internal/timeutil"
)

// ArchiveService copies generated invoice PDFs to an S3-compatible bucket
// so the office keeps a record independent of the database. When no
// endpoint is configured the service stays disabled and uploads are
// silently skipped.
type ArchiveService struct {
	client *s3.Client
	bucket string
}

func NewArchiveService(cfg *config.Config) *ArchiveService {
	if cfg.Archive.Endpoint == "" {
		return &ArchiveService{}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		log.Printf("[Archive] client setup failed, archiving disabled: %v", err)
		return &ArchiveService{}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
	})
	return &ArchiveService{client: client, bucket: cfg.Archive.Bucket}
}

func (s *ArchiveService) Enabled() bool {
	return s.client != nil
}

// Upload stores one invoice under invoices/YYYY/MM/<filename>.
func (s *ArchiveService) Upload(ctx context.Context, filename string, pdf []byte) error {
	if s.client == nil {
		return nil
	}

	now := timeutil.Now()
	key := fmt.Sprintf("invoices/%04d/%02d/%s", now.Year(), int(now.Month()), filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
