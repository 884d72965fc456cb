package s3storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
)

// Options configures the S3 attachment store. Endpoint is only set for
// S3-compatible services such as MinIO.
type Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Endpoint        string
}

// AttachmentStorage implements portsrepo.AttachmentStorage on S3.
type AttachmentStorage struct {
	s3Client *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	baseURL  string
}

var _ portsrepo.AttachmentStorage = (*AttachmentStorage)(nil)

// NewAttachmentStorage creates an S3 session and uploader for the bucket.
func NewAttachmentStorage(opts Options) (*AttachmentStorage, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket name cannot be empty")
	}

	cfg := &aws.Config{
		Region: aws.String(opts.Region),
	}
	if opts.AccessKeyID != "" {
		cfg.Credentials = credentials.NewStaticCredentials(opts.AccessKeyID, opts.SecretAccessKey, "")
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return &AttachmentStorage{
		s3Client: s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   opts.Bucket,
		baseURL:  publicBaseURL(opts),
	}, nil
}

// publicBaseURL is the prefix under which uploaded objects are reachable.
func publicBaseURL(opts Options) string {
	if opts.Endpoint != "" {
		return strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
}

// ObjectURL returns the public URL of key.
func (s *AttachmentStorage) ObjectURL(key string) string {
	return s.baseURL + "/" + key
}

func (s *AttachmentStorage) Upload(ctx context.Context, key string, file domain.UploadFile) (string, error) {
	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(file.Data),
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}
	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload attachment %s: %w", key, err)
	}
	return s.ObjectURL(key), nil
}

func (s *AttachmentStorage) Delete(ctx context.Context, key string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete attachment %s: %w", key, err)
	}
	return nil
}
