// Package upload hosts request files on S3 so that vendors which only
// accept URLs (audio transcription in particular) can fetch them. Files
// are stored under random keys and handed out as time-limited presigned
// GET URLs.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config holds S3 connection and behavior settings.
type Config struct {
	// Bucket is the S3 bucket files are uploaded to.
	Bucket string

	// Region is the AWS region of the bucket.
	Region string

	// AccessKeyID and SecretAccessKey select static credentials. When
	// both are empty the SDK's default credential chain applies.
	AccessKeyID     string
	SecretAccessKey string

	// Endpoint overrides the S3 endpoint (minio, localstack).
	Endpoint string

	// URLExpiry is how long presigned URLs stay valid (default: 1 hour).
	URLExpiry time.Duration
}

// Uploader stores files on S3 and produces presigned URLs for them.
type Uploader struct {
	uploader *manager.Uploader
	presign  *s3.PresignClient
	bucket   string
	expiry   time.Duration
}

// New creates an Uploader and the underlying S3 client.
func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("upload: bucket is required")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	expiry := cfg.URLExpiry
	if expiry == 0 {
		expiry = time.Hour
	}

	return &Uploader{
		uploader: manager.NewUploader(client),
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.Bucket,
		expiry:   expiry,
	}, nil
}

// Upload stores the file under a random key and returns a presigned GET
// URL a vendor can fetch it from. The original file name only
// contributes its extension, so user-supplied names never become keys.
func (u *Uploader) Upload(ctx context.Context, name string, content []byte) (string, error) {
	info := Detect(name, content)
	key := uuid.NewString() + info.Extension

	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(info.MIMEType),
		Metadata:    map[string]string{"name": path.Base(name)},
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	return u.PresignGet(ctx, key)
}

// PresignGet returns a time-limited GET URL for a stored key.
func (u *Uploader) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := u.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(u.expiry))
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", key, err)
	}
	return req.URL, nil
}
