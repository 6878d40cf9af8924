package media

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/facuperezm/barberia-sub000/internal/config"
	"github.com/facuperezm/barberia-sub000/internal/errs"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores objects in one bucket and returns their public URL.
// Works against AWS and S3-compatible endpoints (R2, MinIO).
type S3Uploader struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

func NewS3Uploader(cfg config.S3Config) *S3Uploader {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = "https://" + cfg.Bucket + ".s3." + cfg.Region + ".amazonaws.com"
	}

	return &S3Uploader{
		client:  s3.New(opts),
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(base, "/"),
	}
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", errs.Wrapf(err, "put object %s", key)
	}
	return u.baseURL + "/" + key, nil
}
