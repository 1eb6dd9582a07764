package client

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/logging"
	"github.com/dmitrijs2005/agsregistration/internal/netx"
)

// s3API is the part of *s3.Client used by S3Uploader.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Config locates the bucket that receives attachments.
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3Uploader stores attachments directly in an S3-compatible bucket. The
// returned server id is the object key.
type S3Uploader struct {
	api s3API
	cfg S3Config
	now func() time.Time
	log logging.Logger
}

func NewS3Uploader(ctx context.Context, cfg S3Config, log logging.Logger) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not configured")
	}
	if log == nil {
		log = logging.Nop()
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{api: api, cfg: cfg, now: time.Now, log: log.With("component", "s3")}, nil
}

// ObjectKey is registrations/{yyyy}/{mm}/{dd}/{document type}/{file id}{ext}.
// The same file id always maps to the same key on a given day, so a retried
// upload overwrites instead of duplicating.
func ObjectKey(t time.Time, in models.ImageUpload) string {
	return fmt.Sprintf("registrations/%04d/%02d/%02d/%s/%s%s",
		t.Year(), int(t.Month()), t.Day(), in.DocumentType.Name(), in.FileID, in.Extension)
}

func (u *S3Uploader) objectURL(key string) string {
	if u.cfg.BaseEndpoint != "" {
		return strings.TrimRight(u.cfg.BaseEndpoint, "/") + "/" + u.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}

func (u *S3Uploader) UploadImage(ctx context.Context, in models.ImageUpload) (*models.ImageDescriptor, error) {
	key := ObjectKey(u.now().UTC(), in)

	_, err := u.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(in.Data),
		ContentType:   aws.String(in.ContentType),
		ContentLength: aws.Int64(int64(len(in.Data))),
		Metadata: map[string]string{
			"file-name":     in.FileName,
			"document-type": in.DocumentType.Code(),
		},
	})
	if err != nil {
		if netx.IsTransportError(err) {
			return nil, fmt.Errorf("put object %s: %w: %v", key, ErrUnavailable, err)
		}
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	u.log.Debug(ctx, "object stored", "key", key, "size", len(in.Data))
	return &models.ImageDescriptor{ServerID: key, Path: u.objectURL(key), DocumentType: in.DocumentType}, nil
}

func (u *S3Uploader) DeleteImage(ctx context.Context, id string) error {
	_, err := u.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		if netx.IsTransportError(err) {
			return fmt.Errorf("delete object %s: %w: %v", id, ErrUnavailable, err)
		}
		return fmt.Errorf("delete object %s: %w", id, err)
	}
	return nil
}
