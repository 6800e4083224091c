// Package media hands out presigned S3 upload URLs for directory images.
// The frontend PUTs the file straight to object storage and stores the
// resulting public URL in the record's image field.
package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLValidity = 15 * time.Minute

// Options configures the object-storage target. Endpoint is optional (set for
// MinIO or another S3-compatible backend); PublicBaseURL overrides the URL
// prefix stored in records, for deployments serving images through a CDN.
type Options struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// Presigner creates short-lived upload URLs.
type Presigner struct {
	opts Options
}

// NewPresigner returns a presigner for the given storage target.
func NewPresigner(opts Options) *Presigner {
	return &Presigner{opts: opts}
}

// Upload describes one presigned upload: where to PUT the file and the URL to
// store in the directory record afterwards.
type Upload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}

// PresignPut returns a fresh storage key and a PUT URL valid for 15 minutes.
func (p *Presigner) PresignPut(ctx context.Context, contentType string) (Upload, error) {
	client, err := p.presignClient(ctx)
	if err != nil {
		return Upload{}, fmt.Errorf("init storage client: %w", err)
	}

	key := storageKey()
	req, err := client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.opts.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(uploadURLValidity))
	if err != nil {
		return Upload{}, fmt.Errorf("presign upload: %w", err)
	}

	return Upload{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: p.publicURL(key),
	}, nil
}

func (p *Presigner) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(p.opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.opts.AccessKey, p.opts.SecretKey, "")))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if p.opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(p.opts.Endpoint)
		}
		o.UsePathStyle = p.opts.Endpoint != ""
	})
	return s3.NewPresignClient(client), nil
}

func (p *Presigner) publicURL(key string) string {
	if p.opts.PublicBaseURL != "" {
		return strings.TrimSuffix(p.opts.PublicBaseURL, "/") + "/" + key
	}
	if p.opts.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(p.opts.Endpoint, "/"), p.opts.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.opts.Bucket, p.opts.Region, key)
}

func storageKey() string {
	now := time.Now()
	return fmt.Sprintf("images/%d/%02d/%s", now.Year(), int(now.Month()), uuid.New())
}
