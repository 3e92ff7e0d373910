// Package storage uploads damage photos to S3-compatible object storage and
// hands out presigned URLs so the browser talks to the bucket directly.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	appconfig "wms-backend/internal/config"
	"wms-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

type Client struct {
	bucket   string
	endpoint string
	presign  *s3.PresignClient
}

// New builds the storage client, or returns (nil, nil) when object storage is
// not configured; callers treat a nil client as "uploads disabled".
func New(ctx context.Context, cfg *appconfig.Config) (*Client, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Storage.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey, cfg.Storage.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		bucket:   cfg.Storage.Bucket,
		endpoint: cfg.Storage.Endpoint,
		presign:  s3.NewPresignClient(client),
	}, nil
}

// PresignDamagePhoto returns a presigned PUT URL for one damage photo and the
// object URL to store on the quality check.
func (c *Client) PresignDamagePhoto(ctx context.Context, arrivalID, itemID int, contentType string) (uploadURL, objectURL string, err error) {
	if c == nil {
		return "", "", errors.New("object storage is not configured")
	}
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return "", "", fmt.Errorf("unsupported content type %q", contentType)
	}

	key := fmt.Sprintf("damage/%d/%d-%d%s",
		arrivalID, itemID, timeutil.Now().UnixNano(), extensionFor(contentType))

	req, err := c.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return req.URL, fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
