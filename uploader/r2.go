// uploader/r2.go
package uploader

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// R2Uploader stores decoded image payloads in a Cloudflare R2 bucket
// (S3-compatible) and returns the public CDN URL.
type R2Uploader struct {
	client     *s3.Client
	bucket     string
	cdnBaseURL string
	folder     string
}

// NewR2Uploader builds the client from CLOUDFLARE_ACCOUNT_ID,
// R2_ACCESS_KEY_ID, R2_ACCESS_KEY_SECRET, R2_BUCKET_NAME and optionally
// CDN_BASE_URL.
func NewR2Uploader() (*R2Uploader, error) {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	bucket := os.Getenv("R2_BUCKET_NAME")
	cdnBaseURL := os.Getenv("CDN_BASE_URL")
	if cdnBaseURL == "" {
		cdnBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	return &R2Uploader{
		client:     s3.NewFromConfig(cfg),
		bucket:     bucket,
		cdnBaseURL: cdnBaseURL,
		folder:     "css-battle",
	}, nil
}

// Upload decodes the payload and puts it under
// {folder}/{slug(name)}-{uuid}{ext}. Empty payloads and already-hosted URLs
// pass through unchanged.
func (u *R2Uploader) Upload(ctx context.Context, name, payload string) (string, error) {
	if payload == "" || IsRemoteURL(payload) {
		return payload, nil
	}

	data, contentType, ext, err := decodePayload(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	key := u.folder + "/" + uuid.NewString() + ext
	if s := slug.Make(name); s != "" {
		key = u.folder + "/" + s + "-" + uuid.NewString() + ext
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put %s: %v", ErrUpload, key, err)
	}

	return fmt.Sprintf("%s/%s", u.cdnBaseURL, key), nil
}
