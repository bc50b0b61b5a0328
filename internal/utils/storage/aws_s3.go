package storage

import (
	"Restaurant-POS-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const uploadTimeout = 10 * time.Second

var ErrStorageDisabled = errors.New("object storage is not configured")

type (
	AwsS3 interface {
		Enabled() bool
		UploadJSON(ctx context.Context, objectKey string, v any) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

// NewAwsS3 builds a client from the AWS_* config keys. When no bucket is
// configured the returned store reports Enabled() == false and every write
// returns ErrStorageDisabled.
func NewAwsS3() AwsS3 {
	utils.LoadConfig()
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfigOr("AWS_S3_REGION", "ap-southeast-1")
	if bucket == "" {
		return &awsS3{region: region}
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if key, secret := utils.GetConfig("AWS_ACCESS_KEY"), utils.GetConfig("AWS_SECRET_KEY"); key != "" && secret != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return &awsS3{region: region}
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func (a *awsS3) Enabled() bool {
	return a.client != nil && a.bucket != ""
}

func (a *awsS3) UploadJSON(ctx context.Context, objectKey string, v any) (string, error) {
	if !a.Enabled() {
		return "", ErrStorageDisabled
	}

	body, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectKey, err)
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	if !a.Enabled() {
		return ErrStorageDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	return strings.TrimPrefix(link, prefix)
}
