package s3

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultRegion = "us-east-1"

// Config is the bucket configuration read from the environment.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
}

// MissingVarError names every required environment variable that was
// absent when the config was read.
type MissingVarError struct {
	Vars []string
}

func (e MissingVarError) Error() string {
	return fmt.Sprintf("AWS credentials or bucket name are missing in the environment variables: %v", strings.Join(e.Vars, ", "))
}

// ConfigFromEnv reads and validates the upload configuration eagerly.
// Region falls back to us-east-1; everything else is required.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Region:          os.Getenv("AWS_REGION"),
		Bucket:          os.Getenv("S3_BUCKET_NAME"),
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}

	var missing []string
	if cfg.AccessKeyID == "" {
		missing = append(missing, "AWS_ACCESS_KEY_ID")
	}
	if cfg.SecretAccessKey == "" {
		missing = append(missing, "AWS_SECRET_ACCESS_KEY")
	}
	if cfg.Bucket == "" {
		missing = append(missing, "S3_BUCKET_NAME")
	}
	if len(missing) > 0 {
		return Config{}, MissingVarError{Vars: missing}
	}
	return cfg, nil
}

// PutObjectAPI is the slice of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

type ClientOption func(*Client)

type Client struct {
	api    PutObjectAPI
	bucket string
}

// APIOption overrides the backing S3 API, used by tests.
func APIOption(api PutObjectAPI) ClientOption {
	return func(c *Client) {
		c.api = api
	}
}

func New(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		bucket: cfg.Bucket,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.api == nil {
		c.api = awss3.NewFromConfig(aws.Config{
			Region:      cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		})
	}
	if c.bucket == "" {
		panic("Missing bucket in s3 client")
	}
	return c
}

// Upload puts one local file under the given object key.
func (c *Client) Upload(ctx context.Context, localPath string, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return errors.New(fmt.Sprintf("error opening %v for upload: %s", localPath, err.Error()))
	}
	defer f.Close()

	_, err = c.api.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return errors.New(fmt.Sprintf("error uploading %v to s3: %s", localPath, err.Error()))
	}
	return nil
}
