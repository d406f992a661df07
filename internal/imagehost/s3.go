package imagehost

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"project_space/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config describes the S3-compatible bucket images are stored in.
type Config struct {
	Bucket        string
	Region        string
	Endpoint      string // empty for AWS, e.g. http://127.0.0.1:9000 for MinIO
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // prefix of the URLs handed back to clients
	Folder        string
	UsePathStyle  bool
}

// ObjectPutter is the subset of *s3.Client used by S3Host.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Host stores transformed images in an S3 bucket.
type S3Host struct {
	client  ObjectPutter
	bucket  string
	folder  string
	baseURL string
	newKey  func() string
}

// New builds an S3Host with a client configured from cfg.
func New(ctx context.Context, cfg Config) (*S3Host, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewWithClient(client, cfg), nil
}

// NewWithClient builds an S3Host around an existing client.
func NewWithClient(client ObjectPutter, cfg Config) *S3Host {
	base := cfg.PublicBaseURL
	if base == "" && cfg.Endpoint != "" {
		base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return &S3Host{
		client:  client,
		bucket:  cfg.Bucket,
		folder:  cfg.Folder,
		baseURL: strings.TrimRight(base, "/"),
		newKey:  uuid.NewString,
	}
}

// Upload transforms the image read from r and stores it under a fresh key.
func (h *S3Host) Upload(ctx context.Context, r io.Reader) (models.Image, error) {
	data, err := Transform(r)
	if err != nil {
		return models.Image{}, err
	}

	key := path.Join(h.folder, h.newKey()+".jpg")
	_, err = h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(h.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("image/jpeg"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return models.Image{}, fmt.Errorf("put object %q: %w", key, err)
	}

	return models.Image{ImageID: key, ImageURL: h.baseURL + "/" + key}, nil
}
