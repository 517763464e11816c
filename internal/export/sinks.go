package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const contentType = "application/json"

// DirSink writes documents into a local directory
type DirSink struct {
	root string
}

// NewDirSink creates the directory if needed
func NewDirSink(root string) (*DirSink, error) {
	if root == "" {
		root = "./export"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &DirSink{root: root}, nil
}

// Put writes one document, replacing any previous file
func (s *DirSink) Put(_ context.Context, name string, data []byte) error {
	return os.WriteFile(filepath.Join(s.root, filepath.Base(name)), data, 0o644)
}

func (s *DirSink) String() string { return "dir:" + s.root }

// S3Config locates the bucket receiving the export. Credentials come from
// the default AWS chain.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, e.g. MinIO
	Prefix    string
	PathStyle bool
}

// S3Sink uploads documents to an S3-compatible bucket
type S3Sink struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Sink creates an S3 sink. Extra client options are applied after the
// configured ones.
func NewS3Sink(ctx context.Context, cfg S3Config, opts ...func(*s3.Options)) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	optFns := append([]func(*s3.Options){func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}}, opts...)
	return &S3Sink{
		client: s3.NewFromConfig(awsCfg, optFns...),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Key returns the object key for a document name
func (s *S3Sink) Key(name string) string {
	return path.Join(s.prefix, name)
}

// Put uploads one document under the configured prefix
func (s *S3Sink) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.Key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *S3Sink) String() string { return "s3://" + path.Join(s.bucket, s.prefix) }
