package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures an S3 compatible bucket.
type S3Options struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
	CustomDomain    string
}

// S3 stores objects in a bucket through aws-sdk-go-v2.
type S3 struct {
	client *s3.Client
	opts   S3Options
}

// NewS3 validates opts and builds the client.
func NewS3(opts S3Options) (*S3, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if opts.AccessKeyID == "" || opts.SecretAccessKey == "" {
		return nil, errors.New("s3 credentials are required")
	}
	if opts.Region == "" {
		opts.Region = "auto"
	}

	s3opts := s3.Options{
		Region:       opts.Region,
		Credentials:  aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")),
		UsePathStyle: opts.PathStyle,
	}
	if opts.Endpoint != "" {
		s3opts.BaseEndpoint = aws.String(strings.TrimRight(opts.Endpoint, "/"))
	}
	return &S3{client: s3.New(s3opts), opts: opts}, nil
}

func (s *S3) Driver() string { return "s3" }

func (s *S3) Put(ctx context.Context, key string, data []byte, contentType string) (Object, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.opts.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return Object{}, fmt.Errorf("s3 put %s: %w", key, err)
	}
	return Object{Key: key, URL: s.publicURL(key), ContentType: contentType, Size: int64(len(data))}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func (s *S3) publicURL(key string) string {
	if s.opts.CustomDomain != "" {
		return strings.TrimRight(s.opts.CustomDomain, "/") + "/" + key
	}
	if s.opts.Endpoint != "" {
		base := strings.TrimRight(s.opts.Endpoint, "/")
		if s.opts.PathStyle {
			return base + "/" + s.opts.Bucket + "/" + key
		}
		if u, err := url.Parse(base); err == nil && u.Host != "" {
			return u.Scheme + "://" + s.opts.Bucket + "." + u.Host + "/" + key
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, key)
}

func (s *S3) KeyFromURL(raw string) (string, bool) {
	prefix := s.publicURL("")
	key, found := strings.CutPrefix(raw, prefix)
	if !found || key == "" {
		return "", false
	}
	return key, true
}
