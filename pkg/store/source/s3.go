package source

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// S3API is the part of the S3 client the source needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Source struct {
	client S3API
	bucket string
	prefix string
}

func NewS3Source(client S3API, bucket, prefix string) Source {
	return &s3Source{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (s *s3Source) key(path string) string {
	key := strings.TrimLeft(path, "/")
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

func (s *s3Source) Fetch(ctx context.Context, path string) ([]byte, error) {
	logger := zerolog.Ctx(ctx)
	key := s.key(path)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, &LoadError{Path: path, Status: "404 Not Found", StatusCode: http.StatusNotFound, Err: err}
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() {
		if err := out.Body.Close(); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("failed to close object body")
		}
	}()

	data, err := readAll(out.Body)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	logger.Debug().Str("bucket", s.bucket).Str("key", key).Int("bytes", len(data)).Msg("report fetched")
	return data, nil
}
