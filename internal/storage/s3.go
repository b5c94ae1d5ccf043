package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/comicwatch/internal/domain"
)

// S3API is the subset of the S3 client the store needs.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps the snapshot as one object in a bucket.
type S3Store struct {
	log    zerolog.Logger
	client S3API
	bucket string
}

var _ domain.SnapshotStore = (*S3Store)(nil)

func NewS3Store(log zerolog.Logger, client S3API, bucket string) *S3Store {
	return &S3Store{
		log:    log.With().Str("module", "storage").Str("backend", "s3").Logger(),
		client: client,
		bucket: bucket,
	}
}

// Exists lists the bucket with key as prefix and reports whether anything
// came back.
func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(key),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, errors.Wrapf(err, "failed to list s3://%s/%s", s.bucket, key)
	}

	s.log.Debug().Str("bucket", s.bucket).Str("prefix", key).Int("objects", len(out.Contents)).Msg("listed objects")
	return len(out.Contents) > 0, nil
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, errors.Wrapf(domain.ErrSnapshotNotFound, "s3://%s/%s", s.bucket, key)
		}
		return nil, errors.Wrapf(err, "failed to get s3://%s/%s", s.bucket, key)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read s3://%s/%s", s.bucket, key)
	}

	return body, nil
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to put s3://%s/%s", s.bucket, key)
	}

	s.log.Debug().Str("bucket", s.bucket).Str("key", key).Int("bytes", len(body)).Msg("stored snapshot")
	return nil
}
