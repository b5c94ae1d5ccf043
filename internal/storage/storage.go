package storage

import (
	"context"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/comicwatch/internal/domain"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the snapshot store selected by cfg.Storage. The returned
// closer releases backend resources and is never nil.
func Open(ctx context.Context, log zerolog.Logger, cfg *domain.Config) (domain.SnapshotStore, io.Closer, error) {
	switch cfg.Storage {
	case domain.StorageFile:
		return NewFileStore(log, cfg.StorageDir), nopCloser{}, nil

	case domain.StorageSQLite:
		db, err := NewSQLiteStore(cfg.StorageDir, log)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil

	case domain.StorageS3, "":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to load aws config")
		}
		return NewS3Store(log, s3.NewFromConfig(awsCfg), cfg.Bucket), nopCloser{}, nil

	default:
		return nil, nil, errors.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
