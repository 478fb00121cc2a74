package seed

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// ObjectGetter is the part of the S3 client used by the loader.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader reads seed documents from one bucket.
type s3Loader struct {
	client ObjectGetter
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a seed loader using the default AWS credential chain.
func NewS3Loader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Loader, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Str("region", region).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 seed loader initialised")

	return NewS3LoaderWithClient(s3.NewFromConfig(cfg), bucket, logger), nil
}

// NewS3LoaderWithClient creates a seed loader over an existing client.
func NewS3LoaderWithClient(client ObjectGetter, bucket string, logger zerolog.Logger) Loader {
	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger.With().Str("component", "s3-seed-loader").Str("bucket", bucket).Logger(),
	}
}

// Load reads the seed stored under key. Keys ending in .gz are gunzipped.
func (l *s3Loader) Load(ctx context.Context, key string) (*Seed, error) {
	log := l.logger.With().Str("key", key).Logger()

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			log.Warn().Msg("seed object does not exist")
			return nil, fmt.Errorf("seed s3://%s/%s not found: %w", l.bucket, key, err)
		}
		log.Error().Err(err).Msg("failed to get seed object")
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", l.bucket, key, err)
	}
	defer out.Body.Close()

	s, err := decode(out.Body, key)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode seed object")
		return nil, err
	}

	log.Info().
		Str("etag", aws.ToString(out.ETag)).
		Int64("size", aws.ToInt64(out.ContentLength)).
		Int("dishes", len(s.Dishes)).
		Msg("seed loaded from S3")

	return s, nil
}

// fallbackLoader tries a remote loader first and a local one second.
type fallbackLoader struct {
	remote Loader
	local  Loader
	prefix string
	logger zerolog.Logger
}

// NewFallbackLoader creates a loader that asks remote for prefix/source and,
// when that fails, local for source. A nil remote means local only.
func NewFallbackLoader(remote, local Loader, prefix string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		remote: remote,
		local:  local,
		prefix: prefix,
		logger: logger.With().Str("component", "fallback-seed-loader").Logger(),
	}
}

func (l *fallbackLoader) Load(ctx context.Context, source string) (*Seed, error) {
	if l.remote == nil {
		l.logger.Debug().Str("source", source).Msg("no remote seed source, using local file")
		return l.local.Load(ctx, source)
	}

	key := path.Join(l.prefix, source)
	s, remoteErr := l.remote.Load(ctx, key)
	if remoteErr == nil {
		return s, nil
	}

	l.logger.Warn().
		Err(remoteErr).
		Str("key", key).
		Str("local_fallback", source).
		Msg("remote seed unavailable, falling back to local file")

	s, localErr := l.local.Load(ctx, source)
	if localErr != nil {
		return nil, errors.Join(remoteErr, localErr)
	}
	return s, nil
}
