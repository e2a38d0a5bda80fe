// Package objstore implements the S3-compatible artifact store adapter.
package objstore

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ObjectStore = (*S3Store)(nil)

// S3Store implements ports.ObjectStore against any S3-compatible endpoint.
type S3Store struct {
	s3 s3iface.S3API
}

// NewS3Store creates an object store from the pipeline's storage config.
// A custom endpoint with path-style addressing supports MinIO and other
// S3-compatible stores.
func NewS3Store(cfg domain.StorageConfig) (*S3Store, error) {
	awsCfg := aws.NewConfig()
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint)
	}
	if cfg.Region != "" {
		awsCfg = awsCfg.WithRegion(cfg.Region)
	}
	awsCfg = awsCfg.WithS3ForcePathStyle(cfg.ForcePathStyle)

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create storage session")
	}

	return &S3Store{s3: s3.New(sess)}, nil
}

// NewWithClient creates an S3Store around an existing client. Used in tests.
func NewWithClient(client s3iface.S3API) *S3Store {
	return &S3Store{s3: client}
}

// Put stores body under bucket/key, overwriting any existing object.
func (s *S3Store) Put(ctx context.Context, bucket, key string, body []byte) error {
	_, err := s.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to put object"),
			"bucket", bucket),
			"key", key)
	}
	return nil
}

// Get retrieves the object at bucket/key.
func (s *S3Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, zerr.With(zerr.With(domain.ErrObjectNotFound,
				"bucket", bucket),
				"key", key)
		}
		return nil, zerr.With(zerr.With(zerr.Wrap(err, "failed to get object"),
			"bucket", bucket),
			"key", key)
	}
	defer out.Body.Close() //nolint:errcheck // Best effort close in defer

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read object body")
	}
	return data, nil
}
