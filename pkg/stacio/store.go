package stacio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DefaultRegion is used when no region is configured.
const DefaultRegion = "us-east-1"

// Environment variables the credential model is read from.
const (
	EnvAccessKey = "AWS_ACCESS_KEY_ID"
	EnvSecretKey = "AWS_SECRET_ACCESS_KEY"
	EnvEndpoint  = "AWS_S3_ENDPOINT"
	EnvRegion    = "AWS_REGION"
)

// Credentials configures access to the S3-compatible object store.
type Credentials struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
}

// CredentialsFromEnv reads the standard access-key/secret-key/endpoint/
// region model from the process environment. The region defaults to
// DefaultRegion when unset.
func CredentialsFromEnv() Credentials {
	region := os.Getenv(EnvRegion)
	if region == "" {
		region = DefaultRegion
	}
	return Credentials{
		AccessKey: os.Getenv(EnvAccessKey),
		SecretKey: os.Getenv(EnvSecretKey),
		Endpoint:  os.Getenv(EnvEndpoint),
		Region:    region,
	}
}

// ObjectStore is the minimal object-store surface the transport needs.
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket, key string, data []byte) error
}

// s3Store is the production ObjectStore backed by minio-go.
type s3Store struct {
	client *minio.Client
}

func newS3Store(creds Credentials) (*s3Store, error) {
	if creds.Endpoint == "" {
		return nil, fmt.Errorf("object store not configured: empty endpoint")
	}
	endpoint := creds.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	region := creds.Region
	if region == "" {
		region = DefaultRegion
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(creds.AccessKey, creds.SecretKey, ""),
		Secure: secure,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}
	return &s3Store{client: client}, nil
}

func (s *s3Store) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", bucket, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read object %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

func (s *s3Store) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, key, err)
	}
	return nil
}
