package stacio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ZOO-Project/zoo-template-common/pkg/stac"
	"github.com/ZOO-Project/zoo-template-common/pkg/logger"
)

// Scheme is the object-store URL scheme the transport branches on.
const Scheme = "s3://"

var (
	// ErrStoreNotConfigured is returned for s3:// locations when the
	// adapter was built without an object-store endpoint.
	ErrStoreNotConfigured = errors.New("object store not configured")

	// ErrRemoteWriteDisabled is returned for s3:// write destinations
	// unless WithRemoteWrite was given at construction.
	ErrRemoteWriteDisabled = errors.New("remote write not enabled")
)

// ParseLocation splits a location string. For s3:// locations the
// first path segment after the scheme is the bucket and the remainder
// the key; anything else is a local filesystem path (remote=false,
// bucket and key empty).
func ParseLocation(location string) (bucket, key string, remote bool) {
	if !strings.HasPrefix(location, Scheme) {
		return "", "", false
	}
	rest := strings.TrimPrefix(location, Scheme)
	parts := strings.SplitN(rest, "/", 2)
	bucket = parts[0]
	if len(parts) == 2 {
		key = parts[1]
	}
	return bucket, key, true
}

// SiblingLocation returns the location of name next to location,
// keeping the s3://-vs-local flavor of the original.
func SiblingLocation(location, name string) string {
	bucket, key, remote := ParseLocation(location)
	if remote {
		dir := path.Dir(key)
		if dir == "." || dir == "/" {
			return Scheme + bucket + "/" + name
		}
		return Scheme + bucket + "/" + dir + "/" + name
	}
	return filepath.Join(filepath.Dir(location), name)
}

// StacIO reads and writes catalog documents by location.
type StacIO struct {
	store       ObjectStore
	remoteWrite bool
	log         *zap.Logger
}

// Option configures a StacIO at construction.
type Option func(*StacIO)

// WithRemoteWrite allows WriteText to target s3:// locations. The
// documented base contract is local-only write; stage-out setups that
// persist catalogs back to the store opt in explicitly.
func WithRemoteWrite() Option {
	return func(s *StacIO) { s.remoteWrite = true }
}

// WithStore overrides the object store, bypassing client construction.
func WithStore(store ObjectStore) Option {
	return func(s *StacIO) { s.store = store }
}

// WithLogger overrides the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *StacIO) { s.log = log }
}

// New builds a transport from explicit credentials. With an empty
// endpoint the adapter is local-only: s3:// access fails with
// ErrStoreNotConfigured instead of a connection error.
func New(creds Credentials, opts ...Option) (*StacIO, error) {
	s := &StacIO{}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.L()
	}
	if s.store == nil && creds.Endpoint != "" {
		store, err := newS3Store(creds)
		if err != nil {
			return nil, err
		}
		s.store = store
	}
	return s, nil
}

// ReadText returns the UTF-8 text at location, fetching from the
// object store for s3:// locations and from disk otherwise. Not-found
// and access errors propagate to the caller unhandled.
func (s *StacIO) ReadText(ctx context.Context, location string) (string, error) {
	bucket, key, remote := ParseLocation(location)
	if remote {
		if s.store == nil {
			return "", fmt.Errorf("%w: cannot read %s", ErrStoreNotConfigured, location)
		}
		s.log.Debug("fetching object", zap.String("bucket", bucket), zap.String("key", key))
		data, err := s.store.GetObject(ctx, bucket, key)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", location, err)
	}
	return string(data), nil
}

// WriteText writes text to location, fully overwriting any existing
// content. Local destinations get their parent directories created on
// demand; s3:// destinations require WithRemoteWrite.
func (s *StacIO) WriteText(ctx context.Context, location, text string) error {
	bucket, key, remote := ParseLocation(location)
	if remote {
		if !s.remoteWrite {
			return fmt.Errorf("%w: cannot write %s", ErrRemoteWriteDisabled, location)
		}
		if s.store == nil {
			return fmt.Errorf("%w: cannot write %s", ErrStoreNotConfigured, location)
		}
		s.log.Debug("putting object", zap.String("bucket", bucket), zap.String("key", key))
		return s.store.PutObject(ctx, bucket, key, []byte(text))
	}

	if dir := filepath.Dir(location); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(location, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", location, err)
	}
	return nil
}

// ReadDocument reads and parses the STAC document at location.
func (s *StacIO) ReadDocument(ctx context.Context, location string) (*stac.Document, error) {
	text, err := s.ReadText(ctx, location)
	if err != nil {
		return nil, err
	}
	return stac.ParseDocument([]byte(text))
}
